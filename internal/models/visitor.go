package models

// Visitor directions
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// DirectionOptions in form order; the first is the default
var DirectionOptions = []string{DirectionIn, DirectionOut}

// VisitorColumns is the canonical Visitors header.
var VisitorColumns = []string{"Time", "Date", "UID", "Ward", "Bed", "IN / OUT"}

// Visitor is one check-in or check-out line of the Visitors worksheet.
type Visitor struct {
	Time      string `json:"time"`
	Date      string `json:"date"`
	UID       string `json:"uid"`
	Ward      string `json:"ward"`
	Bed       string `json:"bed"`
	Direction string `json:"direction"`
}

// Values returns the row in VisitorColumns order.
func (v Visitor) Values() []string {
	return []string{v.Time, v.Date, v.UID, v.Ward, v.Bed, v.Direction}
}

// CreateVisitorRequest is the visitor log form submission
type CreateVisitorRequest struct {
	UID       string `json:"uid"`
	Ward      string `json:"ward"`
	Bed       string `json:"bed"`
	Direction string `json:"direction"`
}

// NormalizeDirection maps anything other than OUT to the IN default.
func NormalizeDirection(d string) string {
	if d == DirectionOut {
		return DirectionOut
	}
	return DirectionIn
}
