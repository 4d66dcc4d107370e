package timeutil

import (
	"time"
)

// MYT is the Malaysia Time location (UTC+8) every stored timestamp uses.
var MYT *time.Location

func init() {
	var err error
	MYT, err = time.LoadLocation("Asia/Kuala_Lumpur")
	if err != nil {
		// Fallback: fixed zone when the tz database is not installed
		MYT = time.FixedZone("MYT", 8*60*60)
	}
}

// Common layouts for sheet values
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Now returns the current time in MYT
func Now() time.Time {
	return time.Now().In(MYT)
}

// ToMYT converts any time to MYT
func ToMYT(t time.Time) time.Time {
	return t.In(MYT)
}

// ParseInMYT parses a sheet timestamp as MYT wall-clock time
func ParseInMYT(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, MYT)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Stamp is one instant rendered the three ways the sheets store it.
type Stamp struct {
	Date     string
	Time     string
	Combined string
}

// NewStamp formats t in MYT.
func NewStamp(t time.Time) Stamp {
	m := t.In(MYT)
	return Stamp{
		Date:     m.Format(DateLayout),
		Time:     m.Format(TimeLayout),
		Combined: m.Format(DateTimeLayout),
	}
}

// Clock supplies the current instant. Services hold one so tests can pin time.
type Clock func() time.Time

// StampNow stamps the clock's current instant, falling back to Now for a nil clock.
func (c Clock) StampNow() Stamp {
	if c == nil {
		return NewStamp(Now())
	}
	return NewStamp(c())
}
