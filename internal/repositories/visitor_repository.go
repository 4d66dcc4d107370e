package repositories

import (
	"context"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/sheets"
)

type VisitorRepository struct {
	Store sheets.Store
}

func NewVisitorRepository(store sheets.Store) *VisitorRepository {
	return &VisitorRepository{Store: store}
}

// List returns the Visitors worksheet in worksheet order.
func (r *VisitorRepository) List(ctx context.Context) ([]models.Visitor, error) {
	tbl, err := r.Store.ReadAll(ctx, sheets.TableVisitors)
	if err != nil {
		return nil, err
	}

	visitors := make([]models.Visitor, 0, tbl.Len())
	for _, row := range tbl.Rows {
		visitors = append(visitors, models.Visitor{
			Time:      row["Time"],
			Date:      row["Date"],
			UID:       row["UID"],
			Ward:      row["Ward"],
			Bed:       row["Bed"],
			Direction: row["IN / OUT"],
		})
	}
	return visitors, nil
}

func (r *VisitorRepository) Create(ctx context.Context, v models.Visitor) error {
	row := make(sheets.Row, len(models.VisitorColumns))
	for i, val := range v.Values() {
		row[models.VisitorColumns[i]] = val
	}

	values, err := orderedValues(ctx, r.Store, sheets.TableVisitors, models.VisitorColumns, row, 0)
	if err != nil {
		return err
	}
	return r.Store.Append(ctx, sheets.TableVisitors, values)
}
