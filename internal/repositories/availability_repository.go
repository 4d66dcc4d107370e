package repositories

import (
	"context"

	"frontdesk-backend/internal/sheets"
)

// AvailabilityRepository reads the externally maintained Availability sheet.
// Its columns are not known here, so rows are passed through untyped.
type AvailabilityRepository struct {
	Store sheets.Store
}

func NewAvailabilityRepository(store sheets.Store) *AvailabilityRepository {
	return &AvailabilityRepository{Store: store}
}

func (r *AvailabilityRepository) Get(ctx context.Context) (*sheets.Table, error) {
	return r.Store.ReadAll(ctx, sheets.TableAvailability)
}
