package services

import (
	"context"
	"strings"

	"frontdesk-backend/internal/models"
	"frontdesk-backend/internal/repositories"
	"frontdesk-backend/internal/sheets"
	"frontdesk-backend/internal/timeutil"

	"github.com/rs/zerolog/log"
)

type VisitorService struct {
	Visitors     *repositories.VisitorRepository
	Availability *repositories.AvailabilityRepository
	Clock        timeutil.Clock
}

func NewVisitorService(visitors *repositories.VisitorRepository, availability *repositories.AvailabilityRepository) *VisitorService {
	return &VisitorService{Visitors: visitors, Availability: availability, Clock: timeutil.Now}
}

// Log appends one visitor movement stamped with the current date and time.
// UID, Ward and Bed are stored as given, empty or not.
func (s *VisitorService) Log(ctx context.Context, req models.CreateVisitorRequest) (*models.Visitor, error) {
	stamp := s.Clock.StampNow()
	v := models.Visitor{
		Time:      stamp.Time,
		Date:      stamp.Date,
		UID:       strings.TrimSpace(req.UID),
		Ward:      strings.TrimSpace(req.Ward),
		Bed:       strings.TrimSpace(req.Bed),
		Direction: models.NormalizeDirection(req.Direction),
	}

	if err := s.Visitors.Create(ctx, v); err != nil {
		return nil, err
	}

	log.Info().Str("uid", v.UID).Str("ward", v.Ward).Str("direction", v.Direction).Msg("[Visitors] Visitor logged")
	return &v, nil
}

func (s *VisitorService) List(ctx context.Context) ([]models.Visitor, error) {
	return s.Visitors.List(ctx)
}

// AvailabilityTable returns the Availability sheet as stored.
func (s *VisitorService) AvailabilityTable(ctx context.Context) (*sheets.Table, error) {
	return s.Availability.Get(ctx)
}
