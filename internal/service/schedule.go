package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ScheduleService manages staff availability windows, single or as
// repeating groups sharing a group id.
type ScheduleService struct {
	scheduleRepo repo.ScheduleRepository
	staffRepo    repo.StaffRepository
	logger       *zap.SugaredLogger
}

func NewScheduleService(
	scheduleRepo repo.ScheduleRepository,
	staffRepo repo.StaffRepository,
	logger *zap.SugaredLogger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		logger:       logger,
	}
}

type CreateScheduleInput struct {
	Shop  string
	Staff primitive.ObjectID
	Start time.Time
	End   time.Time
	Tag   string

	// Weeks > 0 repeats the window weekly, linked by one group id.
	Weeks int
}

func (s *ScheduleService) Create(ctx context.Context, in CreateScheduleInput) ([]domain.Schedule, error) {
	if !in.End.After(in.Start) {
		return nil, fmt.Errorf("schedule end must be after start: %w", domain.ErrValidation)
	}

	// window owner must exist
	if _, err := s.staffRepo.GetByID(ctx, in.Shop, in.Staff); err != nil {
		return nil, err
	}

	if in.Weeks <= 0 {
		schedule := domain.Schedule{
			Shop:      in.Shop,
			Staff:     in.Staff,
			Start:     in.Start,
			End:       in.End,
			Available: true,
			Tag:       in.Tag,
		}
		if err := s.scheduleRepo.Create(ctx, &schedule); err != nil {
			return nil, err
		}
		return []domain.Schedule{schedule}, nil
	}

	groupID := uuid.NewString()
	schedules := make([]domain.Schedule, 0, in.Weeks)
	for week := 0; week < in.Weeks; week++ {
		schedules = append(schedules, domain.Schedule{
			Shop:      in.Shop,
			Staff:     in.Staff,
			GroupID:   groupID,
			Start:     in.Start.AddDate(0, 0, week*7),
			End:       in.End.AddDate(0, 0, week*7),
			Available: true,
			Tag:       in.Tag,
		})
	}

	if err := s.scheduleRepo.InsertMany(ctx, schedules); err != nil {
		return nil, err
	}

	s.logger.Infow("schedule group created", "shop", in.Shop, "group_id", groupID, "windows", len(schedules))

	return schedules, nil
}

func (s *ScheduleService) Update(ctx context.Context, shop string, id primitive.ObjectID, patch domain.SchedulePatch) (*domain.Schedule, error) {
	return s.scheduleRepo.UpdateByID(ctx, shop, id, patch)
}

func (s *ScheduleService) Delete(ctx context.Context, shop string, id primitive.ObjectID) error {
	return s.scheduleRepo.Delete(ctx, shop, id)
}

func (s *ScheduleService) UpdateGroup(ctx context.Context, shop, groupID string, patch domain.SchedulePatch) error {
	return s.scheduleRepo.UpdateGroup(ctx, shop, groupID, patch)
}

func (s *ScheduleService) DeleteGroup(ctx context.Context, shop, groupID string) error {
	return s.scheduleRepo.DeleteGroup(ctx, shop, groupID)
}
