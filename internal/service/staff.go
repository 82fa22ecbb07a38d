package service

import (
	"context"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type StaffService struct {
	staffRepo    repo.StaffRepository
	scheduleRepo repo.ScheduleRepository
	logger       *zap.SugaredLogger
}

func NewStaffService(
	staffRepo repo.StaffRepository,
	scheduleRepo repo.ScheduleRepository,
	logger *zap.SugaredLogger,
) *StaffService {
	return &StaffService{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

func (s *StaffService) Create(ctx context.Context, staff *domain.Staff) error {
	staff.Active = true
	return s.staffRepo.Create(ctx, staff)
}

func (s *StaffService) Get(ctx context.Context, shop string, id primitive.ObjectID) (*domain.Staff, error) {
	return s.staffRepo.GetByID(ctx, shop, id)
}

func (s *StaffService) List(ctx context.Context, shop string) ([]domain.Staff, error) {
	return s.staffRepo.List(ctx, shop)
}

func (s *StaffService) Update(ctx context.Context, staff *domain.Staff) error {
	return s.staffRepo.Update(ctx, staff)
}

// Delete removes the staff member and every availability window they own.
func (s *StaffService) Delete(ctx context.Context, shop string, id primitive.ObjectID) error {
	if err := s.staffRepo.Delete(ctx, shop, id); err != nil {
		return err
	}

	if err := s.scheduleRepo.DeleteByStaff(ctx, shop, id); err != nil {
		return err
	}

	s.logger.Infow("staff removed with schedules", "shop", shop, "staff", id.Hex())

	return nil
}
