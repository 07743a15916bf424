package usecase

import (
	"context"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/internal/dto/response"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	CreateSlot(ctx context.Context, guideID string, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error)
	GetSlots(ctx context.Context, req *request.ListAvailabilityRequest) (*response.PaginatedResponse[response.AvailabilityResponse], error)
	GetSlotByID(ctx context.Context, slotID string) (*response.AvailabilityResponse, error)
	UpdateSlot(ctx context.Context, guideID string, role entity.UserRole, slotID string, req *request.UpdateAvailabilityRequest) (*response.AvailabilityResponse, error)
	DeleteSlot(ctx context.Context, guideID string, role entity.UserRole, slotID string) error
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

// parseSlotTimes combines a calendar date with HH:MM wall times.
func parseSlotTimes(dateStr, startStr, endStr string) (date, start, end time.Time, err error) {
	date, err = time.Parse("2006-01-02", dateStr)
	if err != nil {
		return date, start, end, utils.ErrBadRequest("invalid date format, expected YYYY-MM-DD")
	}

	startClock, err := time.Parse("15:04", startStr)
	if err != nil {
		return date, start, end, utils.ErrBadRequest("invalid start time format, expected HH:MM")
	}
	endClock, err := time.Parse("15:04", endStr)
	if err != nil {
		return date, start, end, utils.ErrBadRequest("invalid end time format, expected HH:MM")
	}

	start = time.Date(date.Year(), date.Month(), date.Day(),
		startClock.Hour(), startClock.Minute(), 0, 0, time.UTC)
	end = time.Date(date.Year(), date.Month(), date.Day(),
		endClock.Hour(), endClock.Minute(), 0, 0, time.UTC)

	if !end.After(start) {
		return date, start, end, utils.ErrBadRequest("end time must be after start time")
	}

	return date, start, end, nil
}

func (s *availabilityService) CreateSlot(ctx context.Context, guideID string, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create availability validation failed", zap.Any("errors", errs))
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	date, start, end, err := parseSlotTimes(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	overlap, err := s.repo.Availability.FindOverlapping(ctx, guideUUID, date, start, end, nil)
	if err != nil {
		return nil, err
	}
	if overlap != nil {
		return nil, utils.ErrConflict("an availability slot already overlaps this time range")
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	now := time.Now()
	slot := &entity.Availability{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		GuideID:     guideUUID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: isAvailable,
	}

	if err := s.repo.Availability.Create(ctx, slot); err != nil {
		return nil, err
	}

	resp := response.AvailabilityToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) GetSlots(ctx context.Context, req *request.ListAvailabilityRequest) (*response.PaginatedResponse[response.AvailabilityResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	var filter repository.AvailabilityFilter
	if req.GuideID != "" {
		guideUUID, err := uuid.Parse(req.GuideID)
		if err != nil {
			return nil, utils.ErrBadRequest("invalid guide ID format")
		}
		filter.GuideID = &guideUUID
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, utils.ErrBadRequest("invalid date format, expected YYYY-MM-DD")
		}
		filter.Date = &date
	}
	filter.IsAvailable = req.IsAvailable

	slots, err := s.repo.Availability.FindAll(ctx, filter, req.Limit(), req.Offset(), "")
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Availability.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.AvailabilitiesToResponse(slots), req.Page, req.Limit(), total), nil
}

func (s *availabilityService) GetSlotByID(ctx context.Context, slotID string) (*response.AvailabilityResponse, error) {
	slotUUID, err := uuid.Parse(slotID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid availability ID format")
	}

	slot, err := s.repo.Availability.FindByID(ctx, slotUUID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, utils.ErrNotFound("availability slot not found")
	}

	resp := response.AvailabilityToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) loadOwned(ctx context.Context, guideID string, role entity.UserRole, slotID string) (*entity.Availability, error) {
	slotUUID, err := uuid.Parse(slotID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid availability ID format")
	}
	guideUUID, err := uuid.Parse(guideID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	slot, err := s.repo.Availability.FindByID(ctx, slotUUID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, utils.ErrNotFound("availability slot not found")
	}

	if !role.IsAdmin() && slot.GuideID != guideUUID {
		return nil, utils.ErrForbidden("you do not own this availability slot")
	}

	return slot, nil
}

func (s *availabilityService) UpdateSlot(ctx context.Context, guideID string, role entity.UserRole, slotID string, req *request.UpdateAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	slot, err := s.loadOwned(ctx, guideID, role, slotID)
	if err != nil {
		return nil, err
	}

	dateStr := slot.Date.Format("2006-01-02")
	startStr := slot.StartTime.Format("15:04")
	endStr := slot.EndTime.Format("15:04")
	if req.Date != nil {
		dateStr = *req.Date
	}
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	if req.EndTime != nil {
		endStr = *req.EndTime
	}

	date, start, end, err := parseSlotTimes(dateStr, startStr, endStr)
	if err != nil {
		return nil, err
	}

	overlap, err := s.repo.Availability.FindOverlapping(ctx, slot.GuideID, date, start, end, &slot.ID)
	if err != nil {
		return nil, err
	}
	if overlap != nil {
		return nil, utils.ErrConflict("an availability slot already overlaps this time range")
	}

	slot.Date = date
	slot.StartTime = start
	slot.EndTime = end
	if req.IsAvailable != nil {
		slot.IsAvailable = *req.IsAvailable
	}
	slot.UpdatedAt = time.Now()

	if err := s.repo.Availability.Update(ctx, slot); err != nil {
		return nil, err
	}

	resp := response.AvailabilityToResponse(slot)
	return &resp, nil
}

func (s *availabilityService) DeleteSlot(ctx context.Context, guideID string, role entity.UserRole, slotID string) error {
	slot, err := s.loadOwned(ctx, guideID, role, slotID)
	if err != nil {
		return err
	}
	return s.repo.Availability.Delete(ctx, slot.ID)
}
