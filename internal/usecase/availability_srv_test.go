package usecase

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAvailabilityService(avail *stubAvailabilityRepo) AvailabilityService {
	repo := &repository.Repository{
		Availability: avail,
	}
	return NewAvailabilityService(repo, zap.NewNop())
}

func TestCreateSlotParsesTimes(t *testing.T) {
	avail := &stubAvailabilityRepo{}

	var created *entity.Availability
	avail.create = func(ctx context.Context, slot *entity.Availability) error {
		created = slot
		return nil
	}

	service := newAvailabilityService(avail)
	guideID := uuid.New()

	resp, err := service.CreateSlot(context.Background(), guideID.String(), &request.CreateAvailabilityRequest{
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, guideID, created.GuideID)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), created.StartTime)
	assert.Equal(t, time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC), created.EndTime)
	assert.True(t, created.IsAvailable)
	assert.NotNil(t, resp)
}

func TestCreateSlotRejectsInvertedRange(t *testing.T) {
	service := newAvailabilityService(&stubAvailabilityRepo{})

	_, err := service.CreateSlot(context.Background(), uuid.New().String(), &request.CreateAvailabilityRequest{
		Date:      "2026-09-01",
		StartTime: "14:00",
		EndTime:   "09:00",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end time must be after start time")
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	avail := &stubAvailabilityRepo{
		findOverlapping: func(ctx context.Context, guideID uuid.UUID, date, start, end time.Time, excludeID *uuid.UUID) (*entity.Availability, error) {
			return &entity.Availability{Base: entity.Base{ID: uuid.New()}}, nil
		},
	}
	service := newAvailabilityService(avail)

	_, err := service.CreateSlot(context.Background(), uuid.New().String(), &request.CreateAvailabilityRequest{
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestGetSlotsFiltersByAvailability(t *testing.T) {
	guideID := uuid.New()

	var gotFilter repository.AvailabilityFilter
	avail := &stubAvailabilityRepo{
		findAll: func(ctx context.Context, filter repository.AvailabilityFilter, limit, offset int, orderBy string) ([]*entity.Availability, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	service := newAvailabilityService(avail)

	available := true
	_, err := service.GetSlots(context.Background(), &request.ListAvailabilityRequest{
		GuideID:     guideID.String(),
		Date:        "2026-09-01",
		IsAvailable: &available,
	})
	require.NoError(t, err)

	require.NotNil(t, gotFilter.GuideID)
	assert.Equal(t, guideID, *gotFilter.GuideID)
	require.NotNil(t, gotFilter.Date)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *gotFilter.Date)
	require.NotNil(t, gotFilter.IsAvailable)
	assert.True(t, *gotFilter.IsAvailable)

	_, err = service.GetSlots(context.Background(), &request.ListAvailabilityRequest{})
	require.NoError(t, err)
	assert.Nil(t, gotFilter.GuideID)
	assert.Nil(t, gotFilter.Date)
	assert.Nil(t, gotFilter.IsAvailable)
}

func TestUpdateSlotExcludesSelfFromOverlapCheck(t *testing.T) {
	guideID := uuid.New()
	slot := &entity.Availability{
		Base:        entity.Base{ID: uuid.New()},
		GuideID:     guideID,
		Date:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC),
		IsAvailable: true,
	}

	var excluded *uuid.UUID
	avail := &stubAvailabilityRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
			return slot, nil
		},
		findOverlapping: func(ctx context.Context, gID uuid.UUID, date, start, end time.Time, excludeID *uuid.UUID) (*entity.Availability, error) {
			excluded = excludeID
			return nil, nil
		},
	}
	service := newAvailabilityService(avail)

	endTime := "15:00"
	resp, err := service.UpdateSlot(context.Background(), guideID.String(), entity.RoleGuide,
		slot.ID.String(), &request.UpdateAvailabilityRequest{EndTime: &endTime})
	require.NoError(t, err)

	require.NotNil(t, excluded)
	assert.Equal(t, slot.ID, *excluded)
	assert.NotNil(t, resp)
}

func TestUpdateSlotForbiddenForOtherGuide(t *testing.T) {
	slot := &entity.Availability{
		Base:      entity.Base{ID: uuid.New()},
		GuideID:   uuid.New(),
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC),
	}
	avail := &stubAvailabilityRepo{
		findByID: func(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
			return slot, nil
		},
	}
	service := newAvailabilityService(avail)

	_, err := service.UpdateSlot(context.Background(), uuid.New().String(), entity.RoleGuide,
		slot.ID.String(), &request.UpdateAvailabilityRequest{})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)
}
