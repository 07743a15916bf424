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

type BadgeService interface {
	CreateBadge(ctx context.Context, req *request.CreateBadgeRequest) (*response.BadgeResponse, error)
	GetBadges(ctx context.Context, searchTerm string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BadgeResponse], error)
	GetBadgeByID(ctx context.Context, badgeID string) (*response.BadgeResponse, []string, error)
	UpdateBadge(ctx context.Context, badgeID string, req *request.UpdateBadgeRequest) (*response.BadgeResponse, error)
	DeleteBadge(ctx context.Context, badgeID string) error
	AssignBadge(ctx context.Context, badgeID string, req *request.AssignBadgeRequest) error
	RevokeBadge(ctx context.Context, badgeID, userID string) error
}

type badgeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBadgeService(repo *repository.Repository, log *zap.Logger) BadgeService {
	return &badgeService{
		repo: repo,
		log:  log.With(zap.String("service", "badge")),
	}
}

func (s *badgeService) CreateBadge(ctx context.Context, req *request.CreateBadgeRequest) (*response.BadgeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Badge.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrConflict("a badge with this name already exists")
	}

	now := time.Now()
	badge := &entity.Badge{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Criteria:    req.Criteria,
	}

	if err := s.repo.Badge.Create(ctx, badge); err != nil {
		return nil, err
	}

	resp := response.BadgeToResponse(badge)
	return &resp, nil
}

func (s *badgeService) GetBadges(ctx context.Context, searchTerm string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BadgeResponse], error) {
	badges, err := s.repo.Badge.FindAll(ctx, searchTerm, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Badge.Count(ctx, searchTerm)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.BadgesToResponse(badges), req.Page, req.Limit(), total), nil
}

func (s *badgeService) GetBadgeByID(ctx context.Context, badgeID string) (*response.BadgeResponse, []string, error) {
	badgeUUID, err := uuid.Parse(badgeID)
	if err != nil {
		return nil, nil, utils.ErrBadRequest("invalid badge ID format")
	}

	badge, err := s.repo.Badge.FindByID(ctx, badgeUUID)
	if err != nil {
		return nil, nil, err
	}
	if badge == nil {
		return nil, nil, utils.ErrNotFound("badge not found")
	}

	holders, err := s.repo.Badge.FindHolders(ctx, badgeUUID)
	if err != nil {
		return nil, nil, err
	}

	holderIDs := make([]string, 0, len(holders))
	for _, h := range holders {
		holderIDs = append(holderIDs, h.String())
	}

	resp := response.BadgeToResponse(badge)
	return &resp, holderIDs, nil
}

func (s *badgeService) UpdateBadge(ctx context.Context, badgeID string, req *request.UpdateBadgeRequest) (*response.BadgeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	badgeUUID, err := uuid.Parse(badgeID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid badge ID format")
	}

	badge, err := s.repo.Badge.FindByID(ctx, badgeUUID)
	if err != nil {
		return nil, err
	}
	if badge == nil {
		return nil, utils.ErrNotFound("badge not found")
	}

	if req.Name != nil && *req.Name != badge.Name {
		existing, err := s.repo.Badge.FindByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, utils.ErrConflict("a badge with this name already exists")
		}
		badge.Name = *req.Name
	}
	if req.Description != nil {
		badge.Description = req.Description
	}
	if req.Icon != nil {
		badge.Icon = req.Icon
	}
	if req.Criteria != nil {
		badge.Criteria = req.Criteria
	}
	badge.UpdatedAt = time.Now()

	if err := s.repo.Badge.Update(ctx, badge); err != nil {
		return nil, err
	}

	resp := response.BadgeToResponse(badge)
	return &resp, nil
}

func (s *badgeService) DeleteBadge(ctx context.Context, badgeID string) error {
	badgeUUID, err := uuid.Parse(badgeID)
	if err != nil {
		return utils.ErrBadRequest("invalid badge ID format")
	}

	badge, err := s.repo.Badge.FindByID(ctx, badgeUUID)
	if err != nil {
		return err
	}
	if badge == nil {
		return utils.ErrNotFound("badge not found")
	}

	return s.repo.Badge.Delete(ctx, badgeUUID)
}

// AssignBadge is idempotent: re-assigning an already held badge succeeds.
func (s *badgeService) AssignBadge(ctx context.Context, badgeID string, req *request.AssignBadgeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	badgeUUID, err := uuid.Parse(badgeID)
	if err != nil {
		return utils.ErrBadRequest("invalid badge ID format")
	}
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return utils.ErrBadRequest("invalid user ID format")
	}

	badge, err := s.repo.Badge.FindByID(ctx, badgeUUID)
	if err != nil {
		return err
	}
	if badge == nil {
		return utils.ErrNotFound("badge not found")
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.ErrNotFound("user not found")
	}

	held, err := s.repo.Badge.FindUserBadge(ctx, userUUID, badgeUUID)
	if err != nil {
		return err
	}
	if held != nil {
		return nil
	}

	s.log.Info("Badge assigned",
		zap.String("badge_id", badgeUUID.String()),
		zap.String("user_id", userUUID.String()),
	)

	return s.repo.Badge.AssignToUser(ctx, &entity.UserBadge{
		UserID:    userUUID,
		BadgeID:   badgeUUID,
		AwardedAt: time.Now(),
	})
}

func (s *badgeService) RevokeBadge(ctx context.Context, badgeID, userID string) error {
	badgeUUID, err := uuid.Parse(badgeID)
	if err != nil {
		return utils.ErrBadRequest("invalid badge ID format")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return utils.ErrBadRequest("invalid user ID format")
	}

	held, err := s.repo.Badge.FindUserBadge(ctx, userUUID, badgeUUID)
	if err != nil {
		return err
	}
	if held == nil {
		return utils.ErrNotFound("user does not hold this badge")
	}

	return s.repo.Badge.RevokeFromUser(ctx, userUUID, badgeUUID)
}
