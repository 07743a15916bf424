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
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateGuide(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	CreateAdmin(ctx context.Context, actorRole entity.UserRole, req *request.RegisterRequest) (*response.UserResponse, error)
	GetUsers(ctx context.Context, req *request.ListUsersRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error)
	GetPublicProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	UpdateStatus(ctx context.Context, actorRole entity.UserRole, userID string, req *request.UpdateUserStatusRequest) (*response.UserResponse, error)
	UpdateRole(ctx context.Context, actorRole entity.UserRole, userID string, req *request.UpdateUserRoleRequest) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) createUser(ctx context.Context, req *request.RegisterRequest, role entity.UserRole) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrConflict("email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:     req.Email,
		Password:  string(hashed),
		Name:      req.Name,
		Role:      role,
		Status:    entity.UserStatusActive,
		ContactNo: req.Contact,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) CreateGuide(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	return s.createUser(ctx, req, entity.RoleGuide)
}

func (s *userService) CreateAdmin(ctx context.Context, actorRole entity.UserRole, req *request.RegisterRequest) (*response.UserResponse, error) {
	if actorRole != entity.RoleSuperAdmin {
		return nil, utils.ErrForbidden("only a super admin can create admins")
	}
	return s.createUser(ctx, req, entity.RoleAdmin)
}

func (s *userService) GetUsers(ctx context.Context, req *request.ListUsersRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	filter := repository.UserFilter{
		SearchTerm: req.SearchTerm,
		Role:       req.Role,
		Status:     req.Status,
	}

	users, err := s.repo.User.FindAll(ctx, filter, req.Limit(), req.Offset(), "")
	if err != nil {
		return nil, err
	}
	total, err := s.repo.User.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit(), total), nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrNotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// GetPublicProfile strips contact details from the profile. Guides keep their
// bio, expertise and rate visible since those sell the tour.
func (s *userService) GetPublicProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	resp, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp.Email = ""
	resp.ContactNo = nil
	resp.Address = nil
	return resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrNotFound("user not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.ContactNo != nil {
		user.ContactNo = req.ContactNo
	}
	if req.Photo != nil {
		user.Photo = req.Photo
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.LanguagesSpoken != nil {
		user.LanguagesSpoken = req.LanguagesSpoken
	}
	if req.Expertise != nil {
		user.Expertise = req.Expertise
	}
	if req.DailyRate != nil {
		user.DailyRate = req.DailyRate
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateStatus(ctx context.Context, actorRole entity.UserRole, userID string, req *request.UpdateUserStatusRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrNotFound("user not found")
	}

	if user.Role == entity.RoleSuperAdmin && actorRole != entity.RoleSuperAdmin {
		return nil, utils.ErrForbidden("cannot change a super admin account")
	}

	status := entity.UserStatus(req.Status)
	if err := s.repo.User.UpdateStatus(ctx, userUUID, status); err != nil {
		return nil, err
	}

	s.log.Info("User status changed",
		zap.String("user_id", userUUID.String()),
		zap.String("status", string(status)),
	)

	user.Status = status
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateRole(ctx context.Context, actorRole entity.UserRole, userID string, req *request.UpdateUserRoleRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.ErrBadRequest(utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrBadRequest("invalid user ID format")
	}

	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrNotFound("user not found")
	}

	if user.Role == entity.RoleSuperAdmin && actorRole != entity.RoleSuperAdmin {
		return nil, utils.ErrForbidden("cannot change a super admin account")
	}

	role := entity.UserRole(req.Role)
	if role == entity.RoleAdmin && actorRole != entity.RoleSuperAdmin {
		return nil, utils.ErrForbidden("only a super admin can promote to admin")
	}

	if err := s.repo.User.UpdateRole(ctx, userUUID, role); err != nil {
		return nil, err
	}

	user.Role = role
	resp := response.UserToResponse(user)
	return &resp, nil
}
