package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	repository.SessionRepository
	sessions map[uuid.UUID]*entity.Session
}

func (f *fakeSessionRepo) FindValid(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return f.sessions[id], nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

type authFixture struct {
	config    *utils.Config
	user      *entity.User
	session   *entity.Session
	sessions  *fakeSessionRepo
	users     *fakeUserRepo
	repo      *repository.Repository
	signedJWT string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		config: &utils.Config{
			JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 24},
		},
	}

	f.user = &entity.User{
		Base:   entity.Base{ID: uuid.New()},
		Name:   "Asha",
		Email:  "asha@example.com",
		Role:   entity.RoleTourist,
		Status: entity.UserStatusActive,
	}
	f.session = &entity.Session{
		ID:        uuid.New(),
		UserID:    f.user.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	f.sessions = &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{f.session.ID: f.session}}
	f.users = &fakeUserRepo{users: map[uuid.UUID]*entity.User{f.user.ID: f.user}}
	f.repo = &repository.Repository{Session: f.sessions, User: f.users}

	claims := usecase.Claims{
		UserID: f.user.ID.String(),
		Role:   string(f.user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        f.session.ID.String(),
			Subject:   f.user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(f.config.JWT.Secret))
	require.NoError(t, err)
	f.signedJWT = signed

	return f
}

func (f *authFixture) serve(t *testing.T, req *http.Request, inner http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	Auth(f.config, f.repo, zap.NewNop())(inner).ServeHTTP(rec, req)
	return rec
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	f := newAuthFixture(t)

	var gotUserID uuid.UUID
	var gotRole string
	inner := func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.signedJWT)

	rec := f.serve(t, req, inner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.user.ID, gotUserID)
	assert.Equal(t, string(entity.RoleTourist), gotRole)
}

func TestAuthAcceptsCookieToken(t *testing.T) {
	f := newAuthFixture(t)

	inner := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: f.signedJWT})

	rec := f.serve(t, req, inner)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := f.serve(t, req, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsBadSignature(t *testing.T) {
	f := newAuthFixture(t)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, usecase.Claims{
		UserID: f.user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        f.session.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forged, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)

	rec := f.serve(t, req, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a forged token")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	f := newAuthFixture(t)
	delete(f.sessions.sessions, f.session.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.signedJWT)

	rec := f.serve(t, req, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on a revoked session")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsBlockedUser(t *testing.T) {
	f := newAuthFixture(t)
	f.user.Status = entity.UserStatusBlocked

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.signedJWT)

	rec := f.serve(t, req, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a blocked user")
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	mw := RequireRoles(zap.NewNop(), entity.RoleAdmin, entity.RoleSuperAdmin)

	// admin passes
	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	ctx := utils.SetUserContext(req.Context(), uuid.New(), string(entity.RoleAdmin), uuid.New().String())
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(ok)).ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	// tourist forbidden
	req = httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	ctx = utils.SetUserContext(req.Context(), uuid.New(), string(entity.RoleTourist), uuid.New().String())
	rec = httptest.NewRecorder()
	mw(http.HandlerFunc(ok)).ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// anonymous unauthorized
	req = httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	rec = httptest.NewRecorder()
	mw(http.HandlerFunc(ok)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
