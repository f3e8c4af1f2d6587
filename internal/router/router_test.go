package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"jobportal/internal/auth"
	"jobportal/internal/model"
)

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, role model.Role, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, model.Role, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Get(2).(model.Role), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func runActorMiddleware(t *testing.T, authHeader string, store *MockTokenStore, jwtService *auth.JWTService) (*httptest.ResponseRecorder, model.Actor, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotActor model.Actor
	var reached bool
	next := func(c echo.Context) error {
		reached = true
		gotActor, _ = c.Get("actor").(model.Actor)
		return c.String(http.StatusOK, "ok")
	}

	err := actorMiddleware(jwtService, store)(next)(c)
	assert.NoError(t, err)
	return rec, gotActor, reached
}

func TestActorMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	userID := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		rec, _, reached := runActorMiddleware(t, "", new(MockTokenStore), jwtService)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _, reached := runActorMiddleware(t, "Bearer not-a-jwt", new(MockTokenStore), jwtService)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("valid token sets the actor", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID, "test@example.com", model.RoleJobSeeker)
		assert.NoError(t, err)

		store := new(MockTokenStore)
		store.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

		rec, actor, reached := runActorMiddleware(t, "Bearer "+token, store, jwtService)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		assert.Equal(t, userID, actor.ID)
		assert.Equal(t, model.RoleJobSeeker, actor.Role)
	})

	t.Run("blacklisted token is rejected despite a valid signature", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID, "test@example.com", model.RoleJobSeeker)
		assert.NoError(t, err)
		claims, err := jwtService.ValidateToken(token)
		assert.NoError(t, err)

		store := new(MockTokenStore)
		store.On("IsAccessTokenBlacklisted", mock.Anything, claims.ID).Return(true, nil)

		rec, _, reached := runActorMiddleware(t, "Bearer "+token, store, jwtService)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
		store.AssertExpectations(t)
	})

	t.Run("blacklist lookup errors fail open", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID, "test@example.com", model.RoleJobSeeker)
		assert.NoError(t, err)

		store := new(MockTokenStore)
		store.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).
			Return(false, assert.AnError)

		rec, _, reached := runActorMiddleware(t, "Bearer "+token, store, jwtService)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})
}
