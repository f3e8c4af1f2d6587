package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "jobportal/internal/errors"
	"jobportal/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUserService_GetUser(t *testing.T) {
	id := uuid.New()

	t.Run("unknown user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(users)
		_, err := svc.GetUser(context.Background(), id)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("found", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Name: "Sam"}, nil)

		svc := NewUserService(users)
		user, err := svc.GetUser(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, "Sam", user.Name)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("seeker fields apply, employer fields are ignored", func(t *testing.T) {
		seeker := model.Actor{ID: uuid.New(), Role: model.RoleJobSeeker}
		stored := &model.User{ID: seeker.ID, Role: model.RoleJobSeeker, Name: "Old"}
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, seeker.ID).Return(stored, nil)
		users.On("Update", mock.Anything, stored).Return(nil)

		svc := NewUserService(users)
		user, err := svc.UpdateProfile(context.Background(), seeker, ProfileUpdate{
			Name:        strPtr("New"),
			Skills:      []string{"Go", "SQL"},
			Experience:  strPtr("5 years"),
			CompanyName: strPtr("Should Not Apply"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "New", user.Name)
		assert.Equal(t, []string{"Go", "SQL"}, user.Skills)
		assert.Equal(t, "5 years", user.Experience)
		assert.Empty(t, user.CompanyName)
	})

	t.Run("employer fields apply, seeker fields are ignored", func(t *testing.T) {
		employer := model.Actor{ID: uuid.New(), Role: model.RoleEmployer}
		stored := &model.User{ID: employer.ID, Role: model.RoleEmployer}
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, employer.ID).Return(stored, nil)
		users.On("Update", mock.Anything, stored).Return(nil)

		svc := NewUserService(users)
		user, err := svc.UpdateProfile(context.Background(), employer, ProfileUpdate{
			CompanyName: strPtr("Acme"),
			Industry:    strPtr("Manufacturing"),
			Skills:      []string{"Should Not Apply"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Acme", user.CompanyName)
		assert.Equal(t, "Manufacturing", user.Industry)
		assert.Empty(t, user.Skills)
	})

	t.Run("nil fields leave the profile alone", func(t *testing.T) {
		seeker := model.Actor{ID: uuid.New(), Role: model.RoleJobSeeker}
		stored := &model.User{ID: seeker.ID, Role: model.RoleJobSeeker, Name: "Keep", Phone: "1234567890"}
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, seeker.ID).Return(stored, nil)
		users.On("Update", mock.Anything, stored).Return(nil)

		svc := NewUserService(users)
		user, err := svc.UpdateProfile(context.Background(), seeker, ProfileUpdate{})

		assert.NoError(t, err)
		assert.Equal(t, "Keep", user.Name)
		assert.Equal(t, "1234567890", user.Phone)
	})
}

func TestUserService_UpdatePreferences(t *testing.T) {
	seeker := model.Actor{ID: uuid.New(), Role: model.RoleJobSeeker}
	stored := &model.User{ID: seeker.ID, Role: model.RoleJobSeeker, PreferredCategories: []string{"Old"}}

	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, seeker.ID).Return(stored, nil)
	users.On("Update", mock.Anything, stored).Return(nil)

	svc := NewUserService(users)
	prefs, err := svc.UpdatePreferences(context.Background(), seeker, []string{"Engineering", "Design"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Design"}, prefs)
	assert.Equal(t, []string{"Engineering", "Design"}, stored.PreferredCategories)
}

func TestUserService_CountByRole(t *testing.T) {
	users := new(MockUserRepository)
	users.On("CountByRole", mock.Anything, model.RoleEmployer).Return(int64(7), nil)

	svc := NewUserService(users)
	count, err := svc.CountByRole(context.Background(), model.RoleEmployer)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
