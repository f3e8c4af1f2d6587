package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobportal/internal/errors"
	"jobportal/internal/model"
	"jobportal/internal/repository"
)

// ProfileUpdate carries optional profile changes. Nil fields are left alone.
// Seeker-only and employer-only fields are applied by role.
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string

	Skills     []string
	Experience *string
	Education  *string

	CompanyName *string
	Industry    *string
	CompanySize *string
}

// UserService handles profile operations on the identity store.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, actor model.Actor, update ProfileUpdate) (*model.User, error)
	UpdatePreferences(ctx context.Context, actor model.Actor, categories []string) ([]string, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the shared fields for everyone and the role-specific
// fields for the actor's role only.
func (s *userService) UpdateProfile(ctx context.Context, actor model.Actor, update ProfileUpdate) (*model.User, error) {
	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.Address != nil {
		user.Address = *update.Address
	}

	if user.Role == model.RoleJobSeeker {
		if update.Skills != nil {
			user.Skills = update.Skills
		}
		if update.Experience != nil {
			user.Experience = *update.Experience
		}
		if update.Education != nil {
			user.Education = *update.Education
		}
	} else {
		if update.CompanyName != nil {
			user.CompanyName = *update.CompanyName
		}
		if update.Industry != nil {
			user.Industry = *update.Industry
		}
		if update.CompanySize != nil {
			user.CompanySize = *update.CompanySize
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// UpdatePreferences replaces the actor's preferred job categories.
func (s *userService) UpdatePreferences(ctx context.Context, actor model.Actor, categories []string) ([]string, error) {
	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	user.PreferredCategories = categories
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user.PreferredCategories, nil
}

func (s *userService) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	return s.users.CountByRole(ctx, role)
}
