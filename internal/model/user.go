package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role distinguishes the two kinds of portal users.
type Role string

const (
	// RoleJobSeeker applies to jobs and analyzes resumes.
	RoleJobSeeker Role = "Job Seeker"
	// RoleEmployer posts jobs and reviews applications.
	RoleEmployer Role = "Employer"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// Actor is the authenticated identity performing a request. It is built by
// the auth middleware from token claims and passed explicitly into services
// so that role and ownership checks stay testable.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// User represents a portal account, either a job seeker or an employer.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:30;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string    `json:"phone" gorm:"size:20;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null;index"`
	Address      string    `json:"address" gorm:"size:255"`

	// Job seeker profile fields.
	Skills     []string `json:"skills" gorm:"serializer:json"`
	Experience string   `json:"experience" gorm:"size:1000"`
	Education  string   `json:"education" gorm:"size:1000"`

	// Employer profile fields.
	CompanyName string `json:"company_name" gorm:"size:255"`
	Industry    string `json:"industry" gorm:"size:255"`
	CompanySize string `json:"company_size" gorm:"size:50"`

	PreferredCategories []string `json:"preferred_categories" gorm:"serializer:json"`

	IsVerified          bool       `json:"is_verified" gorm:"default:false"`
	VerifyToken         string     `json:"-" gorm:"size:64;index"`
	VerifyTokenExpiry   *time.Time `json:"-"`
	ResetPasswordToken  string     `json:"-" gorm:"size:64;index"`
	ResetPasswordExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Actor returns the actor value for this user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
