package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	// StatusPending is the initial state of every application.
	StatusPending ApplicationStatus = "Pending"
	// StatusAccepted marks an application the employer accepted.
	StatusAccepted ApplicationStatus = "Accepted"
	// StatusRejected marks an application the employer rejected. This is the
	// only state that unlocks the employer soft delete.
	StatusRejected ApplicationStatus = "Rejected"
)

// Valid reports whether the status is one of the three known values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application links one seeker's submission to one job. The employer
// reference is a snapshot of the job owner at submission time and is never
// re-derived afterwards.
type Application struct {
	ID uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`

	JobID uuid.UUID `json:"job_id" gorm:"type:char(36);not null;index"`
	Job   *Job      `json:"job,omitempty" gorm:"foreignKey:JobID"`

	Name        string `json:"name" gorm:"size:30;not null"`
	Email       string `json:"email" gorm:"size:255;not null"`
	CoverLetter string `json:"cover_letter" gorm:"type:text;not null"`
	Phone       string `json:"phone" gorm:"size:20;not null"`
	Address     string `json:"address" gorm:"size:255;not null"`

	ResumePublicID string `json:"resume_public_id" gorm:"size:255;not null"`
	ResumeURL      string `json:"resume_url" gorm:"size:512;not null"`

	ApplicantID   uuid.UUID `json:"applicant_id" gorm:"type:char(36);not null;index"`
	Applicant     *User     `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID"`
	ApplicantRole Role      `json:"applicant_role" gorm:"size:20;not null"`

	EmployerID   uuid.UUID `json:"employer_id" gorm:"type:char(36);not null;index"`
	EmployerRole Role      `json:"employer_role" gorm:"size:20;not null"`

	Status ApplicationStatus `json:"status" gorm:"size:20;not null;default:'Pending';index"`
	Reply  string            `json:"reply" gorm:"size:1000"`

	// EmployerDeleted hides the record from the employer listing. The
	// seeker's view is unconditional.
	EmployerDeleted bool `json:"employer_deleted" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
