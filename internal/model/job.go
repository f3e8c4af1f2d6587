package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job is a posting owned by exactly one employer.
type Job struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"size:100;not null;index"`
	Country     string    `json:"country" gorm:"size:100"`
	City        string    `json:"city" gorm:"size:100"`
	Location    string    `json:"location" gorm:"size:255"`

	// Either FixedSalary or the SalaryFrom/SalaryTo range is set, not both.
	FixedSalary *int `json:"fixed_salary,omitempty"`
	SalaryFrom  *int `json:"salary_from,omitempty"`
	SalaryTo    *int `json:"salary_to,omitempty"`

	Expired  bool      `json:"expired" gorm:"default:false;index"`
	PostedOn time.Time `json:"job_posted_on"`
	PostedBy uuid.UUID `json:"posted_by" gorm:"type:char(36);not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
