package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobportal/internal/model"
)

// ApplicationRepository defines application ledger persistence operations.
// The two count queries back the eligibility caps; they are typed methods so
// the policy's filters stay statically checkable.
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	Update(ctx context.Context, application *model.Application) error
	Delete(ctx context.Context, application *model.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	CountByApplicantAndJob(ctx context.Context, applicantID, jobID uuid.UUID) (int64, error)
	CountByApplicantSince(ctx context.Context, applicantID uuid.UUID, since time.Time) (int64, error)
	ListVisibleByEmployer(ctx context.Context, employerID uuid.UUID) ([]model.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]model.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository builds a GORM-backed repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) Update(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Save(application).Error
}

func (r *applicationRepository) Delete(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Delete(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// CountByApplicantAndJob counts the applicant's submissions against one job.
func (r *applicationRepository) CountByApplicantAndJob(ctx context.Context, applicantID, jobID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		Count(&count).Error
	return count, err
}

// CountByApplicantSince counts the applicant's submissions created at or
// after the given instant.
func (r *applicationRepository) CountByApplicantSince(ctx context.Context, applicantID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("applicant_id = ? AND created_at >= ?", applicantID, since).
		Count(&count).Error
	return count, err
}

// ListVisibleByEmployer returns the employer's applications that are not
// soft deleted, populated with applicant profile and job summary.
func (r *applicationRepository) ListVisibleByEmployer(ctx context.Context, employerID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job").
		Where("employer_id = ? AND employer_deleted = ?", employerID, false).
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// ListByApplicant returns everything the seeker submitted, including records
// the employer has hidden.
func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}
