package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobportal/internal/model"
)

// JobRepository defines job posting persistence operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	ListActive(ctx context.Context) ([]model.Job, error)
	ListActiveByCategories(ctx context.Context, categories []string) ([]model.Job, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]model.Job, error)
	CountActive(ctx context.Context) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository builds a GORM-backed repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Delete(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) ListActive(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.WithContext(ctx).Where("expired = ?", false).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) ListActiveByCategories(ctx context.Context, categories []string) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("expired = ? AND category IN ?", false, categories).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.WithContext(ctx).Where("posted_by = ?", employerID).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).Where("expired = ?", false).Count(&count).Error
	return count, err
}
