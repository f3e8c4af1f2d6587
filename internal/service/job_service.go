package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobportal/internal/errors"
	"jobportal/internal/model"
	"jobportal/internal/repository"
)

// JobInput is the content of a new or updated posting.
type JobInput struct {
	Title       string
	Description string
	Category    string
	Country     string
	City        string
	Location    string
	FixedSalary *int
	SalaryFrom  *int
	SalaryTo    *int
	Expired     *bool
}

// JobService handles job posting operations.
type JobService interface {
	ListActive(ctx context.Context) ([]model.Job, error)
	CountActive(ctx context.Context) (int64, error)
	ListRecommended(ctx context.Context, actor model.Actor) ([]model.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error)
	PostJob(ctx context.Context, actor model.Actor, in JobInput) (*model.Job, error)
	MyJobs(ctx context.Context, actor model.Actor) ([]model.Job, error)
	UpdateJob(ctx context.Context, actor model.Actor, id uuid.UUID, in JobInput) (*model.Job, error)
	DeleteJob(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

type jobService struct {
	jobs  repository.JobRepository
	users repository.UserRepository
	now   func() time.Time
}

// NewJobService creates a new job service.
func NewJobService(jobs repository.JobRepository, users repository.UserRepository) JobService {
	return &jobService{jobs: jobs, users: users, now: time.Now}
}

func (s *jobService) ListActive(ctx context.Context) ([]model.Job, error) {
	return s.jobs.ListActive(ctx)
}

func (s *jobService) CountActive(ctx context.Context) (int64, error) {
	return s.jobs.CountActive(ctx)
}

// ListRecommended returns live jobs in the actor's preferred categories.
// With no preferences set the full active listing comes back.
func (s *jobService) ListRecommended(ctx context.Context, actor model.Actor) ([]model.Job, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if len(user.PreferredCategories) == 0 {
		return s.jobs.ListActive(ctx)
	}
	return s.jobs.ListActiveByCategories(ctx, user.PreferredCategories)
}

func (s *jobService) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	return s.findJob(ctx, id)
}

// PostJob creates a posting owned by the acting employer. Exactly one salary
// shape must be supplied.
func (s *jobService) PostJob(ctx context.Context, actor model.Actor, in JobInput) (*model.Job, error) {
	if actor.Role != model.RoleEmployer {
		return nil, errors.ErrEmployerOnly
	}
	if in.Title == "" || in.Description == "" || in.Category == "" {
		return nil, errors.BadRequest("Please provide full job details.")
	}
	if err := validateSalary(in); err != nil {
		return nil, err
	}

	job := &model.Job{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Country:     in.Country,
		City:        in.City,
		Location:    in.Location,
		FixedSalary: in.FixedSalary,
		SalaryFrom:  in.SalaryFrom,
		SalaryTo:    in.SalaryTo,
		PostedOn:    s.now(),
		PostedBy:    actor.ID,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

func (s *jobService) MyJobs(ctx context.Context, actor model.Actor) ([]model.Job, error) {
	if actor.Role != model.RoleEmployer {
		return nil, errors.ErrEmployerOnly
	}
	return s.jobs.ListByEmployer(ctx, actor.ID)
}

// UpdateJob applies non-zero input fields to a posting the actor owns.
func (s *jobService) UpdateJob(ctx context.Context, actor model.Actor, id uuid.UUID, in JobInput) (*model.Job, error) {
	if actor.Role != model.RoleEmployer {
		return nil, errors.ErrEmployerOnly
	}

	job, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != actor.ID {
		return nil, errors.ErrNotAuthorized
	}

	if in.Title != "" {
		job.Title = in.Title
	}
	if in.Description != "" {
		job.Description = in.Description
	}
	if in.Category != "" {
		job.Category = in.Category
	}
	if in.Country != "" {
		job.Country = in.Country
	}
	if in.City != "" {
		job.City = in.City
	}
	if in.Location != "" {
		job.Location = in.Location
	}
	if in.FixedSalary != nil {
		job.FixedSalary = in.FixedSalary
		job.SalaryFrom = nil
		job.SalaryTo = nil
	}
	if in.SalaryFrom != nil || in.SalaryTo != nil {
		if in.SalaryFrom != nil {
			job.SalaryFrom = in.SalaryFrom
		}
		if in.SalaryTo != nil {
			job.SalaryTo = in.SalaryTo
		}
		job.FixedSalary = nil
	}
	if in.Expired != nil {
		job.Expired = *in.Expired
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes a posting the actor owns.
func (s *jobService) DeleteJob(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if actor.Role != model.RoleEmployer {
		return errors.ErrEmployerOnly
	}

	job, err := s.findJob(ctx, id)
	if err != nil {
		return err
	}
	if job.PostedBy != actor.ID {
		return errors.ErrNotAuthorized
	}

	if err := s.jobs.Delete(ctx, job); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *jobService) findJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return job, nil
}

func validateSalary(in JobInput) error {
	hasFixed := in.FixedSalary != nil
	// A single bound already counts as a range for the exclusivity check, so a
	// fixed salary plus a stray bound cannot slip through.
	hasRange := in.SalaryFrom != nil || in.SalaryTo != nil
	if hasFixed == hasRange {
		return errors.BadRequest("Please provide either a fixed salary or a salary range.")
	}
	if hasRange && (in.SalaryFrom == nil || in.SalaryTo == nil) {
		return errors.BadRequest("Please provide both salary range bounds.")
	}
	if hasRange && *in.SalaryFrom > *in.SalaryTo {
		return errors.BadRequest("Salary range is inverted.")
	}
	return nil
}
