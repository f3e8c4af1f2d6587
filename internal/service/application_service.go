package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobportal/internal/errors"
	"jobportal/internal/model"
	"jobportal/internal/repository"
	"jobportal/internal/storage"
)

// allowedResumeTypes are the only resume content types accepted at submission.
var allowedResumeTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// ApplicationLimits are the submission caps enforced by the eligibility policy.
type ApplicationLimits struct {
	// MaxPerJob caps how often one seeker may apply to the same job.
	MaxPerJob int
	// MaxPerWindow caps submissions inside the trailing window.
	MaxPerWindow int
	// WindowDays is the length of the trailing window.
	WindowDays int
}

// ResumeUpload carries the resume file through the eligibility checks.
type ResumeUpload struct {
	File        io.Reader
	ContentType string
}

// PostApplicationInput is the content of a new submission.
type PostApplicationInput struct {
	JobID       uuid.UUID
	Name        string
	Email       string
	CoverLetter string
	Phone       string
	Address     string
	Resume      *ResumeUpload
}

// ApplicationService owns the eligibility and lifecycle policy over the
// application ledger.
type ApplicationService interface {
	PostApplication(ctx context.Context, actor model.Actor, in PostApplicationInput) (*model.Application, error)
	EmployerApplications(ctx context.Context, actor model.Actor) ([]model.Application, error)
	SeekerApplications(ctx context.Context, actor model.Actor) ([]model.Application, error)
	UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, status model.ApplicationStatus, reply string) (*model.Application, error)
	EmployerDelete(ctx context.Context, actor model.Actor, id uuid.UUID) error
	SeekerDelete(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

type applicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	uploader     storage.Uploader
	limits       ApplicationLimits
	now          func() time.Time
}

// NewApplicationService creates a new application service.
func NewApplicationService(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	uploader storage.Uploader,
	limits ApplicationLimits,
) ApplicationService {
	return &applicationService{
		applications: applications,
		jobs:         jobs,
		uploader:     uploader,
		limits:       limits,
		now:          time.Now,
	}
}

// PostApplication runs the eligibility checks in order, each a hard stop, and
// creates the application on success. The employer reference is snapshotted
// from the job owner at this point and never re-derived. A resume uploaded
// before a later check fails is not rolled back.
func (s *applicationService) PostApplication(ctx context.Context, actor model.Actor, in PostApplicationInput) (*model.Application, error) {
	if actor.Role != model.RoleJobSeeker {
		return nil, errors.ErrJobSeekerOnly
	}

	if in.JobID == uuid.Nil {
		return nil, errors.BadRequest("Job ID is required")
	}

	sameJobCount, err := s.applications.CountByApplicantAndJob(ctx, actor.ID, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("count applications for job: %w", err)
	}
	if sameJobCount >= int64(s.limits.MaxPerJob) {
		return nil, errors.BadRequest(fmt.Sprintf("You can apply to the same job at most %d times.", s.limits.MaxPerJob))
	}

	windowStart := s.now().AddDate(0, 0, -s.limits.WindowDays)
	windowCount, err := s.applications.CountByApplicantSince(ctx, actor.ID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("count applications in window: %w", err)
	}
	if windowCount >= int64(s.limits.MaxPerWindow) {
		return nil, errors.BadRequest(fmt.Sprintf("You can only apply to %d jobs per month.", s.limits.MaxPerWindow))
	}

	if in.Resume == nil || in.Resume.File == nil {
		return nil, errors.BadRequest("Resume file required")
	}
	if !allowedResumeTypes[in.Resume.ContentType] {
		return nil, errors.BadRequest("Invalid file type. Please upload PNG, JPEG, WEBP or PDF.")
	}

	uploaded, err := s.uploader.Upload(ctx, in.Resume.File, in.Resume.ContentType)
	if err != nil {
		return nil, errors.NewHTTPError(http.StatusInternalServerError, "Failed to upload resume")
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}

	application := &model.Application{
		JobID:          job.ID,
		Name:           in.Name,
		Email:          in.Email,
		CoverLetter:    in.CoverLetter,
		Phone:          in.Phone,
		Address:        in.Address,
		ResumePublicID: uploaded.PublicID,
		ResumeURL:      uploaded.URL,
		ApplicantID:    actor.ID,
		ApplicantRole:  model.RoleJobSeeker,
		EmployerID:     job.PostedBy,
		EmployerRole:   model.RoleEmployer,
		Status:         model.StatusPending,
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	return application, nil
}

// EmployerApplications lists the actor's applications, hiding soft-deleted
// records.
func (s *applicationService) EmployerApplications(ctx context.Context, actor model.Actor) ([]model.Application, error) {
	if actor.Role != model.RoleEmployer {
		return nil, errors.ErrEmployerOnly
	}
	return s.applications.ListVisibleByEmployer(ctx, actor.ID)
}

// SeekerApplications lists everything the actor submitted. The employer's
// visibility flag does not apply here.
func (s *applicationService) SeekerApplications(ctx context.Context, actor model.Actor) ([]model.Application, error) {
	if actor.Role != model.RoleJobSeeker {
		return nil, errors.ErrJobSeekerOnly
	}
	return s.applications.ListByApplicant(ctx, actor.ID)
}

// UpdateStatus sets status and reply on an application the actor owns as
// employer. Any transition between the three states is allowed; there is no
// terminal state.
func (s *applicationService) UpdateStatus(ctx context.Context, actor model.Actor, id uuid.UUID, status model.ApplicationStatus, reply string) (*model.Application, error) {
	if actor.Role != model.RoleEmployer {
		return nil, errors.ErrEmployerOnly
	}
	if !status.Valid() {
		return nil, errors.BadRequest("Status must be Pending, Accepted or Rejected.")
	}

	application, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if application.EmployerID != actor.ID {
		return nil, errors.ErrNotAuthorized
	}

	application.Status = status
	application.Reply = reply
	if err := s.applications.Update(ctx, application); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return application, nil
}

// EmployerDelete hides a rejected application from the employer's listing.
// The record stays in the ledger and in the seeker's view.
func (s *applicationService) EmployerDelete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if actor.Role != model.RoleEmployer {
		return errors.ErrEmployerOnly
	}

	application, err := s.findApplication(ctx, id)
	if err != nil {
		return err
	}
	if application.EmployerID != actor.ID {
		return errors.ErrNotAuthorized
	}
	if application.Status != model.StatusRejected {
		return errors.BadRequest("Can only delete rejected applications.")
	}

	application.EmployerDeleted = true
	if err := s.applications.Update(ctx, application); err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

// SeekerDelete removes the record for both parties. The actor must be the
// applicant who submitted it.
func (s *applicationService) SeekerDelete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if actor.Role != model.RoleJobSeeker {
		return errors.ErrJobSeekerOnly
	}

	application, err := s.findApplication(ctx, id)
	if err != nil {
		return err
	}
	if application.ApplicantID != actor.ID {
		return errors.ErrNotAuthorized
	}

	if err := s.applications.Delete(ctx, application); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

func (s *applicationService) findApplication(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return application, nil
}
