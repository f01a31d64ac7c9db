package vault

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/ghost-vault/internal/db"
	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

// ApplyRequest expresses interest in reviving a project
type ApplyRequest struct {
	Reason     string `json:"reason" binding:"required"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Portfolio  string `json:"portfolio"`
}

type ApplicationService struct {
	store  db.Store
	logger *logrus.Logger
	now    Clock
}

func NewApplicationService(store db.Store, logger *logrus.Logger, clock Clock) *ApplicationService {
	if clock == nil {
		clock = systemClock
	}
	return &ApplicationService{store: store, logger: logger, now: clock}
}

// Apply records the caller's interest. Owners cannot apply to their own
// project and an applicant has at most one pending application per project.
func (s *ApplicationService) Apply(ctx context.Context, session *models.Session, projectID string, req ApplyRequest) (*models.Application, error) {
	user, err := requireUser(session)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError("reason is required", nil)
	}

	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID == user.ID {
		return nil, apperrors.NewForbiddenError("you cannot apply to your own project", nil)
	}

	pending, err := s.store.ListApplications(ctx, models.ApplicationFilter{
		ApplicantID: user.ID,
		ProjectID:   project.ID,
		Status:      models.ApplicationPending,
	})
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, apperrors.NewConflictError("you already have a pending application for this project", nil)
	}

	ownerEmail := ""
	if owner, err := s.store.GetUser(ctx, project.OwnerID); err == nil {
		ownerEmail = owner.Email
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	now := s.now()
	app := &models.Application{
		BaseModel:      models.BaseModel{ID: uuid.NewString()},
		ProjectID:      project.ID,
		ProjectName:    project.Title,
		OwnerID:        project.OwnerID,
		OwnerEmail:     ownerEmail,
		ApplicantID:    user.ID,
		ApplicantName:  user.DisplayName,
		ApplicantEmail: user.Email,
		Reason:         strings.TrimSpace(req.Reason),
		Experience:     strings.TrimSpace(req.Experience),
		Skills:         strings.TrimSpace(req.Skills),
		Portfolio:      strings.TrimSpace(req.Portfolio),
		Status:         models.ApplicationPending,
	}
	app.Touch(now)

	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": app.ID,
		"project_id":     project.ID,
	}).Info("Application submitted")

	return app, nil
}

// ListForOwner returns applications to projects the caller owns
func (s *ApplicationService) ListForOwner(ctx context.Context, session *models.Session, status models.ApplicationStatus) ([]*models.Application, error) {
	user, err := requireUser(session)
	if err != nil {
		return nil, err
	}
	if err := validStatus(status); err != nil {
		return nil, err
	}
	return s.store.ListApplications(ctx, models.ApplicationFilter{OwnerID: user.ID, Status: status})
}

// ListMine returns the caller's own applications
func (s *ApplicationService) ListMine(ctx context.Context, session *models.Session, status models.ApplicationStatus) ([]*models.Application, error) {
	user, err := requireUser(session)
	if err != nil {
		return nil, err
	}
	if err := validStatus(status); err != nil {
		return nil, err
	}
	return s.store.ListApplications(ctx, models.ApplicationFilter{ApplicantID: user.ID, Status: status})
}

func (s *ApplicationService) Approve(ctx context.Context, session *models.Session, id string) (*models.Application, error) {
	return s.decide(ctx, session, id, models.ApplicationApproved)
}

func (s *ApplicationService) Reject(ctx context.Context, session *models.Session, id string) (*models.Application, error) {
	return s.decide(ctx, session, id, models.ApplicationRejected)
}

func (s *ApplicationService) decide(ctx context.Context, session *models.Session, id string, status models.ApplicationStatus) (*models.Application, error) {
	user, err := requireUser(session)
	if err != nil {
		return nil, err
	}

	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.OwnerID != user.ID {
		return nil, apperrors.NewForbiddenError("only the project owner can decide on applications", nil)
	}
	if app.Status != models.ApplicationPending {
		return nil, apperrors.NewConflictError("application has already been "+string(app.Status), nil)
	}

	app.Status = status
	app.Touch(s.now())
	if err := s.store.UpdateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": app.ID,
		"status":         status,
	}).Info("Application decided")

	return app, nil
}

func validStatus(status models.ApplicationStatus) error {
	switch status {
	case "", models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
		return nil
	default:
		return apperrors.NewValidationError("unknown application status "+string(status), nil)
	}
}
