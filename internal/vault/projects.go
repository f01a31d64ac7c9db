package vault

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/ghost-vault/internal/db"
	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/metadata"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
	"github.com/Kamar-Folarin/ghost-vault/pkg/utils"
)

// SubmitRequest is a new ghost project
type SubmitRequest struct {
	Title               string `json:"title" binding:"required"`
	GithubURL           string `json:"github_url" binding:"required"`
	GhostLog            string `json:"ghost_log"`
	DeadManSwitchMonths int    `json:"dead_man_switch_months"`
}

// ScoreReport is a health preview that is not persisted
type ScoreReport struct {
	RepoFullName string             `json:"repo_full_name"`
	Facts        health.RepoFacts   `json:"facts"`
	Score        health.HealthScore `json:"score"`
}

// LineageEntry is one generation of a project's ownership
type LineageEntry struct {
	GhostName  string    `json:"ghost_name"`
	UserID     string    `json:"user_id"`
	At         time.Time `json:"at"`
	Generation int       `json:"generation"`
	IsOriginal bool      `json:"is_original"`
}

type ProjectService struct {
	store            db.Store
	fetcher          Fetcher
	submissionPolicy health.Policy
	logger           *logrus.Logger
	now              Clock
}

// ProjectOption configures a ProjectService
type ProjectOption func(*ProjectService)

// WithProjectClock overrides the service clock
func WithProjectClock(clock Clock) ProjectOption {
	return func(s *ProjectService) {
		s.now = clock
	}
}

func NewProjectService(store db.Store, fetcher Fetcher, submissionPolicy health.Policy, logger *logrus.Logger, opts ...ProjectOption) *ProjectService {
	if submissionPolicy == nil {
		submissionPolicy = health.SubmissionPolicy{}
	}
	s := &ProjectService{
		store:            store,
		fetcher:          fetcher,
		submissionPolicy: submissionPolicy,
		logger:           logger,
		now:              systemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit scores the repository and stores it as a new available project
// owned by the caller.
func (s *ProjectService) Submit(ctx context.Context, session *models.Session, req SubmitRequest) (*models.Project, error) {
	user, err := requireUser(session)
	if err != nil {
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.GithubURL = strings.TrimSpace(req.GithubURL)
	if req.Title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if req.GithubURL == "" {
		return nil, apperrors.NewValidationError("github_url is required", nil)
	}
	repoURL, err := utils.CanonicalGitHubURL(req.GithubURL)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid GitHub repository URL", err)
	}
	if !models.ValidDeadManSwitch(req.DeadManSwitchMonths) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("dead_man_switch_months must be one of %v", models.DeadManSwitchOptions), nil)
	}

	raw, facts, err := s.fetchFacts(ctx, repoURL)
	if err != nil {
		return nil, err
	}

	now := s.now()
	score := s.submissionPolicy.Score(facts, now)

	project := &models.Project{
		BaseModel:           models.BaseModel{ID: uuid.NewString()},
		Title:               req.Title,
		Description:         raw.Description,
		RepoURL:             repoURL,
		RepoFullName:        fullName(raw),
		GhostLog:            req.GhostLog,
		OwnerID:             user.ID,
		OwnerGhostName:      user.GhostName,
		CreatorID:           user.ID,
		CreatorGhostName:    user.GhostName,
		HealthScore:         &score,
		Status:              models.ProjectAvailable,
		Generation:          1,
		DeadManSwitchMonths: req.DeadManSwitchMonths,
		ExpiryDate:          now.AddDate(0, req.DeadManSwitchMonths, 0),
		LastCheckIn:         now,
		RepoInfo:            repoInfo(raw),
		Haunters:            []models.Haunter{},
	}
	project.Touch(now)

	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"repo":       project.RepoFullName,
		"score":      score.Total,
		"grade":      score.Grade,
	}).Info("Ghost project submitted")

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.store.GetProject(ctx, id)
}

func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	switch filter.Status {
	case "", models.FilterAll, models.FilterAvailable, models.FilterExpired:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status filter %q", filter.Status), nil)
	}
	switch filter.SortField {
	case "", models.SortHealth, models.SortAge, models.SortStars, models.SortExpiry:
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown sort field %q", filter.SortField), nil)
	}
	return s.store.ListProjects(ctx, filter, s.now())
}

// Delete removes a project. Only its current owner may do so.
func (s *ProjectService) Delete(ctx context.Context, session *models.Session, id string) error {
	user, err := requireUser(session)
	if err != nil {
		return err
	}

	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != user.ID {
		return apperrors.NewForbiddenError("only the owner can delete this project", nil)
	}

	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("project_id", id).Info("Ghost project deleted")
	return nil
}

// CheckIn resets the dead man's switch. Expired projects belong to the
// haunters and can no longer be checked in.
func (s *ProjectService) CheckIn(ctx context.Context, session *models.Session, id, note string) (*models.Project, error) {
	user, err := requireUser(session)
	if err != nil {
		return nil, err
	}

	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != user.ID {
		return nil, apperrors.NewForbiddenError("only the owner can check in", nil)
	}

	now := s.now()
	if project.IsExpired(now) {
		return nil, apperrors.NewConflictError("the dead man's switch has already expired", nil)
	}

	project.ExpiryDate = now.AddDate(0, project.DeadManSwitchMonths, 0)
	project.LastCheckIn = now
	project.Touch(now)

	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, err
	}

	if err := s.store.CreateCheckIn(ctx, &models.CheckIn{
		ID:        newULID(now),
		ProjectID: project.ID,
		UserID:    user.ID,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"expires":    project.ExpiryDate.Format(time.RFC3339),
	}).Info("Owner checked in")

	return project, nil
}

// Haunt hands an expired project to the caller, who becomes the next
// generation's owner with a fresh dead man's switch.
func (s *ProjectService) Haunt(ctx context.Context, session *models.Session, id string) (*models.Project, error) {
	user, err := requireUser(session)
	if err != nil {
		return nil, err
	}

	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !project.IsExpired(now) {
		return nil, apperrors.NewConflictError("project can only be haunted once its dead man's switch expires", nil)
	}
	if project.OwnerID == user.ID {
		return nil, apperrors.NewForbiddenError("you cannot haunt your own project", nil)
	}

	project.Haunters = append(project.Haunters, models.Haunter{
		GhostName: user.GhostName,
		UserID:    user.ID,
		HauntedAt: now,
	})
	project.OwnerID = user.ID
	project.OwnerGhostName = user.GhostName
	project.Generation++
	project.Status = models.ProjectHaunted
	project.ExpiryDate = now.AddDate(0, project.DeadManSwitchMonths, 0)
	project.LastCheckIn = now
	project.Touch(now)

	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, err
	}

	if err := s.store.CreateCheckIn(ctx, &models.CheckIn{
		ID:        newULID(now),
		ProjectID: project.ID,
		UserID:    user.ID,
		Note:      fmt.Sprintf("Haunted by %s", user.GhostName),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := s.transferApplications(ctx, project, user, now); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"haunter":    user.GhostName,
		"generation": project.Generation,
	}).Info("Project haunted")

	return project, nil
}

// transferApplications hands the pending applications of a haunted project to
// its new owner. The haunter's own pending application is approved.
func (s *ProjectService) transferApplications(ctx context.Context, project *models.Project, owner *models.User, now time.Time) error {
	pending, err := s.store.ListApplications(ctx, models.ApplicationFilter{
		ProjectID: project.ID,
		Status:    models.ApplicationPending,
	})
	if err != nil {
		return fmt.Errorf("listing pending applications: %w", err)
	}

	for _, app := range pending {
		app.OwnerID = owner.ID
		app.OwnerEmail = owner.Email
		if app.ApplicantID == owner.ID {
			app.Status = models.ApplicationApproved
		}
		app.Touch(now)
		if err := s.store.UpdateApplication(ctx, app); err != nil {
			return fmt.Errorf("transferring application %s: %w", app.ID, err)
		}
	}
	return nil
}

// Rescore refreshes the health snapshot with the detailed policy
func (s *ProjectService) Rescore(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, facts, err := s.fetchFacts(ctx, project.RepoURL)
	if err != nil {
		return nil, err
	}

	now := s.now()
	score := health.DetailedPolicy{}.Score(facts, now)
	project.HealthScore = &score
	project.RepoInfo = repoInfo(raw)
	if raw.Description != "" {
		project.Description = raw.Description
	}
	project.Touch(now)

	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"score":      score.Total,
	}).Debug("Project rescored")

	return project, nil
}

// Lineage lists the original ghost followed by every haunter
func (s *ProjectService) Lineage(ctx context.Context, id string) ([]LineageEntry, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	creatorID, creatorName := project.CreatorID, project.CreatorGhostName
	if creatorID == "" && len(project.Haunters) == 0 {
		creatorID, creatorName = project.OwnerID, project.OwnerGhostName
	}

	lineage := []LineageEntry{{
		GhostName:  creatorName,
		UserID:     creatorID,
		At:         project.CreatedAt,
		Generation: 1,
		IsOriginal: true,
	}}

	haunters := append([]models.Haunter(nil), project.Haunters...)
	sort.SliceStable(haunters, func(i, j int) bool {
		return haunters[i].HauntedAt.Before(haunters[j].HauntedAt)
	})
	for i, h := range haunters {
		lineage = append(lineage, LineageEntry{
			GhostName:  h.GhostName,
			UserID:     h.UserID,
			At:         h.HauntedAt,
			Generation: i + 2,
		})
	}
	return lineage, nil
}

func (s *ProjectService) CheckIns(ctx context.Context, id string) ([]*models.CheckIn, error) {
	if _, err := s.store.GetProject(ctx, id); err != nil {
		return nil, err
	}
	return s.store.ListCheckIns(ctx, id)
}

func (s *ProjectService) Stats(ctx context.Context) (*models.PlatformStats, error) {
	return s.store.GetStats(ctx, s.now())
}

// ScoreURL previews the health of a repository without storing anything
func (s *ProjectService) ScoreURL(ctx context.Context, repoURL, policyName string) (*ScoreReport, error) {
	policy, err := health.PolicyByName(policyName)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), err)
	}

	raw, facts, err := s.fetchFacts(ctx, repoURL)
	if err != nil {
		return nil, err
	}

	return &ScoreReport{
		RepoFullName: fullName(raw),
		Facts:        facts,
		Score:        policy.Score(facts, s.now()),
	}, nil
}

// Now exposes the service clock to presenters
func (s *ProjectService) Now() time.Time {
	return s.now()
}

func (s *ProjectService) fetchFacts(ctx context.Context, repoURL string) (*metadata.RawRepository, health.RepoFacts, error) {
	raw, err := s.fetcher.FetchByURL(ctx, repoURL)
	if err != nil {
		return nil, health.RepoFacts{}, err
	}

	facts, err := metadata.Normalize(raw)
	switch {
	case errors.Is(err, metadata.ErrNotFound):
		return nil, health.RepoFacts{}, apperrors.NewNotFoundError("repository not found or is private", err)
	case errors.Is(err, metadata.ErrInaccessible):
		return nil, health.RepoFacts{}, apperrors.NewInaccessibleError("repository is inaccessible", err)
	case err != nil:
		return nil, health.RepoFacts{}, err
	}
	return raw, facts, nil
}

func fullName(raw *metadata.RawRepository) string {
	return strings.ToLower(raw.Owner + "/" + raw.Name)
}

func repoInfo(raw *metadata.RawRepository) models.RepoInfo {
	languages := make([]string, 0, len(raw.Languages))
	for lang := range raw.Languages {
		languages = append(languages, lang)
	}
	// Largest share first, name as tie-break.
	sort.Slice(languages, func(i, j int) bool {
		a, b := raw.Languages[languages[i]], raw.Languages[languages[j]]
		if a != b {
			return a > b
		}
		return languages[i] < languages[j]
	})

	return models.RepoInfo{
		Owner:       raw.Owner,
		Name:        raw.Name,
		Description: raw.Description,
		Stars:       raw.Stars,
		Forks:       raw.Forks,
		OpenIssues:  raw.OpenIssues,
		Language:    raw.Language,
		Languages:   languages,
	}
}

func requireUser(session *models.Session) (*models.User, error) {
	if session == nil || session.User == nil {
		return nil, apperrors.NewUnauthorizedError("sign in required", nil)
	}
	return session.User, nil
}
