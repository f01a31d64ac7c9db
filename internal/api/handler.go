package api

import (
	"context"
	"io"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/feed"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
	"github.com/Kamar-Folarin/ghost-vault/internal/vault"
)

// ProjectService is the project workflow used by the handlers
type ProjectService interface {
	Submit(ctx context.Context, session *models.Session, req vault.SubmitRequest) (*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error)
	Delete(ctx context.Context, session *models.Session, id string) error
	CheckIn(ctx context.Context, session *models.Session, id, note string) (*models.Project, error)
	Haunt(ctx context.Context, session *models.Session, id string) (*models.Project, error)
	Rescore(ctx context.Context, id string) (*models.Project, error)
	Lineage(ctx context.Context, id string) ([]vault.LineageEntry, error)
	CheckIns(ctx context.Context, id string) ([]*models.CheckIn, error)
	Stats(ctx context.Context) (*models.PlatformStats, error)
	ScoreURL(ctx context.Context, repoURL, policyName string) (*vault.ScoreReport, error)
	Now() time.Time
}

// ApplicationService is the application workflow used by the handlers
type ApplicationService interface {
	Apply(ctx context.Context, session *models.Session, projectID string, req vault.ApplyRequest) (*models.Application, error)
	ListForOwner(ctx context.Context, session *models.Session, status models.ApplicationStatus) ([]*models.Application, error)
	ListMine(ctx context.Context, session *models.Session, status models.ApplicationStatus) ([]*models.Application, error)
	Approve(ctx context.Context, session *models.Session, id string) (*models.Application, error)
	Reject(ctx context.Context, session *models.Session, id string) (*models.Application, error)
}

// AuthService issues and resolves sessions
type AuthService interface {
	SignIn(ctx context.Context, req vault.SignInRequest) (*models.Session, error)
	Resolve(ctx context.Context, token string) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
}

// SweepMonitor reports the state of the background sweep
type SweepMonitor interface {
	Status() models.SweepStatus
}

type Handler struct {
	projects     ProjectService
	applications ApplicationService
	auth         AuthService
	sweeps       SweepMonitor
	feed         feed.Source
	authn        *Authenticator
	logger       *logrus.Logger
}

func NewHandler(
	projects ProjectService,
	applications ApplicationService,
	auth AuthService,
	sweeps SweepMonitor,
	source feed.Source,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		projects:     projects,
		applications: applications,
		auth:         auth,
		sweeps:       sweeps,
		feed:         source,
		authn:        NewAuthenticator(auth, logger),
		logger:       logger,
	}
}

// Authenticator returns the bearer session authenticator guarding the handlers
func (h *Handler) Authenticator() *Authenticator {
	return h.authn
}

func (h *Handler) SignIn(c *gin.Context) {
	var req vault.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt, User: session.User})
}

func (h *Handler) SignOut(c *gin.Context) {
	session := vault.SessionFrom(c.Request.Context())
	if err := h.auth.SignOut(c.Request.Context(), session.Token); err != nil {
		h.respondError(c, err)
		return
	}
	h.authn.Forget(session.Token)
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	session := vault.SessionFrom(c.Request.Context())
	c.JSON(http.StatusOK, session.User)
}

func (h *Handler) ListProjects(c *gin.Context) {
	filter := models.ProjectFilter{
		Search:    c.Query("search"),
		Status:    c.DefaultQuery("status", models.FilterAll),
		SortField: c.DefaultQuery("sort", models.SortHealth),
	}

	switch strings.ToLower(c.DefaultQuery("order", "desc")) {
	case "asc":
		filter.Ascending = true
	case "desc":
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order must be asc or desc"})
		return
	}

	var err error
	if filter.Limit, err = getIntQueryParam(c, "limit", 0); err != nil || filter.Limit < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit parameter"})
		return
	}
	if filter.Offset, err = getIntQueryParam(c, "offset", 0); err != nil || filter.Offset < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset parameter"})
		return
	}

	projects, err := h.projects.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	now := h.projects.Now()
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, newProjectView(p, now))
	}
	c.JSON(http.StatusOK, ProjectListResponse{Projects: views, Count: len(views)})
}

func (h *Handler) SubmitProject(c *gin.Context) {
	var req vault.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	project, err := h.projects.Submit(c.Request.Context(), vault.SessionFrom(c.Request.Context()), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"repository": project.RepoFullName,
	}).Info("Project ghosted")
	c.JSON(http.StatusCreated, newProjectView(project, h.projects.Now()))
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectView(project, h.projects.Now()))
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), vault.SessionFrom(c.Request.Context()), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	// The note is optional, so an empty body is accepted.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	project, err := h.projects.CheckIn(c.Request.Context(), vault.SessionFrom(c.Request.Context()), c.Param("id"), req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectView(project, h.projects.Now()))
}

func (h *Handler) HauntProject(c *gin.Context) {
	project, err := h.projects.Haunt(c.Request.Context(), vault.SessionFrom(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"owner":      project.OwnerGhostName,
		"generation": project.Generation,
	}).Info("Project haunted")
	c.JSON(http.StatusOK, newProjectView(project, h.projects.Now()))
}

func (h *Handler) RescoreProject(c *gin.Context) {
	project, err := h.projects.Rescore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectView(project, h.projects.Now()))
}

func (h *Handler) GetLineage(c *gin.Context) {
	lineage, err := h.projects.Lineage(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lineage)
}

func (h *Handler) ListCheckIns(c *gin.Context) {
	checkIns, err := h.projects.CheckIns(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if checkIns == nil {
		checkIns = []*models.CheckIn{}
	}
	c.JSON(http.StatusOK, checkIns)
}

// StreamProjects pushes a "projects" server-sent event whenever the listing
// changes and an "error" event when a poll fails.
func (h *Handler) StreamProjects(c *gin.Context) {
	ctx := c.Request.Context()
	next, stop := iter.Pull2(h.feed.Snapshots(ctx))
	defer stop()

	c.Stream(func(w io.Writer) bool {
		snapshot, err, ok := next()
		if !ok {
			return false
		}
		if err != nil {
			c.SSEvent("error", ErrorResponse{Error: "project feed unavailable"})
			return true
		}

		now := h.projects.Now()
		views := make([]ProjectView, 0, len(snapshot.Projects))
		for _, p := range snapshot.Projects {
			views = append(views, newProjectView(p, now))
		}
		c.SSEvent("projects", FeedEvent{Version: snapshot.Version, TakenAt: snapshot.TakenAt, Projects: views})
		return true
	})
}

func (h *Handler) Apply(c *gin.Context) {
	var req vault.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	application, err := h.applications.Apply(c.Request.Context(), vault.SessionFrom(c.Request.Context()), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *Handler) ListApplications(c *gin.Context) {
	ctx := c.Request.Context()
	session := vault.SessionFrom(ctx)
	status := models.ApplicationStatus(c.Query("status"))

	var (
		applications []*models.Application
		err          error
	)
	switch c.DefaultQuery("role", "applicant") {
	case "owner":
		applications, err = h.applications.ListForOwner(ctx, session, status)
	case "applicant":
		applications, err = h.applications.ListMine(ctx, session, status)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "role must be owner or applicant"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	if applications == nil {
		applications = []*models.Application{}
	}
	c.JSON(http.StatusOK, applications)
}

func (h *Handler) ApproveApplication(c *gin.Context) {
	application, err := h.applications.Approve(c.Request.Context(), vault.SessionFrom(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *Handler) RejectApplication(c *gin.Context) {
	application, err := h.applications.Reject(c.Request.Context(), vault.SessionFrom(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *Handler) ScoreRepository(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	report, err := h.projects.ScoreURL(c.Request.Context(), req.URL, req.Policy)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ScoreResponse{
		ScoreReport: *report,
		HealthColor: health.Color(report.Score.Total),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.projects.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetSweepStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.sweeps.Status())
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError writes err as an ErrorResponse with the status of its type.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(apperrors.TypeOf(err))
	message := apperrors.MessageOf(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		message = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: message})
}

func statusFor(errType apperrors.ErrorType) int {
	switch errType {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrInaccessible, apperrors.ErrForbidden:
		return http.StatusForbidden
	case apperrors.ErrInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrConflict:
		return http.StatusConflict
	case apperrors.ErrRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func getIntQueryParam(c *gin.Context, param string, defaultValue int) (int, error) {
	value := c.Query(param)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}
