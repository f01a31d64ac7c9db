package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Ghost Vault API
// @version 1.0
// @description API for ghosting abandoned repositories, scoring their health and handing them to new maintainers
// @contact.name API Support
// @contact.url http://github.com/Kamar-Folarin
// @contact.email omofolarinwa.kamar@gamil.com
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

// SetupRouter configures the API routes
func SetupRouter(h *Handler, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireSession := h.Authenticator().Middleware()

	// API v1 group
	v1 := r.Group("/api/v1")
	{
		// @Summary Liveness probe
		// @Tags system
		// @Produce json
		// @Success 200 {object} map[string]string
		// @Router /health [get]
		v1.GET("/health", h.Health)

		authGroup := v1.Group("/auth")
		{
			// @Summary Sign in
			// @Description Sign in by email. First-time users are registered with a generated ghost name.
			// @Tags auth
			// @Accept json
			// @Produce json
			// @Param request body vault.SignInRequest true "Sign in request"
			// @Success 201 {object} SessionResponse
			// @Failure 400 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /auth/sessions [post]
			authGroup.POST("/sessions", h.SignIn)

			// @Summary Sign out
			// @Tags auth
			// @Security ApiKeyAuth
			// @Success 204 "No Content"
			// @Failure 401 {object} ErrorResponse
			// @Router /auth/sessions [delete]
			authGroup.DELETE("/sessions", requireSession, h.SignOut)
		}

		// @Summary Current user
		// @Tags auth
		// @Security ApiKeyAuth
		// @Produce json
		// @Success 200 {object} models.User
		// @Failure 401 {object} ErrorResponse
		// @Router /me [get]
		v1.GET("/me", requireSession, h.Me)

		projects := v1.Group("/projects")
		{
			// @Summary List projects
			// @Description Search, filter and sort the projects in the vault
			// @Tags projects
			// @Produce json
			// @Param search query string false "Matches title, description or languages"
			// @Param status query string false "all, available or expired" default(all)
			// @Param sort query string false "health, age, stars or expiry" default(health)
			// @Param order query string false "asc or desc" default(desc)
			// @Param limit query int false "Number of projects to return" default(0)
			// @Param offset query int false "Number of projects to skip" default(0)
			// @Success 200 {object} ProjectListResponse
			// @Failure 400 {object} ErrorResponse
			// @Failure 500 {object} ErrorResponse
			// @Router /projects [get]
			projects.GET("", h.ListProjects)

			// @Summary Ghost a project
			// @Description Submit a GitHub repository to the vault. Its health is scored on submission.
			// @Tags projects
			// @Security ApiKeyAuth
			// @Accept json
			// @Produce json
			// @Param request body vault.SubmitRequest true "Project submission"
			// @Success 201 {object} ProjectView
			// @Failure 400 {object} ErrorResponse
			// @Failure 403 {object} ErrorResponse "Repository is inaccessible"
			// @Failure 404 {object} ErrorResponse "Repository not found"
			// @Failure 409 {object} ErrorResponse "Repository already in the vault"
			// @Failure 429 {object} ErrorResponse
			// @Router /projects [post]
			projects.POST("", requireSession, h.SubmitProject)

			// @Summary Stream project listing changes
			// @Description Server-sent events: "projects" whenever the listing changes, "error" when a refresh fails
			// @Tags projects
			// @Produce text/event-stream
			// @Success 200 {object} FeedEvent
			// @Router /projects/stream [get]
			projects.GET("/stream", h.StreamProjects)

			// @Summary Get project details
			// @Tags projects
			// @Produce json
			// @Param id path string true "Project ID"
			// @Success 200 {object} ProjectView
			// @Failure 404 {object} ErrorResponse
			// @Router /projects/{id} [get]
			projects.GET("/:id", h.GetProject)

			// @Summary Delete a project
			// @Description Only the current owner may delete a project
			// @Tags projects
			// @Security ApiKeyAuth
			// @Param id path string true "Project ID"
			// @Success 204 "No Content"
			// @Failure 403 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Router /projects/{id} [delete]
			projects.DELETE("/:id", requireSession, h.DeleteProject)

			// @Summary Check in
			// @Description Reset the Dead Man's Switch of a project you own
			// @Tags projects
			// @Security ApiKeyAuth
			// @Accept json
			// @Produce json
			// @Param id path string true "Project ID"
			// @Param request body CheckInRequest false "Optional note"
			// @Success 200 {object} ProjectView
			// @Failure 403 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 409 {object} ErrorResponse "Switch already fired"
			// @Router /projects/{id}/check-in [post]
			projects.POST("/:id/check-in", requireSession, h.CheckIn)

			// @Summary Haunt a project
			// @Description Take over an expired project as its next owner
			// @Tags projects
			// @Security ApiKeyAuth
			// @Produce json
			// @Param id path string true "Project ID"
			// @Success 200 {object} ProjectView
			// @Failure 403 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 409 {object} ErrorResponse "Project has not expired"
			// @Router /projects/{id}/haunt [post]
			projects.POST("/:id/haunt", requireSession, h.HauntProject)

			// @Summary Rescore a project
			// @Description Refetch the repository and recompute its health with the detailed policy
			// @Tags projects
			// @Security ApiKeyAuth
			// @Produce json
			// @Param id path string true "Project ID"
			// @Success 200 {object} ProjectView
			// @Failure 404 {object} ErrorResponse
			// @Failure 429 {object} ErrorResponse
			// @Router /projects/{id}/rescore [post]
			projects.POST("/:id/rescore", requireSession, h.RescoreProject)

			// @Summary Project lineage
			// @Description The original creator followed by every haunter
			// @Tags projects
			// @Produce json
			// @Param id path string true "Project ID"
			// @Success 200 {array} vault.LineageEntry
			// @Failure 404 {object} ErrorResponse
			// @Router /projects/{id}/lineage [get]
			projects.GET("/:id/lineage", h.GetLineage)

			// @Summary Project check-ins
			// @Tags projects
			// @Produce json
			// @Param id path string true "Project ID"
			// @Success 200 {array} models.CheckIn
			// @Failure 404 {object} ErrorResponse
			// @Router /projects/{id}/check-ins [get]
			projects.GET("/:id/check-ins", h.ListCheckIns)

			// @Summary Apply to maintain a project
			// @Tags applications
			// @Security ApiKeyAuth
			// @Accept json
			// @Produce json
			// @Param id path string true "Project ID"
			// @Param request body vault.ApplyRequest true "Application"
			// @Success 201 {object} models.Application
			// @Failure 400 {object} ErrorResponse
			// @Failure 403 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 409 {object} ErrorResponse "Pending application exists"
			// @Router /projects/{id}/applications [post]
			projects.POST("/:id/applications", requireSession, h.Apply)
		}

		applications := v1.Group("/applications", requireSession)
		{
			// @Summary List applications
			// @Description Applications to your projects (role=owner) or sent by you (role=applicant)
			// @Tags applications
			// @Security ApiKeyAuth
			// @Produce json
			// @Param role query string false "owner or applicant" default(applicant)
			// @Param status query string false "pending, approved or rejected"
			// @Success 200 {array} models.Application
			// @Failure 400 {object} ErrorResponse
			// @Router /applications [get]
			applications.GET("", h.ListApplications)

			// @Summary Approve an application
			// @Tags applications
			// @Security ApiKeyAuth
			// @Produce json
			// @Param id path string true "Application ID"
			// @Success 200 {object} models.Application
			// @Failure 403 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 409 {object} ErrorResponse
			// @Router /applications/{id}/approve [post]
			applications.POST("/:id/approve", h.ApproveApplication)

			// @Summary Reject an application
			// @Tags applications
			// @Security ApiKeyAuth
			// @Produce json
			// @Param id path string true "Application ID"
			// @Success 200 {object} models.Application
			// @Failure 403 {object} ErrorResponse
			// @Failure 404 {object} ErrorResponse
			// @Failure 409 {object} ErrorResponse
			// @Router /applications/{id}/reject [post]
			applications.POST("/:id/reject", h.RejectApplication)
		}

		// @Summary Preview a repository's health
		// @Description Fetch a repository and score it without storing anything
		// @Tags scoring
		// @Accept json
		// @Produce json
		// @Param request body ScoreRequest true "Score request"
		// @Success 200 {object} ScoreResponse
		// @Failure 400 {object} ErrorResponse
		// @Failure 403 {object} ErrorResponse
		// @Failure 404 {object} ErrorResponse
		// @Failure 429 {object} ErrorResponse
		// @Router /score [post]
		v1.POST("/score", h.ScoreRepository)

		// @Summary Platform statistics
		// @Tags system
		// @Produce json
		// @Success 200 {object} models.PlatformStats
		// @Router /stats [get]
		v1.GET("/stats", h.GetStats)

		// @Summary Background sweep status
		// @Tags system
		// @Produce json
		// @Success 200 {object} models.SweepStatus
		// @Router /sweep [get]
		v1.GET("/sweep", h.GetSweepStatus)
	}

	return r
}

// RequestLogger logs every request once it has been served
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request served")
		case c.Writer.Status() >= 400:
			entry.Warn("Request served")
		default:
			entry.Debug("Request served")
		}
	}
}
