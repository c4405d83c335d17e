package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder-backend/internal/account"
	"resume-builder-backend/internal/assist"
	googleauth "resume-builder-backend/internal/auth"
	"resume-builder-backend/internal/imports"
	"resume-builder-backend/internal/resumes"
	"resume-builder-backend/internal/services/health"
	"resume-builder-backend/internal/shared/config"
	"resume-builder-backend/internal/shared/server/middleware"
	"resume-builder-backend/internal/shared/server/respond"
	"resume-builder-backend/internal/versions"
)

// RouterDeps carries the handlers the router registers. Bootstrap builds
// them; tests substitute their own.
type RouterDeps struct {
	Config         config.Config
	ResumeHandler  *resumes.Handler
	VersionHandler *versions.Handler
	AssistHandler  *assist.Handler
	ImportHandler  *imports.Handler
	AccountHandler *account.Handler
	GoogleAuth     *googleauth.GoogleService
	Health         *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)

	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.VersionHandler != nil {
		deps.VersionHandler.RegisterRoutes(api)
	}
	if deps.ImportHandler != nil {
		deps.ImportHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.AssistHandler != nil {
		// Model calls are slow and metered, so the AI group gets its own
		// token bucket.
		ai := api.Group("", middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"AI": {Rate: 0.5, Burst: 5},
			},
			DefaultGroup: "AI",
		}))
		deps.AssistHandler.RegisterRoutes(ai)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
