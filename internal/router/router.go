package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

// Deps holds what the router mounts. Nil optional fields disable the
// routes or middleware that need them.
type Deps struct {
	Logger         *zap.Logger
	MatchService   service.IMatchService
	Languages      api.LanguageLister
	TokenValidator middleware.TokenValidator // optional, enables admin routes
	RateLimiter    *middleware.RateLimiter   // optional
	HealthChecks   map[string]api.Pinger
	AllowedOrigins []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestid.New())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(deps.AllowedOrigins))

	api.NewHealthHandler(deps.HealthChecks).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	var matchMiddleware []gin.HandlerFunc
	if deps.RateLimiter != nil {
		matchMiddleware = append(matchMiddleware, deps.RateLimiter.Middleware())
	}
	api.NewMatchHandler(deps.MatchService).RegisterRoutes(v1, matchMiddleware...)

	if deps.Languages != nil {
		api.NewLanguageHandler(deps.Languages).RegisterRoutes(v1)
	}
	if deps.TokenValidator != nil {
		api.NewAdminHandler(deps.MatchService, deps.TokenValidator, log).RegisterRoutes(v1)
	}

	return router
}
