package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/christianrafael21/hoopscout/internal/http/handlers"
	httpMW "github.com/christianrafael21/hoopscout/internal/http/middleware"
	"github.com/christianrafael21/hoopscout/internal/observability"
	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler           *httpH.HealthHandler
	MeasurementHandler      *httpH.MeasurementHandler
	ReferenceProfileHandler *httpH.ReferenceProfileHandler
	EvaluationHandler       *httpH.EvaluationHandler
	AthleteHandler          *httpH.AthleteHandler
	ReportHandler           *httpH.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Metrics))

	coachOnly := func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
		coachOnly = cfg.AuthMiddleware.RequireRole(ctxutil.RoleCoach)
	}

	// Measurements
	if h := cfg.MeasurementHandler; h != nil {
		api.POST("/physical-measurements", coachOnly, h.CreatePhysical)
		api.GET("/physical-measurements/:id", h.GetPhysical)
		api.PUT("/physical-measurements/:id", coachOnly, h.UpdatePhysical)
		api.DELETE("/physical-measurements/:id", coachOnly, h.DeletePhysical)

		api.POST("/technical-measurements", coachOnly, h.CreateTechnical)
		api.GET("/technical-measurements/:id", h.GetTechnical)
		api.PUT("/technical-measurements/:id", coachOnly, h.UpdateTechnical)
		api.DELETE("/technical-measurements/:id", coachOnly, h.DeleteTechnical)
	}

	// Reference profiles
	if h := cfg.ReferenceProfileHandler; h != nil {
		api.GET("/reference-profiles", h.List)
		api.POST("/reference-profiles", coachOnly, h.Create)
		api.GET("/reference-profiles/category/:age", h.GetByAgeCategory)
		api.GET("/reference-profiles/:id", h.Get)
		api.PUT("/reference-profiles/:id", coachOnly, h.Update)
		api.DELETE("/reference-profiles/:id", coachOnly, h.Delete)
	}

	// Evaluations
	if h := cfg.EvaluationHandler; h != nil {
		api.POST("/evaluations", coachOnly, h.Create)
		api.GET("/evaluations/:id", h.Get)
		api.GET("/evaluations/:id/comparison", h.Comparison)
		api.PUT("/evaluations/:id", coachOnly, h.Update)
		api.DELETE("/evaluations/:id", coachOnly, h.Delete)
	}

	// Athlete views
	if h := cfg.AthleteHandler; h != nil {
		api.GET("/athletes/:id/evaluations", h.Evaluations)
		api.GET("/athletes/:id/history", h.History)
		api.GET("/athletes/:id/statistics", h.Statistics)
	}

	// Reports
	if h := cfg.ReportHandler; h != nil {
		api.POST("/reports/evaluations/:id", coachOnly, h.GenerateEvaluation)
		api.POST("/reports/athletes/:id/statistics", coachOnly, h.GenerateStatistics)
		api.GET("/reports/athletes/:id", h.ListByAthlete)
		api.GET("/reports/:id", h.Get)
		api.GET("/reports/:id/scorecard.png", h.Scorecard)
	}

	return r
}
