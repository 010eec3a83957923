package app

import (
	"gorm.io/gorm"

	"github.com/christianrafael21/hoopscout/internal/http"
	httpH "github.com/christianrafael21/hoopscout/internal/http/handlers"
	httpMW "github.com/christianrafael21/hoopscout/internal/http/middleware"
	"github.com/christianrafael21/hoopscout/internal/observability"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health           *httpH.HealthHandler
	Measurement      *httpH.MeasurementHandler
	ReferenceProfile *httpH.ReferenceProfileHandler
	Evaluation       *httpH.EvaluationHandler
	Athlete          *httpH.AthleteHandler
	Report           *httpH.ReportHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:           httpH.NewHealthHandler(db),
		Measurement:      httpH.NewMeasurementHandler(services.Measurements),
		ReferenceProfile: httpH.NewReferenceProfileHandler(services.ReferenceProfiles),
		Evaluation:       httpH.NewEvaluationHandler(services.Evaluations, services.Comparison),
		Athlete:          httpH.NewAthleteHandler(services.Evaluations, services.Statistics),
		Report:           httpH.NewReportHandler(services.Reports),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    cfg.Otel.ServiceName,
		TracingEnabled: cfg.Otel.Enabled,
		CORSOrigins:    cfg.CORS.Origins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,

		AuthMiddleware: middleware.Auth,

		HealthHandler:           handlers.Health,
		MeasurementHandler:      handlers.Measurement,
		ReferenceProfileHandler: handlers.ReferenceProfile,
		EvaluationHandler:       handlers.Evaluation,
		AthleteHandler:          handlers.Athlete,
		ReportHandler:           handlers.Report,
	})
}
