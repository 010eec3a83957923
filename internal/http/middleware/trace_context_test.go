package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/observability"
	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.Nop()))
	r.GET("/trace", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, td.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "req-42" {
		t.Fatalf("request id not propagated: code=%d body=%q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") != "req-42" {
		t.Fatalf("request id header missing")
	}
	if rec.Header().Get("X-Trace-Id") == "" {
		t.Fatalf("trace id must be generated")
	}
}

func TestAttachTraceContext_RouteAndActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.New()
	r := gin.New()
	r.Use(AttachTraceContext())
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxutil.WithActor(c.Request.Context(), &ctxutil.Actor{ID: actorID, Role: ctxutil.RoleCoach}))
		c.Next()
	})
	var fields []interface{}
	r.GET("/api/evaluations/:id", func(c *gin.Context) {
		fields = ctxutil.CallerFields(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/evaluations/"+uuid.NewString(), nil)
	req.Header.Set("X-Trace-Id", "trace-7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: want=204 got=%d", rec.Code)
	}
	got := map[interface{}]interface{}{}
	for i := 0; i+1 < len(fields); i += 2 {
		got[fields[i]] = fields[i+1]
	}
	if got["trace_id"] != "trace-7" || got["route"] != "/api/evaluations/:id" {
		t.Fatalf("trace fields: got=%v", fields)
	}
	if got["actor_id"] != actorID.String() || got["role"] != "COACH" {
		t.Fatalf("actor fields: got=%v", fields)
	}
	if rec.Header().Get("X-Trace-Id") != "trace-7" {
		t.Fatalf("trace header: want=trace-7 got=%q", rec.Header().Get("X-Trace-Id"))
	}
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics(observability.WithNamespace("mw"))
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/evaluations/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/evaluations/abc", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `mw_api_requests_total{method="GET",route="/api/evaluations/:id",status="404"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("exposition missing %q", want)
	}
}
