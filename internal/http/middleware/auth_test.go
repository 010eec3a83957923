package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
	"github.com/christianrafael21/hoopscout/internal/services"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := services.NewAuthService(logger.Nop(), "mw-secret", time.Hour)
	am := NewAuthMiddleware(logger.Nop(), auth)

	coachToken, err := auth.Mint(uuid.New(), ctxutil.RoleCoach, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	athleteToken, err := auth.Mint(uuid.New(), ctxutil.RoleAthlete, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	r := gin.New()
	protected := r.Group("/api", am.RequireAuth())
	protected.GET("/read", func(c *gin.Context) {
		actor := ctxutil.GetActor(c.Request.Context())
		c.String(http.StatusOK, string(actor.Role))
	})
	protected.POST("/write", am.RequireRole(ctxutil.RoleCoach), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{name: "missing token", method: http.MethodGet, path: "/api/read", status: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodGet, path: "/api/read", auth: "Bearer nope", status: http.StatusUnauthorized},
		{name: "athlete reads", method: http.MethodGet, path: "/api/read", auth: "Bearer " + athleteToken, status: http.StatusOK},
		{name: "athlete writes", method: http.MethodPost, path: "/api/write", auth: "Bearer " + athleteToken, status: http.StatusForbidden},
		{name: "coach writes", method: http.MethodPost, path: "/api/write", auth: "bearer " + coachToken, status: http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: want=%d got=%d body=%s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}
