package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
)

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{name: "validation", err: domainagg.Validation("op", "age must be between 0 and 18 years"), status: http.StatusBadRequest, code: "validation", message: "age must be between 0 and 18 years"},
		{name: "forbidden", err: domainagg.Forbidden("op", "coach is not linked to this evaluation"), status: http.StatusForbidden, code: "forbidden", message: "coach is not linked to this evaluation"},
		{name: "not found", err: domainagg.NotFound("op", "evaluation not found"), status: http.StatusNotFound, code: "not_found", message: "evaluation not found"},
		{name: "conflict", err: domainagg.Conflict("op", "stale"), status: http.StatusConflict, code: "conflict", message: "stale"},
		{name: "precondition", err: domainagg.NewError(domainagg.CodePreconditionFailed, "op", "fk", nil), status: http.StatusPreconditionFailed, code: "precondition_failed", message: "fk"},
		{name: "invariant", err: domainagg.NewError(domainagg.CodeInvariantViolation, "op", "links", nil), status: http.StatusUnprocessableEntity, code: "invariant_violation", message: "links"},
		{name: "retryable", err: domainagg.NewError(domainagg.CodeRetryable, "op", "locked", nil), status: http.StatusServiceUnavailable, code: "retryable", message: "locked"},
		{name: "plain", err: errors.New("dial tcp: refused"), status: http.StatusInternalServerError, code: "internal", message: "internal error"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondDomainError(c, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status: want=%d got=%d", tc.status, rec.Code)
			}
			var body ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tc.code || body.Error.Message != tc.message {
				t.Fatalf("body: want=%s/%q got=%s/%q", tc.code, tc.message, body.Error.Code, body.Error.Message)
			}
		})
	}
}

func TestBindMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	type req struct {
		AthleteID string `json:"athlete_id" binding:"required,uuid"`
		Age       int    `json:"age" binding:"gte=0"`
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"age":-1}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var r req
	err := c.ShouldBindJSON(&r)
	if err == nil {
		t.Fatalf("expected bind error")
	}
	if got, want := BindMessage(err), "AthleteID is required; Age must be >= 0"; got != want {
		t.Fatalf("message: want=%q got=%q", want, got)
	}
}
