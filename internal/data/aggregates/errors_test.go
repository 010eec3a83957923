package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want domainagg.ErrorCode
	}{
		{"validation", ValidationError("bad input"), domainagg.CodeValidation},
		{"invariant", InvariantError("broken"), domainagg.CodeInvariantViolation},
		{"conflict", ConflictError("stale"), domainagg.CodeConflict},
		{"retryable", RetryableError("lock timeout"), domainagg.CodeRetryable},
		{"record not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, domainagg.CodeConflict},
		{"deadline", context.DeadlineExceeded, domainagg.CodeRetryable},
		{"canceled wrapped", fmt.Errorf("query: %w", context.Canceled), domainagg.CodeRetryable},
		{"pg unique", &pgconn.PgError{Code: "23505"}, domainagg.CodeConflict},
		{"pg fk", &pgconn.PgError{Code: "23503"}, domainagg.CodePreconditionFailed},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, domainagg.CodeRetryable},
		{"sqlite unique", errors.New("UNIQUE constraint failed: reference_profile.age_category"), domainagg.CodeConflict},
		{"sqlite busy", errors.New("database is locked"), domainagg.CodeRetryable},
		{"unknown", errors.New("boom"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError("op", tc.in)
			if !domainagg.IsCode(got, tc.want) {
				t.Fatalf("code: want=%s got=%q (%v)", tc.want, domainagg.CodeOf(got), got)
			}
			if !errors.Is(got, tc.in) {
				t.Fatalf("mapped error must keep its cause")
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	if MapError("op", nil) != nil {
		t.Fatalf("expected nil")
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeForbidden, "op", "not yours", nil)
	if out := MapError("other", in); out != in {
		t.Fatalf("expected passthrough aggregate error")
	}
	wrapped := fmt.Errorf("tx: %w", in)
	if out := MapError("other", wrapped); out != in {
		t.Fatalf("expected wrapped aggregate error to be unwrapped")
	}
}

func TestMapError_CleanMessage(t *testing.T) {
	err := MapError("Scouting.Evaluation.Update", ConflictError("version mismatch"))
	if got := domainagg.MessageOf(err); got != "version mismatch" {
		t.Fatalf("message: want=%q got=%q", "version mismatch", got)
	}
}
