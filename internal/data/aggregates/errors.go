package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("aggregate validation")
	// ErrInvariant indicates invariant rule violation.
	ErrInvariant = errors.New("aggregate invariant violation")
	// ErrConflict indicates optimistic/concurrency conflict.
	ErrConflict = errors.New("aggregate conflict")
	// ErrRetryable indicates transient retryable failure.
	ErrRetryable = errors.New("aggregate retryable")
)

var sentinels = []error{ErrValidation, ErrInvariant, ErrConflict, ErrRetryable}

func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

func InvariantError(msg string) error {
	return errors.Join(ErrInvariant, errors.New(strings.TrimSpace(msg)))
}

func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

func RetryableError(msg string) error {
	return errors.Join(ErrRetryable, errors.New(strings.TrimSpace(msg)))
}

// MapError maps infrastructure/domain failures into aggregate error codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return aggErr
	}
	wrap := func(code domainagg.ErrorCode) error {
		return domainagg.NewError(code, op, cleanMessage(err), err)
	}
	switch {
	case errors.Is(err, ErrValidation):
		return wrap(domainagg.CodeValidation)
	case errors.Is(err, ErrInvariant):
		return wrap(domainagg.CodeInvariantViolation)
	case errors.Is(err, ErrConflict):
		return wrap(domainagg.CodeConflict)
	case errors.Is(err, ErrRetryable):
		return wrap(domainagg.CodeRetryable)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return wrap(domainagg.CodeNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return wrap(domainagg.CodeConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return wrap(domainagg.CodePreconditionFailed)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrap(domainagg.CodeRetryable)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return wrap(domainagg.CodeConflict) // unique_violation
		case "23503":
			return wrap(domainagg.CodePreconditionFailed) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return wrap(domainagg.CodeRetryable) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "already exists"):
		return wrap(domainagg.CodeConflict)
	case strings.Contains(msg, "foreign key constraint"):
		return wrap(domainagg.CodePreconditionFailed)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return wrap(domainagg.CodeRetryable)
	default:
		return wrap(domainagg.CodeInternal)
	}
}

// cleanMessage drops the sentinel line errors.Join puts in front of tagged errors.
func cleanMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	for _, s := range sentinels {
		if rest, ok := strings.CutPrefix(msg, s.Error()+"\n"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return msg
}
