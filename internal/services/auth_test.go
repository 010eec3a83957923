package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

func TestAuthService_MintAndVerify(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "test-secret", time.Hour)
	coachID := uuid.New()

	tok, err := svc.Mint(coachID, ctxutil.RoleCoach, 0)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	ctx, err := svc.SetContextFromToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	actor := ctxutil.GetActor(ctx)
	if actor == nil {
		t.Fatalf("expected actor in context")
	}
	if actor.ID != coachID || actor.Role != ctxutil.RoleCoach {
		t.Fatalf("actor: want=%s/%s got=%s/%s", coachID, ctxutil.RoleCoach, actor.ID, actor.Role)
	}
	if actor.Token != tok {
		t.Fatalf("actor token not carried")
	}
}

func TestAuthService_Rejects(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "test-secret", time.Hour)
	other := NewAuthService(logger.Nop(), "other-secret", time.Hour)

	foreign, err := other.Mint(uuid.New(), ctxutil.RoleCoach, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	expiredSvc := NewAuthService(logger.Nop(), "test-secret", time.Hour).(*authService)
	expiredSvc.clock = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Mint(uuid.New(), ctxutil.RoleAthlete, time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "  ", want: ErrMissingToken},
		{name: "garbage", token: "not.a.jwt", want: ErrInvalidToken},
		{name: "wrong secret", token: foreign, want: ErrInvalidToken},
		{name: "expired", token: expired, want: ErrInvalidToken},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ctx, err := svc.SetContextFromToken(context.Background(), tc.token)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error: want=%v got=%v", tc.want, err)
			}
			if ctxutil.GetActor(ctx) != nil {
				t.Fatalf("rejected token must not attach an actor")
			}
		})
	}
}

func TestAuthService_MintValidatesInput(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "test-secret", time.Hour)
	if _, err := svc.Mint(uuid.Nil, ctxutil.RoleCoach, time.Minute); err == nil {
		t.Fatalf("expected error for nil actor id")
	}
	if _, err := svc.Mint(uuid.New(), ctxutil.Role("REFEREE"), time.Minute); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if got := svc.GetAccessTTL(); got != time.Hour {
		t.Fatalf("ttl: want=%v got=%v", time.Hour, got)
	}
}
