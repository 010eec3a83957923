package ctxutil

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Role is the account type carried in access tokens.
type Role string

const (
	RoleCoach   Role = "COACH"
	RoleAthlete Role = "ATLETA"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole normalizes a raw role claim. Unknown values return "".
func ParseRole(raw string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleCoach:
		return RoleCoach
	case RoleAthlete:
		return RoleAthlete
	case RoleAdmin:
		return RoleAdmin
	default:
		return ""
	}
}

// Actor is the authenticated caller resolved by the auth middleware.
type Actor struct {
	ID    uuid.UUID
	Role  Role
	Token string
}

type actorKey struct{}

func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func GetActor(ctx context.Context) *Actor {
	if a, ok := ctx.Value(actorKey{}).(*Actor); ok {
		return a
	}
	return nil
}
