package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// SetContextFromToken verifies tokenString and returns ctx carrying the resolved Actor.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	Verify(tokenString string) (*ctxutil.Actor, error)
	Mint(actorID uuid.UUID, role ctxutil.Role, ttl time.Duration) (string, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log       *logger.Logger
	secret    []byte
	accessTTL time.Duration
	clock     func() time.Time
}

func NewAuthService(log *logger.Logger, jwtSecretKey string, accessTTL time.Duration) AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &authService{
		log:       log.With("service", "AuthService"),
		secret:    []byte(jwtSecretKey),
		accessTTL: accessTTL,
		clock:     time.Now,
	}
}

func (as *authService) Mint(actorID uuid.UUID, role ctxutil.Role, ttl time.Duration) (string, error) {
	if actorID == uuid.Nil {
		return "", fmt.Errorf("mint token: missing actor id")
	}
	if ctxutil.ParseRole(string(role)) == "" {
		return "", fmt.Errorf("mint token: unknown role %q", role)
	}
	if ttl <= 0 {
		ttl = as.accessTTL
	}
	now := as.clock()
	claims := JWTClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.secret)
}

func (as *authService) Verify(tokenString string) (*ctxutil.Actor, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return as.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.clock))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	actorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}
	role := ctxutil.ParseRole(claims.Role)
	if role == "" {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidToken)
	}
	return &ctxutil.Actor{ID: actorID, Role: role, Token: tokenString}, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	actor, err := as.Verify(tokenString)
	if err != nil {
		as.log.Debug("token rejected", "error", err)
		return ctx, err
	}
	return ctxutil.WithActor(ctx, actor), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
