package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=auth

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftlog-session||"
)

type usersRepo interface {
	GetByEmail(ctx context.Context, email string) (*User, string, error)
	Get(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user User, passwordHash string) error
}

type Service struct {
	redisClient *redis.Client
	users       usersRepo
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	users usersRepo,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:          users,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Register stores a new user with a bcrypt hash of the given password.
func (as *Service) Register(ctx context.Context, creds Credentials, displayName string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if creds.Email == "" || creds.Password == "" {
		return nil, ErrWrongCredentials
	}

	passwordHash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:          uuid.NewString(),
		Email:       creds.Email,
		DisplayName: displayName,
	}
	if err := as.users.Create(ctx, user, passwordHash); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Debugf("user [%s] registered", user.ID)
	return &user, nil
}

// Login checks the credentials and opens a new session, returning its token.
// The session value is "<user id>|<created at unix>" and expires after the TTL.
func (as *Service) Login(ctx context.Context, creds Credentials, createdAt time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, passwordHash, err := as.users.GetByEmail(ctx, creds.Email)
	if errors.Is(err, ErrUserNotFound) {
		return "", ErrWrongCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(creds.Password, passwordHash) {
		return "", ErrWrongCredentials
	}

	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal := fmt.Sprintf("%s|%d", user.ID, createdAt.Unix())
	if err := as.redisClient.Set(ctx, sessionKey, sessionVal, as.ttl).Err(); err != nil {
		return "", err
	}

	log.Debugf("user [%s] logged in", user.ID)
	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessionKey := sessionKeyPrefix + token
	deleted, err := as.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
