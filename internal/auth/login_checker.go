package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	users       usersRepo
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client, users usersRepo) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		users:       users,
	}
}

// UserForToken resolves the session token to its user.
// Unknown and expired tokens give ErrUserNotAuthenticated.
func (lc *LoginChecker) UserForToken(ctx context.Context, token string) (*User, error) {
	sessionKey := sessionKeyPrefix + token
	sessionVal, err := lc.redisClient.Get(ctx, sessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUserNotAuthenticated
	}
	if err != nil {
		return nil, err
	}

	userID, createdAtUnixStr, found := strings.Cut(sessionVal, "|")
	if !found || userID == "" {
		return nil, fmt.Errorf("malformed session value: %s", sessionVal)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtUnixStr, 10, 64)
	if err != nil {
		return nil, err
	}

	if time.Since(time.Unix(createdAtUnix, 0)) > lc.ttl {
		return nil, ErrUserNotAuthenticated
	}

	return lc.users.Get(ctx, userID)
}
