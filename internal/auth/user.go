package auth

import (
	"context"
	"errors"
)

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrWrongCredentials     = errors.New("wrong credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
)

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userCtxKey struct{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*User)
	return user, ok && user != nil
}

// ContextIdentity resolves the current user from the request context,
// where the auth middleware put it.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUser(ctx context.Context) (*User, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}
	return user, nil
}
