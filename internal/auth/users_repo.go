package auth

import (
	"context"
	"errors"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type UsersRepo struct {
	db *pgxpool.Pool
}

func NewUsersRepo(db *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{
		db: db,
	}
}

// GetByEmail returns the user and its bcrypt password hash.
func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (_ *User, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get-by-email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var user User
	var passwordHash string
	err = r.db.QueryRow(
		ctx,
		`SELECT id, email, display_name, password_hash FROM app_user WHERE email = $1;`,
		email,
	).Scan(&user.ID, &user.Email, &user.DisplayName, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &user, passwordHash, nil
}

func (r *UsersRepo) Get(ctx context.Context, id string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	var user User
	err = r.db.QueryRow(
		ctx,
		`SELECT id, email, display_name FROM app_user WHERE id = $1;`,
		id,
	).Scan(&user.ID, &user.Email, &user.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepo) Create(ctx context.Context, user User, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", user.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO app_user (id, email, display_name, password_hash) VALUES ($1, $2, $3, $4);`,
		user.ID, user.Email, user.DisplayName, passwordHash,
	)
	if pkg.IsUniqueViolationError(err) {
		return ErrUserExists
	}
	return err
}
