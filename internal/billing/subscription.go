package billing

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

type Subscription struct {
	UserID    string     `json:"userId"`
	Tier      Tier       `json:"tier"`
	IsActive  bool       `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Premium is true only for an active, unexpired premium subscription.
func (s Subscription) Premium(now time.Time) bool {
	if s.Tier != TierPremium || !s.IsActive {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// GetUserSubscription returns the free tier for users without a subscription row.
func (r *Repo) GetUserSubscription(ctx context.Context, userID string) (_ *Subscription, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.billing.get-subscription")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sub := Subscription{UserID: userID}
	var tier string
	err = r.db.QueryRow(
		ctx,
		`SELECT tier, is_active, expires_at FROM subscription WHERE user_id = $1;`,
		userID,
	).Scan(&tier, &sub.IsActive, &sub.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Subscription{UserID: userID, Tier: TierFree, IsActive: true}, nil
	}
	if err != nil {
		return nil, err
	}
	sub.Tier = Tier(tier)
	return &sub, nil
}
