package billing

import (
	"context"
	"fmt"
	"time"
)

const DefaultFreeTierRoutineLimit = 3

type subscriptionSource interface {
	GetUserSubscription(ctx context.Context, userID string) (*Subscription, error)
}

// Gate answers routine quota questions from the user's subscription.
type Gate struct {
	subscriptions subscriptionSource
	freeTierLimit int
	now           func() time.Time
}

func NewGate(subscriptions subscriptionSource, freeTierLimit int) *Gate {
	if freeTierLimit <= 0 {
		freeTierLimit = DefaultFreeTierRoutineLimit
	}
	return &Gate{
		subscriptions: subscriptions,
		freeTierLimit: freeTierLimit,
		now:           time.Now,
	}
}

// CanCreateRoutine reports whether a user owning currentCount routines may create one more.
func (g *Gate) CanCreateRoutine(ctx context.Context, userID string, currentCount int) (bool, error) {
	sub, err := g.subscriptions.GetUserSubscription(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get subscription: %w", err)
	}
	if sub.Premium(g.now()) {
		return true, nil
	}
	return currentCount < g.freeTierLimit, nil
}
