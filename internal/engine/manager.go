package engine

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/liftlog/internal/session"
	"github.com/2beens/liftlog/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

type ManagerParams struct {
	Routines       routineStore
	Histories      historyStore
	Resolver       historyResolver
	SnapshotStore  session.SnapshotStore // optional
	TickInterval   time.Duration
	MetricsManager *metrics.Manager
	Now            func() time.Time
}

type userSession struct {
	bridge   *session.Bridge
	engine   *Engine
	restored sync.Once
}

// Manager owns one bridge per user and the engine currently driving it.
// Both are created on first use; the bridge restores a persisted snapshot then.
type Manager struct {
	mu     sync.Mutex
	params ManagerParams
	users  map[string]*userSession
}

func NewManager(params ManagerParams) *Manager {
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Manager{
		params: params,
		users:  map[string]*userSession{},
	}
}

func (m *Manager) userSession(ctx context.Context, userID string) *userSession {
	m.mu.Lock()
	us, ok := m.users[userID]
	if !ok {
		bridge := session.NewBridge(session.BridgeParams{
			UserID:       userID,
			Store:        m.params.SnapshotStore,
			TickInterval: m.params.TickInterval,
			Now:          m.params.Now,
		})
		us = &userSession{
			bridge: bridge,
			engine: m.newEngine(userID, bridge),
		}
		m.users[userID] = us
	}
	m.mu.Unlock()

	// the store round-trip runs outside m.mu, only callers of the same user wait for it
	us.restored.Do(func() {
		if err := us.bridge.Restore(context.WithoutCancel(ctx)); err != nil {
			log.Errorf("restore session snapshot for user [%s]: %s", userID, err)
		}
	})
	return us
}

func (m *Manager) newEngine(userID string, bridge *session.Bridge) *Engine {
	return NewEngine(Params{
		UserID:         userID,
		Bridge:         bridge,
		Routines:       m.params.Routines,
		Histories:      m.params.Histories,
		Resolver:       m.params.Resolver,
		MetricsManager: m.params.MetricsManager,
		Now:            m.params.Now,
	})
}

// Current returns the user's engine. It may be idle, active or ended.
func (m *Manager) Current(ctx context.Context, userID string) *Engine {
	return m.userSession(ctx, userID).engine
}

// Bridge returns the user's session bridge, e.g. to subscribe to duration ticks.
func (m *Manager) Bridge(ctx context.Context, userID string) *session.Bridge {
	return m.userSession(ctx, userID).bridge
}

// fresh returns the current engine, replacing it first if it already ended.
func (m *Manager) fresh(ctx context.Context, userID string) *Engine {
	us := m.userSession(ctx, userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if us.engine.Ended() {
		us.engine.Close()
		us.engine = m.newEngine(userID, us.bridge)
	}
	return us.engine
}

// replace swaps in a new engine unconditionally and returns it.
func (m *Manager) replace(ctx context.Context, userID string) *Engine {
	us := m.userSession(ctx, userID)

	m.mu.Lock()
	old := us.engine
	us.engine = m.newEngine(userID, us.bridge)
	eng := us.engine
	m.mu.Unlock()

	old.Close()
	return eng
}

func (m *Manager) Start(ctx context.Context, userID string, req StartRequest) (*Engine, error) {
	eng := m.fresh(ctx, userID)
	return eng, eng.Start(ctx, req)
}

func (m *Manager) ResolveConflict(ctx context.Context, userID string, req StartRequest, resolution Resolution) (*Engine, error) {
	switch resolution {
	case ResolutionCancel:
		return m.Current(ctx, userID), nil
	case ResolutionResume:
		eng := m.fresh(ctx, userID)
		return eng, eng.ResolveConflict(ctx, req, resolution)
	case ResolutionDiscardAndStart:
		m.Current(ctx, userID).Discard(ctx)
		eng := m.replace(ctx, userID)
		return eng, eng.ResolveConflict(ctx, req, resolution)
	default:
		_, err := ParseResolution(string(resolution))
		return nil, err
	}
}

// Close stops enrichment and tickers of all users. Snapshots stay persisted.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*userSession, 0, len(m.users))
	for _, us := range m.users {
		sessions = append(sessions, us)
	}
	m.mu.Unlock()

	for _, us := range sessions {
		us.engine.Close()
		us.bridge.Close()
	}
}
