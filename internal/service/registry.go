package service

import (
	"context"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// SessionState is the in-memory state of one logged-in session.
type SessionState struct {
	SessionID string
	UserID    int64
	Cart      *CartHolder
	Orders    *OrderHistory

	expiresAt time.Time
	lastUsed  time.Time
}

// Registry keeps one SessionState per session id. States go away on
// logout, when their session can no longer be resolved, or when Sweep
// finds them expired or idle.
type Registry struct {
	carts  CartBackend
	orders OrderBackend
	events ActivityPublisher
	now    func() time.Time
	logger *zap.Logger

	mu     sync.Mutex
	states map[string]*SessionState
}

func NewRegistry(carts CartBackend, orders OrderBackend, events ActivityPublisher) *Registry {
	return &Registry{
		carts:  carts,
		orders: orders,
		events: publisherOrNop(events),
		now:    time.Now,
		logger: util.GetLogger(),
		states: make(map[string]*SessionState),
	}
}

// For returns the state of sess, creating it on first use. A nil session
// gets a fresh anonymous state that is not retained.
func (r *Registry) For(sess *models.Session) *SessionState {
	if sess == nil {
		return r.newState("", 0, "")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if st, ok := r.states[sess.ID]; ok {
		st.lastUsed = now
		st.expiresAt = sess.ExpiresAt
		return st
	}
	st := r.newState(sess.ID, sess.User.ID, sess.Token)
	st.lastUsed = now
	st.expiresAt = sess.ExpiresAt
	r.states[sess.ID] = st
	r.updateGauge()
	return st
}

func (r *Registry) newState(sessionID string, userID int64, token string) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		UserID:    userID,
		Cart:      NewCartHolder(r.carts, r.events, userID, token),
		Orders:    NewOrderHistory(r.orders, r.events, userID, token),
	}
}

// ForUser returns every live state belonging to userID.
func (r *Registry) ForUser(userID int64) []*SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var out []*SessionState
	for _, st := range r.states {
		if st.UserID == userID && !st.expired(now) {
			out = append(out, st)
		}
	}
	return out
}

// Drop forgets the state of sessionID.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[sessionID]; !ok {
		return
	}
	delete(r.states, sessionID)
	r.updateGauge()
}

// Sweep drops states whose session has expired or that have not been used
// for idle. It returns how many were dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	dropped := 0
	for id, st := range r.states {
		if st.expired(now) || (idle > 0 && now.Sub(st.lastUsed) >= idle) {
			delete(r.states, id)
			dropped++
		}
	}
	if dropped > 0 {
		r.updateGauge()
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.logger.Debug("Evicted session states", zap.Int("count", n))
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// updateGauge must be called with mu held.
func (r *Registry) updateGauge() {
	util.ActiveSessionStates.Set(float64(len(r.states)))
}

func (st *SessionState) expired(now time.Time) bool {
	return !st.expiresAt.IsZero() && !now.Before(st.expiresAt)
}
