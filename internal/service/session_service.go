package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/backend"
	"storefront/internal/models"
	"storefront/internal/util"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService logs customers in and out and resolves session cookies.
type SessionService struct {
	accounts AccountBackend
	store    SessionStore
	registry *Registry
	events   ActivityPublisher
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionService(
	accounts AccountBackend,
	store SessionStore,
	registry *Registry,
	events ActivityPublisher,
	ttl time.Duration,
) *SessionService {
	return &SessionService{
		accounts: accounts,
		store:    store,
		registry: registry,
		events:   publisherOrNop(events),
		ttl:      ttl,
		now:      time.Now,
		logger:   util.GetLogger(),
	}
}

// Login authenticates against the accounts service and stores a new
// session. The session never outlives the token it carries.
func (s *SessionService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	ctx, span := util.StartSpan(ctx, "SessionService.Login")
	defer span.End()

	res, err := s.accounts.Login(ctx, creds)
	if err != nil {
		util.RecordError(span, err)
		util.SessionsTotal.WithLabelValues("login_failed").Inc()
		return nil, fmt.Errorf("login failed: %w", err)
	}

	now := s.now()
	sess := &models.Session{
		ID:        uuid.New().String(),
		Token:     res.Token,
		User:      res.User,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if exp, ok := tokenExpiry(res.Token); ok && exp.Before(sess.ExpiresAt) {
		sess.ExpiresAt = exp
	}

	ttl := sess.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil, fmt.Errorf("login failed: %w", ErrUnauthenticated)
	}
	if err := s.store.SaveSession(ctx, sess, ttl); err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	util.SessionsTotal.WithLabelValues("login").Inc()
	if err := s.events.PublishSessionEvent(ctx, models.EventTypeCustomerLoggedIn, sess.User.ID, sess.ID); err != nil {
		s.logger.Warn("Failed to publish login event", zap.Error(err))
	}
	s.logger.Info("Customer logged in", zap.Int64("user_id", sess.User.ID), zap.String("session_id", sess.ID))

	return sess, nil
}

// Resolve loads the session for id. Unknown or expired sessions resolve to
// nil with no error; their in-memory state is dropped and expired records
// are deleted.
func (s *SessionService) Resolve(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, nil
	}

	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		// The store let the record expire; its in-memory state goes too.
		s.registry.Drop(id)
		return nil, nil
	}

	now := s.now()
	expired := sess.Expired(now)
	if exp, ok := tokenExpiry(sess.Token); ok && !now.Before(exp) {
		expired = true
	}
	if expired {
		if err := s.destroy(ctx, sess.ID); err != nil {
			s.logger.Warn("Failed to destroy expired session", zap.Error(err))
		}
		util.SessionsTotal.WithLabelValues("expired").Inc()
		s.logger.Info("Session expired", zap.String("session_id", sess.ID))
		return nil, nil
	}

	return sess, nil
}

// Logout ends the session. The accounts service is told on a best-effort
// basis; the local session is removed regardless.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "SessionService.Logout")
	defer span.End()

	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		s.registry.Drop(id)
		return nil
	}

	if err := s.accounts.Logout(backend.WithToken(ctx, sess.Token)); err != nil {
		s.logger.Warn("Accounts logout failed", zap.String("session_id", id), zap.Error(err))
	}
	if err := s.destroy(ctx, id); err != nil {
		util.RecordError(span, err)
		return err
	}

	util.SessionsTotal.WithLabelValues("logout").Inc()
	if err := s.events.PublishSessionEvent(ctx, models.EventTypeCustomerLoggedOut, sess.User.ID, id); err != nil {
		s.logger.Warn("Failed to publish logout event", zap.Error(err))
	}
	return nil
}

// Profile fetches the current user from the accounts service.
func (s *SessionService) Profile(ctx context.Context, sess *models.Session) (*models.User, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	ctx, span := util.StartSpan(ctx, "SessionService.Profile")
	defer span.End()

	user, err := s.accounts.Profile(backend.WithToken(ctx, sess.Token))
	if err != nil {
		util.RecordError(span, err)
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

func (s *SessionService) destroy(ctx context.Context, id string) error {
	s.registry.Drop(id)
	if err := s.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// accounts service remains the authority on validity.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case json.Number:
		v, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(v, 0), true
	}
	return time.Time{}, false
}
