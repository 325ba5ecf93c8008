// Package session implements ports.SessionStore as two independent
// key/value entries (bearer token and JSON-encoded user) on top of a
// pluggable KeyValue backend.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
	"github.com/voltmarket/market-client/internal/metrics"
)

// Fixed entry keys.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// KeyValue is the device-local storage a Store persists into. Missing keys
// are simply absent from GetMany's result.
type KeyValue interface {
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	SetMany(ctx context.Context, entries map[string]string) error
	DeleteMany(ctx context.Context, keys ...string) error
}

// Store is the session store used by the gateway and the bootstrap.
type Store struct {
	kv  KeyValue
	log zerolog.Logger
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(kv KeyValue, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Get returns the persisted session. A missing entry or a user entry that
// does not decode yields the zero Session and no error.
func (s *Store) Get(ctx context.Context) (domain.Session, error) {
	vals, err := s.kv.GetMany(ctx, TokenKey, UserKey)
	if err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("get", "error").Inc()
		return domain.Session{}, fmt.Errorf("session get: %w", err)
	}

	token, raw := vals[TokenKey], vals[UserKey]
	if token == "" || raw == "" || raw == "null" {
		metrics.SessionOperationsTotal.WithLabelValues("get", "empty").Inc()
		return domain.Session{}, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user is not valid JSON, treating as signed out")
		metrics.SessionOperationsTotal.WithLabelValues("get", "empty").Inc()
		return domain.Session{}, nil
	}

	metrics.SessionOperationsTotal.WithLabelValues("get", "ok").Inc()
	return domain.Session{Token: token, User: &user}, nil
}

// Set writes both entries in a single backend call.
func (s *Store) Set(ctx context.Context, sess domain.Session) error {
	if sess.IsZero() {
		return domain.ErrInvalidSession
	}

	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("session set: encode user: %w", err)
	}

	if err := s.kv.SetMany(ctx, map[string]string{
		TokenKey: sess.Token,
		UserKey:  string(raw),
	}); err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("set", "error").Inc()
		return fmt.Errorf("session set: %w", err)
	}

	metrics.SessionOperationsTotal.WithLabelValues("set", "ok").Inc()
	s.log.Debug().Str("user_id", sess.User.ID).Str("role", string(sess.User.RoleName)).Msg("session stored")
	return nil
}

// Clear removes both entries; removing absent entries is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.DeleteMany(ctx, TokenKey, UserKey); err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("clear", "error").Inc()
		return fmt.Errorf("session clear: %w", err)
	}
	metrics.SessionOperationsTotal.WithLabelValues("clear", "ok").Inc()
	return nil
}
