// Package session owns the persisted session triple and gates protected commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

// Store is the single writer of the session slots.
type Store struct {
	KV        ports.KeyValueStore
	Auth      ports.AuthClient
	Navigator ports.Navigator
	Logger    ports.Logger
}

// Login validates the username locally, exchanges it for a session and persists the triple.
func (s *Store) Login(ctx context.Context, username string) (domain.LoginResult, error) {
	name := strings.TrimSpace(username)
	if name == "" {
		return domain.LoginResult{}, &domain.ValidationError{Message: domain.MsgEmptyUsername}
	}

	result, err := s.Auth.Login(ctx, name)
	if err != nil {
		s.Logger.Warn("login failed", map[string]interface{}{"error": err.Error()})
		return domain.LoginResult{}, err
	}

	if err := s.KV.SetMany(result.Session.Values()); err != nil {
		return domain.LoginResult{}, fmt.Errorf("persist session: %w", err)
	}
	s.Logger.Info("logged in", map[string]interface{}{
		"user_id":       result.Session.UserID,
		"history_count": result.HistoryCount,
	})
	return result, nil
}

// Current reads the session without side effects. ok is false unless all slots are present.
func (s *Store) Current() (domain.Session, bool, error) {
	values := make(map[string]string, len(domain.SessionSlots))
	for _, slot := range domain.SessionSlots {
		value, present, err := s.KV.Get(slot)
		if err != nil {
			return domain.Session{}, false, fmt.Errorf("read %s: %w", slot, err)
		}
		if present {
			values[slot] = value
		}
	}
	session, ok := domain.SessionFromSlots(values)
	return session, ok, nil
}

// RequireSession returns the session or, when any slot is missing, clears the
// remainder, redirects to login and returns ErrLoginRequired.
func (s *Store) RequireSession(ctx context.Context) (domain.Session, error) {
	session, ok, err := s.Current()
	if err != nil {
		return domain.Session{}, err
	}
	if ok {
		return session, nil
	}
	if err := s.clear(); err != nil {
		s.Logger.Warn("clear partial session", map[string]interface{}{"error": err.Error()})
	}
	s.redirect("no active session")
	return domain.Session{}, domain.ErrLoginRequired
}

// Logout notifies the backend best-effort, then always clears local state and redirects.
func (s *Store) Logout(ctx context.Context) error {
	session, ok, err := s.Current()
	if err != nil {
		s.Logger.Warn("read session during logout", map[string]interface{}{"error": err.Error()})
	}
	if ok {
		if err := s.Auth.Logout(ctx, session.Token); err != nil {
			s.Logger.Debug("logout request failed", map[string]interface{}{"error": err.Error()})
		}
	}
	clearErr := s.clear()
	s.redirect("logged out")
	return clearErr
}

func (s *Store) clear() error {
	return s.KV.Delete(domain.SessionSlots...)
}

func (s *Store) redirect(reason string) {
	if s.Navigator != nil {
		s.Navigator.RedirectToLogin(reason)
	}
}

// FailureMessage is the user-facing text for a Login error.
func FailureMessage(err error) string {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	if msg, ok := domain.BackendMessage(err); ok {
		return msg
	}
	return domain.MsgLoginFailed
}

// IsLoginRequired reports whether err came from RequireSession.
func IsLoginRequired(err error) bool {
	return errors.Is(err, domain.ErrLoginRequired)
}
