// Package session owns the authenticated identity for the process. The Store
// is the single source of truth for "who is logged in": every component reads
// it, and only Set, Clear, and Invalidate mutate it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/veldtec/talentctl/internal/domain"
	"github.com/veldtec/talentctl/internal/ports"
)

// StorageKey is the fixed key the persisted session record lives under.
const StorageKey = "session"

type Store struct {
	tokens ports.TokenStore

	mu      sync.RWMutex
	current *domain.Session
}

// record is the persisted TOML shape. Identity is stored alongside the token
// so a restart can restore a provisional session without a network call.
type record struct {
	Token string     `toml:"token"`
	User  recordUser `toml:"user"`
}

type recordUser struct {
	ID               string `toml:"id"`
	Email            string `toml:"email"`
	FullName         string `toml:"full_name,omitempty"`
	CompanyName      string `toml:"company_name,omitempty"`
	Role             string `toml:"role"`
	SubscriptionTier string `toml:"subscription_tier"`
}

func NewStore(tokens ports.TokenStore) *Store {
	return &Store{tokens: tokens}
}

// Set commits a new session: the record is written through to persistent
// storage before the call returns, then the in-memory session flips in one
// assignment. A storage-write failure is logged, not fatal; the in-memory
// session stays authoritative for the rest of the process lifetime.
func (s *Store) Set(ctx context.Context, user domain.User, token string) {
	if err := s.tokens.Put(ctx, StorageKey, encodeRecord(user, token)); err != nil {
		slog.Warn("persist session record", "err", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &domain.Session{User: user, Token: token}
}

// Clear removes the persisted record and drops the in-memory session.
// Idempotent: clearing an absent session is a no-op.
func (s *Store) Clear(ctx context.Context) {
	if err := s.tokens.Delete(ctx, StorageKey); err != nil {
		slog.Warn("remove session record", "err", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Invalidate clears the session only if token is still the current one, and
// reports whether it cleared anything. Concurrent 401 handlers that all saw
// the same token race here; exactly one of them wins.
func (s *Store) Invalidate(ctx context.Context, token string) bool {
	s.mu.Lock()
	if s.current == nil || token == "" || s.current.Token != token {
		s.mu.Unlock()
		return false
	}
	s.current = nil
	s.mu.Unlock()

	if err := s.tokens.Delete(ctx, StorageKey); err != nil {
		slog.Warn("remove session record", "err", err)
	}

	return true
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Restore loads a previously persisted session into memory. The restored
// identity is provisional until the first gateway call confirms or rejects
// it. A corrupt record is cleared rather than surfaced as an error.
func (s *Store) Restore(ctx context.Context) (domain.Session, bool, error) {
	raw, err := s.tokens.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrSessionRecordNotFound) {
			return domain.Session{}, false, nil
		}
		return domain.Session{}, false, fmt.Errorf("read session record: %w", err)
	}

	var rec record
	if err := toml.Unmarshal([]byte(raw), &rec); err != nil || rec.Token == "" {
		s.Clear(ctx)
		return domain.Session{}, false, nil
	}

	sess := domain.Session{
		User: domain.User{
			ID:               domain.UserID(rec.User.ID),
			Email:            rec.User.Email,
			FullName:         rec.User.FullName,
			CompanyName:      rec.User.CompanyName,
			Role:             rec.User.Role,
			SubscriptionTier: rec.User.SubscriptionTier,
		},
		Token: rec.Token,
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	return sess, true, nil
}

func encodeRecord(user domain.User, token string) string {
	rec := record{
		Token: token,
		User: recordUser{
			ID:               string(user.ID),
			Email:            user.Email,
			FullName:         user.FullName,
			CompanyName:      user.CompanyName,
			Role:             user.Role,
			SubscriptionTier: user.SubscriptionTier,
		},
	}

	encoded, err := toml.Marshal(rec)
	if err != nil {
		// record has no unmarshalable fields; keep the failure visible anyway.
		slog.Warn("encode session record", "err", err)
		return ""
	}

	return string(encoded)
}
