// Package session owns the authenticated-doctor state and its persistence:
// login, the 2FA handshake, logout, restore on startup, and token validation.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"nfc4care/internal/api"
	"nfc4care/internal/storage"
	"nfc4care/internal/token"
	"nfc4care/models"
)

var (
	// ErrNoPendingLogin means VerifySecondFactor was called without a prior
	// first-factor success.
	ErrNoPendingLogin = errors.New("no pending login to verify")
	// ErrSessionStorage means the token or doctor snapshot could not be
	// persisted; the session rolls back to unauthenticated.
	ErrSessionStorage = errors.New("failed to store session")
)

// Store is the session state holder. It is injectable, not a singleton, so
// tests can run isolated instances against their own state files.
type Store struct {
	api   *api.Client
	store *storage.Store
	guard *Guard
	log   zerolog.Logger

	mu          sync.Mutex
	initialized bool
	doctor      *models.Doctor
	pending     *models.PendingLogin
}

func New(client *api.Client, store *storage.Store, guard *Guard, log zerolog.Logger) *Store {
	return &Store{api: client, store: store, guard: guard, log: log}
}

// Initialize restores a prior session from the local store. The restore is
// optimistic: a locally valid token puts the doctor snapshot back into memory
// without a network round trip. Expired or corrupt state is cleared. Calling
// Initialize more than once is a no-op.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	tok, hasToken := s.store.Get(storage.KeyAuthToken)
	_, hasDoctor := s.store.Get(storage.KeyDoctorData)

	if !hasToken || !hasDoctor {
		s.log.Debug().Msg("no stored session")
		// A half-written session (one key without the other) is cleaned up.
		if hasToken || hasDoctor {
			s.clearLocked()
		}
		s.restorePending()
		return
	}

	if !token.IsLocallyValid(tok) {
		s.log.Info().Msg("stored token expired, clearing session")
		s.clearLocked()
		return
	}

	var doctor models.Doctor
	if err := s.store.GetJSON(storage.KeyDoctorData, &doctor); err != nil {
		s.log.Warn().Err(err).Msg("stored doctor snapshot unreadable, clearing session")
		s.clearLocked()
		return
	}

	s.doctor = &doctor
	s.restorePending()
	s.log.Debug().Str("doctor", doctor.FullName()).Msg("session restored")
}

// Login performs the first authentication factor. It returns requires2FA=true
// when the server demands a second factor; the session is then not yet
// established and VerifySecondFactor must follow.
func (s *Store) Login(ctx context.Context, email, password string) (requires2FA bool, err error) {
	if err := s.guard.Check(); err != nil {
		return false, err
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.guard.RecordFailure()
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.Requires2FA {
		pending := models.PendingLogin{Email: email, Token: resp.Token}
		if err := s.store.SetJSON(storage.KeyPendingLogin, pending); err != nil {
			return false, ErrSessionStorage
		}
		s.pending = &pending
		s.log.Debug().Str("email", email).Msg("2FA required, challenge stored")
		return true, nil
	}

	if err := s.establishLocked(resp.Token, resp.Doctor()); err != nil {
		return false, err
	}
	return false, nil
}

// VerifySecondFactor exchanges the 2FA code against the pending challenge. On
// failure the challenge stays intact so the user can retry.
func (s *Store) VerifySecondFactor(ctx context.Context, code string) error {
	s.mu.Lock()
	if s.pending == nil {
		s.restorePending()
	}
	pending := s.pending
	s.mu.Unlock()

	if pending == nil {
		return ErrNoPendingLogin
	}

	resp, err := s.api.VerifyTwoFactor(ctx, code, pending.Token)
	if err != nil {
		return err
	}

	tok := resp.Token
	if tok == "" {
		tok = pending.Token
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.establishLocked(tok, resp.Doctor()); err != nil {
		return err
	}
	if err := s.store.Remove(storage.KeyPendingLogin); err != nil {
		s.log.Warn().Err(err).Msg("failed to drop pending login")
	}
	s.pending = nil
	return nil
}

// establishLocked persists token and doctor snapshot and verifies both made
// it to disk; a partial write rolls the session back to unauthenticated.
// Caller holds the lock.
func (s *Store) establishLocked(tok string, doctor models.Doctor) error {
	if err := s.store.Set(storage.KeyAuthToken, tok); err != nil {
		s.clearLocked()
		return ErrSessionStorage
	}
	if err := s.store.SetJSON(storage.KeyDoctorData, doctor); err != nil {
		s.clearLocked()
		return ErrSessionStorage
	}

	_, hasToken := s.store.Get(storage.KeyAuthToken)
	_, hasDoctor := s.store.Get(storage.KeyDoctorData)
	if !hasToken || !hasDoctor {
		s.clearLocked()
		return ErrSessionStorage
	}

	s.doctor = &doctor
	s.guard.Reset()
	s.log.Info().Str("doctor", doctor.FullName()).Msg("session established")
	return nil
}

// Logout notifies the server best-effort and always clears local state.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("server logout failed, clearing locally anyway")
	}
	s.Clear()
}

// LogoutAll invalidates every session of this identity server-side, then
// clears local state regardless of the outcome.
func (s *Store) LogoutAll(ctx context.Context) {
	if err := s.api.LogoutAll(ctx); err != nil {
		s.log.Debug().Err(err).Msg("server logout-all failed, clearing locally anyway")
	}
	s.Clear()
}

// ValidateToken checks the stored token: local expiry first (no network),
// then a server round trip to catch revocation.
func (s *Store) ValidateToken(ctx context.Context) bool {
	tok, ok := s.store.Get(storage.KeyAuthToken)
	if !ok || !token.IsLocallyValid(tok) {
		return false
	}
	return s.api.ValidateToken(ctx, tok) == nil
}

// Refresh re-validates the current token and clears the session when it no
// longer holds.
func (s *Store) Refresh(ctx context.Context) {
	if _, ok := s.store.Get(storage.KeyAuthToken); !ok {
		return
	}
	if !s.ValidateToken(ctx) {
		s.log.Info().Msg("token no longer valid, clearing session")
		s.Clear()
	}
}

// Clear removes all local session state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	if err := s.store.Remove(
		storage.KeyAuthToken,
		storage.KeyDoctorData,
		storage.KeyPendingLogin,
		storage.KeyLastTokenValidation,
	); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session state")
	}
	s.doctor = nil
	s.pending = nil
}

// CurrentDoctor returns the authenticated doctor, or nil. The doctor is only
// reported while a token is actually stored, so an API-layer forced logout is
// reflected here immediately.
func (s *Store) CurrentDoctor() *models.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doctor == nil {
		return nil
	}
	if _, ok := s.store.Get(storage.KeyAuthToken); !ok {
		s.doctor = nil
		return nil
	}
	d := *s.doctor
	return &d
}

func (s *Store) IsAuthenticated() bool {
	return s.CurrentDoctor() != nil
}

// HasPendingLogin reports whether a 2FA challenge is waiting for its code.
func (s *Store) HasPendingLogin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		s.restorePending()
	}
	return s.pending != nil
}

// restorePending loads a persisted 2FA challenge, e.g. after a process
// restart between login and code entry. Caller holds the lock.
func (s *Store) restorePending() {
	var pending models.PendingLogin
	if err := s.store.GetJSON(storage.KeyPendingLogin, &pending); err != nil {
		return
	}
	if pending.Token != "" {
		s.pending = &pending
	}
}
