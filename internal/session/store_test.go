package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfc4care/internal/api"
	"nfc4care/internal/notify"
	"nfc4care/internal/storage"
	"nfc4care/models"
)

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "7",
		"exp":     exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

func sessionForTest(t *testing.T, handler http.Handler) (*Store, *storage.Store) {
	t.Helper()

	baseURL := "http://127.0.0.1:1"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	store, err := storage.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	expiry := notify.NewExpirationNotifier()
	client := api.New(baseURL, 2*time.Second, time.Hour, store, expiry, zerolog.Nop())
	guard := NewGuard(store, 5, 15*time.Minute)

	sess := New(client, store, guard, zerolog.Nop())
	sess.Initialize()
	return sess, store
}

func authHandler(t *testing.T, tok string, requires2FA bool) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":%q,"professionnelId":7,"nom":"Dubois","prenom":"Martin","email":"doctor@example.com","role":"doctor","requires2FA":%v}`, tok, requires2FA)
	})
	mux.HandleFunc("POST /auth/verify-2fa", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+tok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"token":%q,"professionnelId":7,"nom":"Dubois","prenom":"Martin","email":"doctor@example.com","role":"doctor"}`, tok)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /auth/logout-all", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("GET /auth/validate", func(w http.ResponseWriter, r *http.Request) {})
	return mux
}

func TestLoginEstablishesSession(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	sess, store := sessionForTest(t, authHandler(t, tok, false))

	requires2FA, err := sess.Login(context.Background(), "doctor@example.com", "password")
	require.NoError(t, err)
	assert.False(t, requires2FA)
	assert.True(t, sess.IsAuthenticated())

	doctor := sess.CurrentDoctor()
	require.NotNil(t, doctor)
	assert.Equal(t, int64(7), doctor.ID)
	assert.Equal(t, "Dubois", doctor.Nom)
	assert.Equal(t, "Martin", doctor.Prenom)
	assert.Equal(t, "doctor", doctor.Role)

	storedTok, ok := store.Get(storage.KeyAuthToken)
	assert.True(t, ok)
	assert.Equal(t, tok, storedTok)

	var snapshot models.Doctor
	require.NoError(t, store.GetJSON(storage.KeyDoctorData, &snapshot))
	assert.Equal(t, *doctor, snapshot)
}

func TestLoginWith2FAStoresChallengeOnly(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	sess, store := sessionForTest(t, authHandler(t, tok, true))

	requires2FA, err := sess.Login(context.Background(), "doctor@example.com", "password")
	require.NoError(t, err)
	assert.True(t, requires2FA)
	assert.False(t, sess.IsAuthenticated())
	assert.True(t, sess.HasPendingLogin())

	_, hasToken := store.Get(storage.KeyAuthToken)
	assert.False(t, hasToken)

	var pending models.PendingLogin
	require.NoError(t, store.GetJSON(storage.KeyPendingLogin, &pending))
	assert.Equal(t, "doctor@example.com", pending.Email)
	assert.Equal(t, tok, pending.Token)
}

func TestVerifySecondFactorCompletesLogin(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	sess, store := sessionForTest(t, authHandler(t, tok, true))

	_, err := sess.Login(context.Background(), "doctor@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, sess.VerifySecondFactor(context.Background(), "123456"))
	assert.True(t, sess.IsAuthenticated())
	assert.False(t, sess.HasPendingLogin())

	_, hasPending := store.Get(storage.KeyPendingLogin)
	assert.False(t, hasPending)
}

func TestVerifySecondFactorWithoutChallenge(t *testing.T) {
	sess, _ := sessionForTest(t, authHandler(t, "tok", false))

	err := sess.VerifySecondFactor(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrNoPendingLogin)
}

func TestVerifySecondFactorFailureKeepsChallenge(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"token":%q,"professionnelId":7,"nom":"Dubois","prenom":"Martin","role":"doctor","requires2FA":true}`, tok)
	})
	mux.HandleFunc("POST /auth/verify-2fa", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Code 2FA invalide"}`))
	})
	sess, _ := sessionForTest(t, mux)

	_, err := sess.Login(context.Background(), "doctor@example.com", "password")
	require.NoError(t, err)

	err = sess.VerifySecondFactor(context.Background(), "000000")
	require.Error(t, err)
	assert.False(t, sess.IsAuthenticated())
	assert.True(t, sess.HasPendingLogin(), "challenge must survive a failed code")
}

func TestPendingChallengeSurvivesRestart(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	path := filepath.Join(t.TempDir(), "state.json")

	store1, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, store1.SetJSON(storage.KeyPendingLogin, models.PendingLogin{
		Email: "doctor@example.com",
		Token: tok,
	}))

	store2, err := storage.Open(path)
	require.NoError(t, err)
	expiry := notify.NewExpirationNotifier()
	client := api.New("http://127.0.0.1:1", time.Second, time.Hour, store2, expiry, zerolog.Nop())
	sess := New(client, store2, NewGuard(store2, 5, 15*time.Minute), zerolog.Nop())
	sess.Initialize()

	assert.True(t, sess.HasPendingLogin())
}

func TestInitializeRestoresValidSession(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.KeyAuthToken, tok))
	require.NoError(t, store.SetJSON(storage.KeyDoctorData, models.Doctor{ID: 7, Nom: "Dubois", Prenom: "Martin", Role: "doctor"}))

	// API client points nowhere: the restore must not need the network.
	expiry := notify.NewExpirationNotifier()
	client := api.New("http://127.0.0.1:1", time.Second, time.Hour, store, expiry, zerolog.Nop())
	sess := New(client, store, NewGuard(store, 5, 15*time.Minute), zerolog.Nop())
	sess.Initialize()

	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "Martin Dubois", sess.CurrentDoctor().FullName())
}

func TestInitializeClearsExpiredSession(t *testing.T) {
	tok := makeToken(t, time.Now().Add(-time.Minute))
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.KeyAuthToken, tok))
	require.NoError(t, store.SetJSON(storage.KeyDoctorData, models.Doctor{ID: 7}))
	require.NoError(t, store.SetJSON(storage.KeyPendingLogin, models.PendingLogin{Email: "x", Token: "y"}))
	require.NoError(t, store.Set(storage.KeyLastTokenValidation, "123"))

	expiry := notify.NewExpirationNotifier()
	client := api.New("http://127.0.0.1:1", time.Second, time.Hour, store, expiry, zerolog.Nop())
	sess := New(client, store, NewGuard(store, 5, 15*time.Minute), zerolog.Nop())
	sess.Initialize()

	assert.False(t, sess.IsAuthenticated())
	for _, key := range []string{
		storage.KeyAuthToken,
		storage.KeyDoctorData,
		storage.KeyPendingLogin,
		storage.KeyLastTokenValidation,
	} {
		_, ok := store.Get(key)
		assert.False(t, ok, "key %s should be cleared", key)
	}
}

func TestInitializeClearsCorruptSnapshot(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.KeyAuthToken, tok))
	require.NoError(t, store.Set(storage.KeyDoctorData, "{corrupt"))

	expiry := notify.NewExpirationNotifier()
	client := api.New("http://127.0.0.1:1", time.Second, time.Hour, store, expiry, zerolog.Nop())
	sess := New(client, store, NewGuard(store, 5, 15*time.Minute), zerolog.Nop())
	sess.Initialize()

	assert.False(t, sess.IsAuthenticated())
	_, ok := store.Get(storage.KeyAuthToken)
	assert.False(t, ok)
}

func TestInitializeIsSingleShot(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	sess, store := sessionForTest(t, authHandler(t, tok, false))

	_, err := sess.Login(context.Background(), "doctor@example.com", "password")
	require.NoError(t, err)

	// a second Initialize must not disturb the live session
	sess.Initialize()
	assert.True(t, sess.IsAuthenticated())

	_, ok := store.Get(storage.KeyAuthToken)
	assert.True(t, ok)
}

func TestFailedLoginsLockOut(t *testing.T) {
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	})
	sess, _ := sessionForTest(t, mux)

	var lockErr *LockoutError
	for i := 0; i < 5; i++ {
		_, err := sess.Login(context.Background(), "doctor@example.com", "wrong")
		require.Error(t, err)
		assert.False(t, errors.As(err, &lockErr), "attempt %d should reach the server", i+1)
	}
	assert.Equal(t, 5, requests)

	// the sixth attempt is rejected locally with a countdown
	_, err := sess.Login(context.Background(), "doctor@example.com", "wrong")
	require.ErrorAs(t, err, &lockErr)
	assert.Contains(t, err.Error(), "temporarily locked")
	assert.Equal(t, 5, requests, "locked attempt must not reach the server")
}

func TestSuccessfulLoginResetsGuard(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	fail := true
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"token":%q,"professionnelId":7,"nom":"Dubois","prenom":"Martin","role":"doctor"}`, tok)
	})
	sess, store := sessionForTest(t, mux)

	for i := 0; i < 3; i++ {
		_, _ = sess.Login(context.Background(), "doctor@example.com", "wrong")
	}
	_, ok := store.Get(storage.KeyLoginAttempts)
	assert.True(t, ok)

	fail = false
	_, err := sess.Login(context.Background(), "doctor@example.com", "password")
	require.NoError(t, err)

	_, ok = store.Get(storage.KeyLoginAttempts)
	assert.False(t, ok, "success must reset the attempt counter")
}

func TestLogoutClearsEvenWhenServerUnreachable(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	path := filepath.Join(t.TempDir(), "state.json")

	store, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.KeyAuthToken, tok))
	require.NoError(t, store.SetJSON(storage.KeyDoctorData, models.Doctor{ID: 7}))

	expiry := notify.NewExpirationNotifier()
	client := api.New("http://127.0.0.1:1", 200*time.Millisecond, time.Hour, store, expiry, zerolog.Nop())
	sess := New(client, store, NewGuard(store, 5, 15*time.Minute), zerolog.Nop())
	sess.Initialize()
	require.True(t, sess.IsAuthenticated())

	sess.Logout(context.Background())
	assert.False(t, sess.IsAuthenticated())
	_, ok := store.Get(storage.KeyAuthToken)
	assert.False(t, ok)
}

func TestValidateTokenLocalFastPath(t *testing.T) {
	// locally expired token must fail without any server round trip
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/validate", func(w http.ResponseWriter, r *http.Request) { requests++ })
	sess, store := sessionForTest(t, mux)

	require.NoError(t, store.Set(storage.KeyAuthToken, makeToken(t, time.Now().Add(-time.Hour))))
	assert.False(t, sess.ValidateToken(context.Background()))
	assert.Equal(t, 0, requests)

	require.NoError(t, store.Set(storage.KeyAuthToken, makeToken(t, time.Now().Add(time.Hour))))
	assert.True(t, sess.ValidateToken(context.Background()))
	assert.Equal(t, 1, requests)
}

func TestRefreshClearsRevokedSession(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/validate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	sess, store := sessionForTest(t, mux)

	require.NoError(t, store.Set(storage.KeyAuthToken, tok))
	require.NoError(t, store.SetJSON(storage.KeyDoctorData, models.Doctor{ID: 7}))

	sess.Refresh(context.Background())
	_, ok := store.Get(storage.KeyAuthToken)
	assert.False(t, ok)
}
