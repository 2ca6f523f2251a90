package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/credstore"
	"github.com/quillforge/quill/internal/errors"
)

type backend struct {
	mux *http.ServeMux

	loginStatus   int
	meStatus      int
	profileStatus int
	logoutStatus  int

	user    api.User
	profile api.AuthorProfile

	profileCalls atomic.Int32
	logoutCalls  atomic.Int32
	lastRefresh  atomic.Value
}

func newBackend() *backend {
	b := &backend{
		mux:           http.NewServeMux(),
		loginStatus:   http.StatusOK,
		meStatus:      http.StatusOK,
		profileStatus: http.StatusOK,
		logoutStatus:  http.StatusOK,
		user: api.User{
			ID:        "u-1",
			Email:     "ama@example.com",
			FirstName: "Ama",
			LastName:  "Mendo",
			Role:      api.RoleAuthor,
		},
		profile: api.AuthorProfile{
			ID:      "a-1",
			UserID:  "u-1",
			PenName: "A. Mendo",
			Status:  api.AuthorStatusApproved,
		},
	}

	b.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if b.loginStatus != http.StatusOK {
			writeJSON(w, b.loginStatus, map[string]any{"success": false, "message": "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{
			"accessToken":  "access-1",
			"refreshToken": "refresh-1",
			"user":         b.user,
		}})
	})
	b.mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]any{
			"accessToken":  "access-1",
			"refreshToken": "refresh-1",
			"user":         b.user,
		}})
	})
	b.mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if b.meStatus != http.StatusOK {
			writeJSON(w, b.meStatus, map[string]any{"success": false, "message": "unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.user})
	})
	b.mux.HandleFunc("GET /authors/me", func(w http.ResponseWriter, r *http.Request) {
		b.profileCalls.Add(1)
		if b.profileStatus != http.StatusOK {
			writeJSON(w, b.profileStatus, map[string]any{"success": false, "message": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b.profile})
	})
	b.mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.logoutCalls.Add(1)
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.lastRefresh.Store(body.RefreshToken)
		if b.logoutStatus != http.StatusOK {
			writeJSON(w, b.logoutStatus, map[string]any{"success": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	b.mux.HandleFunc("POST /authors/apply", func(w http.ResponseWriter, r *http.Request) {
		pending := b.profile
		pending.Status = api.AuthorStatusPending
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": pending})
	})

	return b
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newTestStore(t *testing.T, b *backend) (*Store, *credstore.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(b.mux)
	t.Cleanup(server.Close)

	creds := credstore.NewMemoryStore()
	return New(api.NewClient(server.URL), creds), creds
}

func TestLoginEstablishesSession(t *testing.T) {
	b := newBackend()
	store, creds := newTestStore(t, b)

	err := store.Login(context.Background(), "ama@example.com", "secret")
	require.NoError(t, err)

	snap := store.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "u-1", snap.Identity.ID)
	require.NotNil(t, snap.AuthorProfile)
	assert.True(t, snap.Approved())
	assert.False(t, snap.Validating)

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-1", saved.AccessToken)
	assert.Equal(t, "refresh-1", saved.RefreshToken)
	assert.Equal(t, "ama@example.com", saved.Email)
}

func TestLoginRejectedLeavesSessionUntouched(t *testing.T) {
	b := newBackend()
	b.loginStatus = http.StatusUnauthorized
	store, creds := newTestStore(t, b)

	err := store.Login(context.Background(), "ama@example.com", "wrong")
	require.Error(t, err)

	var qerr *errors.QuillError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, errors.ErrCodeCredentialRejected, qerr.Code)

	assert.Nil(t, store.Snapshot().Identity)
	saved, err := creds.Load()
	require.NoError(t, err)
	assert.True(t, saved.Empty())
}

func TestLoginWithoutAuthorProfile(t *testing.T) {
	b := newBackend()
	b.profileStatus = http.StatusNotFound
	store, _ := newTestStore(t, b)

	err := store.Login(context.Background(), "ama@example.com", "secret")
	require.NoError(t, err)

	snap := store.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Nil(t, snap.AuthorProfile)
	assert.True(t, snap.Authenticated())
	assert.False(t, snap.Approved())
}

func TestLoginProfileFetchFailureIsNotFatal(t *testing.T) {
	b := newBackend()
	b.profileStatus = http.StatusInternalServerError
	store, _ := newTestStore(t, b)

	err := store.Login(context.Background(), "ama@example.com", "secret")
	require.NoError(t, err)

	snap := store.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Nil(t, snap.AuthorProfile)
}

func TestRegisterSkipsProfileFetch(t *testing.T) {
	b := newBackend()
	store, creds := newTestStore(t, b)

	err := store.Register(context.Background(), api.RegisterRequest{
		Email:     "ama@example.com",
		Password:  "secret",
		FirstName: "Ama",
		LastName:  "Mendo",
	})
	require.NoError(t, err)

	snap := store.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Nil(t, snap.AuthorProfile)
	assert.Zero(t, b.profileCalls.Load())

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.Equal(t, "access-1", saved.AccessToken)
}

func TestLogoutClearsEverything(t *testing.T) {
	b := newBackend()
	store, creds := newTestStore(t, b)
	require.NoError(t, store.Login(context.Background(), "ama@example.com", "secret"))

	store.Logout(context.Background())

	assert.Equal(t, int32(1), b.logoutCalls.Load())
	assert.Equal(t, "refresh-1", b.lastRefresh.Load())

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.Nil(t, snap.AuthorProfile)
	assert.False(t, snap.Validating)

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.True(t, saved.Empty())
}

func TestLogoutClearsDespiteBackendFailure(t *testing.T) {
	b := newBackend()
	b.logoutStatus = http.StatusInternalServerError
	store, creds := newTestStore(t, b)
	require.NoError(t, store.Login(context.Background(), "ama@example.com", "secret"))

	store.Logout(context.Background())

	assert.Nil(t, store.Snapshot().Identity)
	saved, err := creds.Load()
	require.NoError(t, err)
	assert.True(t, saved.Empty())
}

func TestCheckAuthWithoutCredentialSettlesImmediately(t *testing.T) {
	b := newBackend()
	store, _ := newTestStore(t, b)

	store.CheckAuth(context.Background())

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Validating)
	assert.Zero(t, b.profileCalls.Load())
}

func TestCheckAuthValidCredential(t *testing.T) {
	b := newBackend()
	store, creds := newTestStore(t, b)
	require.NoError(t, creds.Save(credstore.Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}))

	var sawValidating bool
	unsubscribe := store.Subscribe(func(s Snapshot) {
		if s.Validating {
			sawValidating = true
		}
	})
	defer unsubscribe()

	store.CheckAuth(context.Background())

	assert.True(t, sawValidating)
	snap := store.Snapshot()
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "u-1", snap.Identity.ID)
	require.NotNil(t, snap.AuthorProfile)
	assert.False(t, snap.Validating)
}

func TestCheckAuthRejectedCredentialClears(t *testing.T) {
	b := newBackend()
	b.meStatus = http.StatusUnauthorized
	store, creds := newTestStore(t, b)
	require.NoError(t, creds.Save(credstore.Credentials{
		AccessToken:  "stale",
		RefreshToken: "stale",
	}))

	store.CheckAuth(context.Background())

	snap := store.Snapshot()
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.Validating)

	saved, err := creds.Load()
	require.NoError(t, err)
	assert.True(t, saved.Empty())
}

func TestApplyAsAuthorSetsProfile(t *testing.T) {
	b := newBackend()
	b.profileStatus = http.StatusNotFound
	store, _ := newTestStore(t, b)
	require.NoError(t, store.Login(context.Background(), "ama@example.com", "secret"))

	profile, err := store.ApplyAsAuthor(context.Background(), "A. Mendo", "writes things")
	require.NoError(t, err)
	assert.Equal(t, api.AuthorStatusPending, profile.Status)

	snap := store.Snapshot()
	require.NotNil(t, snap.AuthorProfile)
	assert.Equal(t, api.AuthorStatusPending, snap.AuthorProfile.Status)
	assert.False(t, snap.Approved())
}

func TestRefreshAuthorProfilePicksUpApproval(t *testing.T) {
	b := newBackend()
	b.profileStatus = http.StatusNotFound
	store, _ := newTestStore(t, b)
	require.NoError(t, store.Login(context.Background(), "ama@example.com", "secret"))
	require.Nil(t, store.Snapshot().AuthorProfile)

	b.profileStatus = http.StatusOK
	store.RefreshAuthorProfile(context.Background())

	snap := store.Snapshot()
	require.NotNil(t, snap.AuthorProfile)
	assert.True(t, snap.Approved())
}

func TestForceUnauthenticatedDropsSession(t *testing.T) {
	b := newBackend()
	store, _ := newTestStore(t, b)
	require.NoError(t, store.Login(context.Background(), "ama@example.com", "secret"))

	var notified bool
	unsubscribe := store.Subscribe(func(s Snapshot) {
		if s.Identity == nil {
			notified = true
		}
	})
	defer unsubscribe()

	store.ForceUnauthenticated()

	assert.Nil(t, store.Snapshot().Identity)
	assert.True(t, notified)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	b := newBackend()
	store, _ := newTestStore(t, b)

	var calls int
	unsubscribe := store.Subscribe(func(Snapshot) { calls++ })
	store.ForceUnauthenticated()
	unsubscribe()
	store.ForceUnauthenticated()

	assert.Equal(t, 1, calls)
}
