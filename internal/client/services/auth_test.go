package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtual-arena/arena-cli/internal/client/api"
	"github.com/virtual-arena/arena-cli/internal/client/models"
	"github.com/virtual-arena/arena-cli/internal/client/session"
	"github.com/virtual-arena/arena-cli/internal/logging"
)

// fakeClient overrides only the api.Client methods a test exercises; calling
// an unset method panics, which is the test failing loudly.
type fakeClient struct {
	api.Client
	authenticateFn   func(ctx context.Context, username, password string) (models.Credential, error)
	currentUserFn    func(ctx context.Context) (models.UserProfile, error)
	registerFn       func(ctx context.Context, username, email, password string) error
	changePasswordFn func(ctx context.Context, oldPassword, newPassword string) error
	refreshFn        func(ctx context.Context, refreshToken string) (models.Credential, error)
}

func (f *fakeClient) Authenticate(ctx context.Context, username, password string) (models.Credential, error) {
	return f.authenticateFn(ctx, username, password)
}

func (f *fakeClient) CurrentUser(ctx context.Context) (models.UserProfile, error) {
	return f.currentUserFn(ctx)
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	return f.registerFn(ctx, username, email, password)
}

func (f *fakeClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return f.changePasswordFn(ctx, oldPassword, newPassword)
}

func (f *fakeClient) RefreshCredential(ctx context.Context, refreshToken string) (models.Credential, error) {
	return f.refreshFn(ctx, refreshToken)
}

// memStore is an in-memory session.Store.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore { return &memStore{data: make(map[string]string)} }

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) All(_ context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
	return nil
}

// droppingStore silently loses every write; reads see nothing.
type droppingStore struct{ *memStore }

func (d droppingStore) Set(_ context.Context, _, _ string) error { return nil }

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() logging.Logger { return logging.NewTextLogger(discard{}, 0) }

func TestLogin_StoresCredentialAndProfile(t *testing.T) {
	store := newMemStore()
	meCalls := 0
	client := &fakeClient{
		authenticateFn: func(_ context.Context, username, password string) (models.Credential, error) {
			require.Equal(t, "alice", username)
			require.Equal(t, "secret123", password)
			return models.Credential{AccessToken: "at", RefreshToken: "rt"}, nil
		},
		currentUserFn: func(_ context.Context) (models.UserProfile, error) {
			meCalls++
			return models.UserProfile{ID: "u1", Email: "a@b.c", Username: "alice", Verified: true, CreatedAt: "2024-05-01"}, nil
		},
	}
	signIns := 0
	svc := NewAuthService(client, store, func() { signIns++ }, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, "alice", "secret123"))

	assert.Equal(t, 1, meCalls, "who-am-I is fetched exactly once")
	assert.Equal(t, 0, signIns, "redirect must not fire when the store holds the token")

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		session.KeyAccessToken:  "at",
		session.KeyRefreshToken: "rt",
		session.KeyID:           "u1",
		session.KeyEmail:        "a@b.c",
		session.KeyUsername:     "alice",
		session.KeyAvatarURL:    "",
		session.KeyVerified:     "true",
		session.KeyCreatedAt:    "2024-05-01",
	}, all)
}

func TestLogin_AuthenticateFailureStoresNothing(t *testing.T) {
	store := newMemStore()
	client := &fakeClient{
		authenticateFn: func(_ context.Context, _, _ string) (models.Credential, error) {
			return models.Credential{}, errors.New("bad credentials")
		},
	}
	svc := NewAuthService(client, store, func() {}, testLogger())

	err := svc.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	all, _ := store.All(context.Background())
	assert.Empty(t, all)
}

func TestLogin_DroppedWriteFiresRedirectButFlowContinues(t *testing.T) {
	store := droppingStore{newMemStore()}
	meCalls := 0
	client := &fakeClient{
		authenticateFn: func(_ context.Context, _, _ string) (models.Credential, error) {
			return models.Credential{AccessToken: "at", RefreshToken: "rt"}, nil
		},
		currentUserFn: func(_ context.Context) (models.UserProfile, error) {
			meCalls++
			return models.UserProfile{ID: "u1"}, nil
		},
	}
	signIns := 0
	svc := NewAuthService(client, store, func() { signIns++ }, testLogger())

	require.NoError(t, svc.Login(context.Background(), "alice", "secret123"))

	assert.Equal(t, 1, signIns, "empty read-back fires the redirect")
	assert.Equal(t, 1, meCalls, "the flow still proceeds to the profile fetch")
}

func TestLogout_ClearsSessionAndRedirectsWithoutNetwork(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	for _, k := range session.Keys {
		require.NoError(t, store.Set(ctx, k, "v"))
	}

	// Any api.Client call panics via the nil embedded interface; a panic here
	// would mean logout touched the network.
	signIns := 0
	svc := NewAuthService(&fakeClient{}, store, func() { signIns++ }, testLogger())

	require.NoError(t, svc.Logout(ctx))

	assert.Equal(t, 1, signIns)
	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.False(t, svc.IsAuthenticated(ctx))
}

func TestRegister_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "alice", "alice@example.org", "longenough", false},
		{"short username", "al", "alice@example.org", "longenough", true},
		{"bad email", "alice", "not-an-email", "longenough", true},
		{"short password", "alice", "alice@example.org", "short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := &fakeClient{
				registerFn: func(_ context.Context, _, _, _ string) error {
					calls++
					return nil
				},
			}
			svc := NewAuthService(client, newMemStore(), func() {}, testLogger())

			err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 0, calls, "precondition failures never reach the network")
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, calls)
			}
		})
	}
}

func TestChangePassword_ConfirmMismatch(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, newMemStore(), func() {}, testLogger())

	err := svc.ChangePassword(context.Background(), "old", "newpass", "different")
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestChangePassword_DelegatesOnMatch(t *testing.T) {
	var gotOld, gotNew string
	client := &fakeClient{
		changePasswordFn: func(_ context.Context, oldPassword, newPassword string) error {
			gotOld, gotNew = oldPassword, newPassword
			return nil
		},
	}
	svc := NewAuthService(client, newMemStore(), func() {}, testLogger())

	require.NoError(t, svc.ChangePassword(context.Background(), "old", "newpass", "newpass"))
	assert.Equal(t, "old", gotOld)
	assert.Equal(t, "newpass", gotNew)
}

func TestRefreshCredential_RotatesStoredPair(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	require.NoError(t, session.SaveCredential(ctx, store, models.Credential{AccessToken: "at-old", RefreshToken: "rt-old"}))

	client := &fakeClient{
		refreshFn: func(_ context.Context, refreshToken string) (models.Credential, error) {
			require.Equal(t, "rt-old", refreshToken)
			return models.Credential{AccessToken: "at-new", RefreshToken: "rt-new"}, nil
		},
	}
	svc := NewAuthService(client, store, func() {}, testLogger())

	require.NoError(t, svc.RefreshCredential(ctx))

	at, _ := store.Get(ctx, session.KeyAccessToken)
	rt, _ := store.Get(ctx, session.KeyRefreshToken)
	assert.Equal(t, "at-new", at)
	assert.Equal(t, "rt-new", rt)
}

func TestIsAuthenticated_PresenceOnly(t *testing.T) {
	store := newMemStore()
	svc := NewAuthService(&fakeClient{}, store, func() {}, testLogger())
	ctx := context.Background()

	assert.False(t, svc.IsAuthenticated(ctx))
	require.NoError(t, store.Set(ctx, session.KeyAccessToken, "anything"))
	assert.True(t, svc.IsAuthenticated(ctx))
}
