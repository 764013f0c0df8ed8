package services

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/virtual-arena/arena-cli/internal/client/api"
	"github.com/virtual-arena/arena-cli/internal/client/session"
)

// TestLoginFlow_EndToEnd drives the whole login path: real HTTP client, real
// SQLite session store, real auth service, fake server.
func TestLoginFlow_EndToEnd(t *testing.T) {
	var meAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/authenticate":
			_, _ = io.WriteString(w, `{"accessToken":"at-e2e","refreshToken":"rt-e2e"}`)
		case "/api/v1/auth/me":
			meAuth = r.Header.Get("Authorization")
			_, _ = io.WriteString(w, `{"id":"u1","email":"alice@example.org","username":"alice","avatarUrl":"","verified":true,"createdAt":"2024-05-01T10:00:00Z"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	store := session.NewSQLiteStore(db)

	client := api.NewHTTPClient(srv.URL, srv.Client(), store, testLogger())
	signIns := 0
	svc := NewAuthService(client, store, func() { signIns++ }, testLogger())
	ctx := context.Background()

	require.False(t, svc.IsAuthenticated(ctx))
	require.NoError(t, svc.Login(ctx, "alice", "secret123"))

	// The who-am-I call carries the token stored moments earlier.
	assert.Equal(t, "Bearer at-e2e", meAuth)
	assert.Equal(t, 0, signIns)
	assert.True(t, svc.IsAuthenticated(ctx))

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.True(t, profile.Verified)

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, 1, signIns)
	assert.False(t, svc.IsAuthenticated(ctx))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
