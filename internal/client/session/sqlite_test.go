package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/virtual-arena/arena-cli/internal/client/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetAbsentKey(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	v, err := s.Get(context.Background(), KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestSQLiteStore_SetUpserts(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyUsername, "alice"))
	require.NoError(t, s.Set(ctx, KeyUsername, "bob"))

	v, err := s.Get(ctx, KeyUsername)
	require.NoError(t, err)
	require.Equal(t, "bob", v)
}

func TestSQLiteStore_ClearRemovesEverything(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	for _, k := range Keys {
		require.NoError(t, s.Set(ctx, k, "v"))
	}

	require.NoError(t, s.Clear(ctx))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	for _, k := range Keys {
		v, err := s.Get(ctx, k)
		require.NoError(t, err)
		require.Equal(t, "", v, "key %s must be gone", k)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyEmail, "a@b.c"))
	require.NoError(t, s.Delete(ctx, KeyEmail))

	v, err := s.Get(ctx, KeyEmail)
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestSaveCredential_RoundTrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.False(t, HasCredential(ctx, s))

	cred := models.Credential{AccessToken: "at", RefreshToken: "rt"}
	require.NoError(t, SaveCredential(ctx, s, cred))

	require.True(t, HasCredential(ctx, s))

	at, err := s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "at", at)
	rt, err := s.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "rt", rt)
}

func TestHasCredential_AnyStringCounts(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	// Presence is the whole check: an expired or garbage token still counts.
	require.NoError(t, s.Set(ctx, KeyAccessToken, "expired-or-revoked"))
	require.True(t, HasCredential(ctx, s))
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	p := models.UserProfile{
		ID:        "u1",
		Email:     "alice@example.org",
		Username:  "alice",
		AvatarURL: "https://example.org/a.png",
		Verified:  true,
		CreatedAt: "2024-05-01T10:00:00Z",
	}
	require.NoError(t, SaveProfile(ctx, s, p))

	got, err := LoadProfile(ctx, s)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestLoadProfile_EmptyStore(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	got, err := LoadProfile(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, models.UserProfile{}, got)
}
