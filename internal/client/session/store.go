// Package session holds the client-side persisted session state: the
// credential pair and the cached profile snapshot written at login time.
// It is the explicit, injectable replacement for ambient browser-style
// key-value storage; every consumer receives a Store as a dependency.
package session

import (
	"context"

	"github.com/virtual-arena/arena-cli/internal/client/models"
)

// Recognized session keys. These are the only keys the client persists;
// Clear wipes all of them together on logout.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyID           = "id"
	KeyEmail        = "email"
	KeyUsername     = "username"
	KeyAvatarURL    = "avatarUrl"
	KeyVerified     = "verified"
	KeyCreatedAt    = "createdAt"
)

// Keys lists every recognized session key.
var Keys = []string{
	KeyAccessToken,
	KeyRefreshToken,
	KeyID,
	KeyEmail,
	KeyUsername,
	KeyAvatarURL,
	KeyVerified,
	KeyCreatedAt,
}

// Store is a durable string key-value store for session state.
//
// Contract:
//   - Get returns "" (and nil error) for an absent key.
//   - Set upserts.
//   - Clear removes every stored key in one operation.
//   - All returns a snapshot of everything currently stored.
//
// All methods must honor context cancellation/timeouts.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

// HasCredential reports whether any access token string is stored. Presence
// of any value is sufficient — expired or revoked tokens count, exactly as
// the route guard requires. Storage errors read as "no credential".
func HasCredential(ctx context.Context, s Store) bool {
	v, err := s.Get(ctx, KeyAccessToken)
	return err == nil && v != ""
}

// SaveCredential persists the access/refresh token pair.
func SaveCredential(ctx context.Context, s Store, c models.Credential) error {
	if err := s.Set(ctx, KeyAccessToken, c.AccessToken); err != nil {
		return err
	}
	return s.Set(ctx, KeyRefreshToken, c.RefreshToken)
}

// SaveProfile persists the cached profile snapshot fields.
func SaveProfile(ctx context.Context, s Store, p models.UserProfile) error {
	verified := "false"
	if p.Verified {
		verified = "true"
	}
	pairs := [][2]string{
		{KeyID, p.ID},
		{KeyEmail, p.Email},
		{KeyUsername, p.Username},
		{KeyAvatarURL, p.AvatarURL},
		{KeyVerified, verified},
		{KeyCreatedAt, p.CreatedAt},
	}
	for _, kv := range pairs {
		if err := s.Set(ctx, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// LoadProfile reads the cached profile snapshot. Absent keys read as zero
// values; the snapshot is never re-validated against the server.
func LoadProfile(ctx context.Context, s Store) (models.UserProfile, error) {
	var p models.UserProfile
	var err error
	if p.ID, err = s.Get(ctx, KeyID); err != nil {
		return p, err
	}
	if p.Email, err = s.Get(ctx, KeyEmail); err != nil {
		return p, err
	}
	if p.Username, err = s.Get(ctx, KeyUsername); err != nil {
		return p, err
	}
	if p.AvatarURL, err = s.Get(ctx, KeyAvatarURL); err != nil {
		return p, err
	}
	verified, err := s.Get(ctx, KeyVerified)
	if err != nil {
		return p, err
	}
	p.Verified = verified == "true"
	if p.CreatedAt, err = s.Get(ctx, KeyCreatedAt); err != nil {
		return p, err
	}
	return p, nil
}
