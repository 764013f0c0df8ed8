package models

// Credential is the access/refresh token pair identifying an authenticated
// session. The client treats both tokens as opaque strings: it never decodes,
// validates, or inspects them.
type Credential struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserProfile is the denormalized snapshot of the signed-in user returned by
// the "who am I" endpoint. It is written to the session store at login time
// and read thereafter without re-validation; it may go stale relative to
// server truth until the next login.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"createdAt"`
}

// Publisher is the author reference embedded in articles, comments and
// replies.
type Publisher struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}
