package cli

import "context"

// RequireAuth is the route guard: a pure predicate over credential presence
// in the session store. Any stored access token string passes, expired or
// revoked ones included; a stale credential is only discovered when a
// guarded API call later fails. Without one, the sign-in redirect fires and
// the guarded view must not render.
func (a *App) RequireAuth(ctx context.Context) bool {
	if a.isLoggedIn(ctx) {
		return true
	}
	a.requestSignIn()
	return false
}
