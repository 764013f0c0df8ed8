package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/virtual-arena/arena-cli/internal/client/services"
)

// fakeAuth stubs the one method the guard consults.
type fakeAuth struct {
	services.AuthService
	authenticated bool
}

func (f *fakeAuth) IsAuthenticated(_ context.Context) bool { return f.authenticated }

func TestRequireAuth_PassesWithCredential(t *testing.T) {
	a := &App{authService: &fakeAuth{authenticated: true}}

	assert.True(t, a.RequireAuth(context.Background()))
	assert.False(t, a.signInRequested)
}

func TestRequireAuth_DeniesAndRequestsSignIn(t *testing.T) {
	a := &App{authService: &fakeAuth{authenticated: false}}

	assert.False(t, a.RequireAuth(context.Background()))
	assert.True(t, a.signInRequested)

	assert.True(t, a.consumeSignIn())
	assert.False(t, a.consumeSignIn(), "the pending redirect is consumed once")
}

func TestConsumeBack(t *testing.T) {
	a := &App{}

	assert.False(t, a.consumeBack())
	a.requestBack()
	assert.True(t, a.consumeBack())
	assert.False(t, a.consumeBack())
}
