// Package services contains the application services of the Arena client:
// orchestration between the API client, the session store, and the views.
package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/virtual-arena/arena-cli/internal/client/api"
	"github.com/virtual-arena/arena-cli/internal/client/models"
	"github.com/virtual-arena/arena-cli/internal/client/session"
	"github.com/virtual-arena/arena-cli/internal/logging"
)

// AuthService defines authentication and profile operations for the CLI.
//
// Contract:
//   - Login: authenticate, persist the credential pair, then fetch and
//     persist the profile snapshot; either failure propagates.
//   - Logout: synchronously clear all session keys and jump to sign-in.
//     No network call.
//   - RefreshCredential: exchange the stored refresh token for a new pair.
//     Never invoked automatically; a 401 on any call does not trigger it.
//   - IsAuthenticated: presence of any stored access token string, valid
//     or not.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error
	UpdateProfile(ctx context.Context, username, avatarURL string) (models.UserProfile, error)
	Profile(ctx context.Context) (models.UserProfile, error)
	RefreshCredential(ctx context.Context) error
	SendVerificationCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	IsAuthenticated(ctx context.Context) bool
}

// registrationForm carries the register preconditions checked client-side.
type registrationForm struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

type authService struct {
	client   api.Client
	store    session.Store
	signIn   func()
	validate *validator.Validate
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store. signIn is the sign-in redirect, invoked by Logout and by
// the defensive post-store check in Login.
func NewAuthService(client api.Client, store session.Store, signIn func(), log logging.Logger) AuthService {
	return &authService{
		client:   client,
		store:    store,
		signIn:   signIn,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (a *authService) Register(ctx context.Context, username, email, password string) error {
	form := registrationForm{Username: username, Email: email, Password: password}
	if err := a.validate.Struct(form); err != nil {
		return err
	}
	return a.client.Register(ctx, username, email, password)
}

// Login authenticates, stores the credential pair, then performs the
// "who am I" call and stores the profile snapshot. The credential-presence
// check between the two steps is redundant by construction but preserved:
// if the store reads back empty, the sign-in redirect fires and the flow
// still proceeds to the profile fetch, as the browser client did.
func (a *authService) Login(ctx context.Context, username, password string) error {
	cred, err := a.client.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if err := session.SaveCredential(ctx, a.store, cred); err != nil {
		return err
	}

	if !session.HasCredential(ctx, a.store) {
		a.signIn()
	}

	profile, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return session.SaveProfile(ctx, a.store, profile)
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.signIn()
	return nil
}

func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error {
	if newPassword == "" {
		return ErrEmptyContent
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	return a.client.ChangePassword(ctx, oldPassword, newPassword)
}

// UpdateProfile sends the new fields to the server. The session snapshot is
// deliberately not rewritten: it re-syncs only on the next login.
func (a *authService) UpdateProfile(ctx context.Context, username, avatarURL string) (models.UserProfile, error) {
	return a.client.UpdateProfile(ctx, username, avatarURL)
}

func (a *authService) Profile(ctx context.Context) (models.UserProfile, error) {
	return session.LoadProfile(ctx, a.store)
}

func (a *authService) RefreshCredential(ctx context.Context) error {
	refresh, err := a.store.Get(ctx, session.KeyRefreshToken)
	if err != nil {
		return err
	}
	cred, err := a.client.RefreshCredential(ctx, refresh)
	if err != nil {
		return err
	}
	return session.SaveCredential(ctx, a.store, cred)
}

func (a *authService) SendVerificationCode(ctx context.Context, email string) error {
	return a.client.SendVerificationCode(ctx, email)
}

func (a *authService) VerifyCode(ctx context.Context, email, code string) error {
	return a.client.VerifyCode(ctx, email, code)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return session.HasCredential(ctx, a.store)
}
