package cli

import "context"

// Login prompts for credentials and signs in. On success the credential
// pair and profile snapshot are persisted by the auth service.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, username, string(password)); err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		a.toastError("Login unsuccessful")
		return err
	}
	a.toastSuccess("Logged in as %s", username)
	return nil
}

// Register prompts for account details and creates an account. Validation
// failures surface before any request is made.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, username, email, string(password)); err != nil {
		a.log.Error(ctx, "registration failed", "error", err)
		a.toastError("Registration unsuccessful: %v", err)
		return err
	}
	a.toastSuccess("Registered. Check your email for a verification code, then run 'verify'.")
	return nil
}

// VerifyEmail drives the two-step email verification: send a code, then
// submit it.
func (a *App) VerifyEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.SendVerificationCode(ctx, email); err != nil {
		a.toastError("Could not send verification code")
		return err
	}
	code, err := getSimpleText(a.reader, "Verification code", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.VerifyCode(ctx, email, code); err != nil {
		a.toastError("Verification failed")
		return err
	}
	a.toastSuccess("Email verified")
	return nil
}

// Logout clears the whole session synchronously and lands on the sign-in
// prompt. No network call is involved.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.toastError("Logout failed")
		return err
	}
	a.toastSuccess("Logged out")
	return nil
}

// Refresh exchanges the stored refresh token for a new credential pair.
// It only ever runs when the user asks for it.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.RefreshCredential(ctx); err != nil {
		a.toastError("Could not refresh credentials")
		return err
	}
	a.toastSuccess("Credentials refreshed")
	return nil
}
