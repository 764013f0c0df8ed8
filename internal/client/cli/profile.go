package cli

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"

	"github.com/virtual-arena/arena-cli/internal/client/cache"
)

// Profile renders the profile view: the cached snapshot, the my-articles
// and bookmarked-articles tabs, profile editing, and password change.
// Guarded: without a credential the sign-in redirect fires and none of the
// view renders. The two tab caches live for this invocation of the view.
func (a *App) Profile(ctx context.Context) error {
	if !a.RequireAuth(ctx) {
		return nil
	}

	mine := cache.New(a.articleService.Mine, articleID, a.log)
	bookmarked := cache.New(a.articleService.Bookmarked, articleID, a.log)
	defer mine.Wait()
	defer bookmarked.Wait()

	for {
		profile, err := a.authService.Profile(ctx)
		if err != nil {
			a.log.Error(ctx, "failed to load profile", "error", err)
			a.toastError("Error loading profile")
			return err
		}

		table := tablewriter.NewTable(a.out)
		table.Header([]string{"Field", "Value"})
		verified := "no"
		if profile.Verified {
			verified = "yes"
		}
		table.Bulk([][]string{
			{"Username", profile.Username},
			{"Email", profile.Email},
			{"Avatar", profile.AvatarURL},
			{"Verified", verified},
			{"Member since", profile.CreatedAt},
		})
		table.Render()

		line, err := getSimpleText(a.reader, "mine/bookmarked/update/password/logout/back", a.out)
		if err != nil {
			return err
		}

		switch line {
		case "mine", "m":
			_ = a.browseArticles(ctx, "My Articles", mine)
		case "bookmarked", "b":
			_ = a.browseArticles(ctx, "Bookmarked Articles", bookmarked)
		case "update", "u":
			a.updateProfile(ctx, profile.Username, profile.AvatarURL)
		case "password", "p":
			a.changePassword(ctx)
		case "logout":
			return a.Logout(ctx)
		case "back", "q":
			return nil
		case "":
			continue
		default:
			fmt.Fprintln(a.out, "Unknown command:", line)
		}

		if a.signInRequested {
			return nil
		}
	}
}

// updateProfile sends new profile fields to the server. The cached session
// snapshot stays as it is: it re-syncs only on the next login, so the view
// keeps showing the old values until then.
func (a *App) updateProfile(ctx context.Context, username, avatarURL string) {
	newUsername, err := getSimpleText(a.reader, "Username ["+username+"]", a.out)
	if err != nil {
		return
	}
	if newUsername == "" {
		newUsername = username
	}
	newAvatar, err := getSimpleText(a.reader, "Avatar URL ["+avatarURL+"]", a.out)
	if err != nil {
		return
	}
	if newAvatar == "" {
		newAvatar = avatarURL
	}

	if _, err := a.authService.UpdateProfile(ctx, newUsername, newAvatar); err != nil {
		a.log.Error(ctx, "failed to update profile", "error", err)
		a.toastError("Failed to update profile")
		return
	}
	a.toastSuccess("Profile updated (takes effect after next login)")
}

func (a *App) changePassword(ctx context.Context) {
	fmt.Fprintln(a.out, "Current password")
	oldPw, err := getPassword(a.out)
	if err != nil {
		return
	}
	fmt.Fprintln(a.out, "New password")
	newPw, err := getPassword(a.out)
	if err != nil {
		return
	}
	fmt.Fprintln(a.out, "Confirm new password")
	confirm, err := getPassword(a.out)
	if err != nil {
		return
	}

	if err := a.authService.ChangePassword(ctx, string(oldPw), string(newPw), string(confirm)); err != nil {
		a.log.Error(ctx, "failed to change password", "error", err)
		a.toastError("Failed to change password: %v", err)
		return
	}
	a.toastSuccess("Password changed")
}
