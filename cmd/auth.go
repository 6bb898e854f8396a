package cmd

import (
	"errors"
	"fmt"

	authadapter "github.com/simplu-io/simplu-cli/internal/adapters/auth"
	"github.com/simplu-io/simplu-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in: run `simplu auth login`")

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in and inspect the stored session",
	}

	cmd.AddCommand(
		newAuthLoginCmd(app),
		newAuthLogoutCmd(app),
		newAuthWhoamiCmd(app),
		newAuthTokenCmd(app),
	)

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in through the hosted login page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.oauth == nil {
				return fmt.Errorf("configure auth.domain and auth.client_id first: %w", app.oauthErr)
			}

			login := authadapter.BrowserLogin{
				OAuth:   app.oauth,
				Timeout: app.cfg.Auth.LoginTimeout,
			}
			session, err := login.Run(cmd.Context(), func(authURL string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to sign in:\n%s\n", authURL)
			})
			if err != nil {
				return err
			}

			if err := app.sessions.Save(cmd.Context(), session); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			identity, err := authadapter.IdentityFromSession(session)
			if err != nil {
				return writeLine(cmd, "Signed in.")
			}
			return writeLine(cmd, "Signed in as %s.", identityLabel(identity))
		},
	}
}

func newAuthLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Clear(cmd.Context()); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("clear session: %w", err)
			}
			app.bridge.Close()

			if err := writeLine(cmd, "Signed out."); err != nil {
				return err
			}
			if app.oauth != nil {
				return writeLine(cmd, "To end the browser session too, open:\n%s",
					authadapter.LogoutURL(app.cfg.Auth.Domain, app.cfg.Auth.ClientID, app.cfg.Auth.RedirectURL))
			}
			return nil
		},
	}
}

func newAuthWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who the stored session belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := app.bridge.Identity(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return errNotSignedIn
				}
				return err
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd, identity)
			}
			return writeLine(cmd, "%s", identityLabel(identity))
		},
	}
}

func newAuthTokenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a current access token, renewing it when needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := app.bridge.AccessToken(cmd.Context())
			if token == "" {
				return errNotSignedIn
			}
			return writeLine(cmd, "%s", token)
		},
	}
}

func identityLabel(identity domain.Identity) string {
	switch {
	case identity.Email != "" && identity.Subject != "":
		return fmt.Sprintf("%s (%s)", identity.Email, identity.Subject)
	case identity.Email != "":
		return identity.Email
	default:
		return identity.Subject
	}
}
