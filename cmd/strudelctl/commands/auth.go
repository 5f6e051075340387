// auth.go
//
// Share, play, like and discuss Strudel live-coding patterns
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of strudel-share.
// strudel-share is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// strudel-share is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with strudel-share.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package commands

import (
	"fmt"

	"github.com/localnerve/strudel-share/cmd/strudelctl/output"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/spf13/cobra"
)

var (
	username string
	password string
)

func requireAuth() error {
	if app.auth == nil {
		output.Warning("Demo mode: sign in is not available without AUTHZ_URL")
		return errReported
	}
	return nil
}

var signupCmd = &cobra.Command{
	Use:   "signup EMAIL",
	Short: "Create an account",
	Long: `Create an account with the identity provider.

Examples:
  strudelctl signup me@example.com --password s3cret!X --username beatmaker`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		email := args[0]
		if err := app.provider.SignUp(cmd.Context(), email, password, username); err != nil {
			output.Error("Sign up failed: %v", err)
			return errReported
		}
		if app.provider.Token() == "" {
			output.Info("Check your email to confirm your account")
			return nil
		}
		if err := app.state.Save(app.provider.Token(), email); err != nil {
			return err
		}
		output.Success("Signed up as %s", session.DisplayName(app.provider.CurrentUser()))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		email := args[0]
		if err := app.provider.SignIn(cmd.Context(), email, password); err != nil {
			output.Error("Sign in failed: %v", err)
			return errReported
		}
		if err := app.state.Save(app.provider.Token(), email); err != nil {
			return err
		}
		output.Success("Signed in as %s", session.DisplayName(app.provider.CurrentUser()))
		return nil
	},
}

var oauthCmd = &cobra.Command{
	Use:   "oauth PROVIDER",
	Short: "Print the url that starts an OAuth sign in, e.g. google or github",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		fmt.Fprintln(output.Out, app.provider.SignInWithOAuth(args[0]))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.auth != nil {
			if err := app.provider.SignOut(cmd.Context()); err != nil {
				app.log.Warn("sign out failed", "error", err)
			}
		}
		if err := app.state.Clear(); err != nil {
			return err
		}
		output.Success("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		viewer := app.provider.CurrentUser()
		user, ok := viewer.(session.Authenticated)
		if !ok {
			output.Muted("Anonymous")
			return nil
		}
		output.Primary("%s", session.DisplayName(user))
		output.Muted("%s · %s", user.Email, user.ID)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{signupCmd, loginCmd} {
		cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
		_ = cmd.MarkFlagRequired("password")
	}
	signupCmd.Flags().StringVarP(&username, "username", "u", "", "Display name, defaults to the email local part")

	rootCmd.AddCommand(signupCmd, loginCmd, oauthCmd, logoutCmd, whoamiCmd)
}
