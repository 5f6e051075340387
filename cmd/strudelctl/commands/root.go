// root.go
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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/localnerve/strudel-share/cmd/strudelctl/output"
	"github.com/localnerve/strudel-share/internal/config"
	"github.com/localnerve/strudel-share/internal/database"
	"github.com/localnerve/strudel-share/internal/datasource"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/logging"
	"github.com/localnerve/strudel-share/internal/mutation"
	"github.com/localnerve/strudel-share/internal/playback"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	envFile   string
	stateFile string
	assumeYes bool

	// stdin answers confirmation prompts
	stdin io.Reader = os.Stdin
)

// client is everything a command needs, built once per invocation
type client struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *gorm.DB
	gw       gateway.Gateway
	auth     session.Client
	src      *datasource.Source
	provider *session.Provider
	coord    *mutation.Coordinator
	bridge   *playback.Bridge
	state    *State
	unbind   func()
}

var app *client

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "strudelctl",
	Short: "Share, play and discuss Strudel patterns from the terminal",
	Long: `strudelctl talks to the strudel-share store and identity provider directly.

Without DB_DATABASE or AUTHZ_URL it runs in demo mode: the built-in
patterns are listed and every change is refused.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		if !errors.Is(err, errReported) {
			output.Error("%v", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this .env file")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state", defaultStatePath(), "Session state file")
}

func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c := &client{cfg: cfg}
	c.log = logging.New(envOr("LOG_LEVEL", "warn"), cfg.LogFormat)

	if cfg.StoreConfigured() {
		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return err
		}
		c.db = db
		c.gw = gateway.NewGormGateway(db)
	}

	if cfg.AuthConfigured() {
		auth, err := session.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, cfg.AuthzRedirectURL)
		if err != nil {
			return err
		}
		c.auth = auth
	}

	c.state, err = LoadState(stateFile)
	if err != nil {
		return err
	}

	c.src = datasource.New(c.gw, cfg.AuthConfigured(), c.log)
	c.bridge = playback.New(cfg.PlaybackURL, playback.SystemOpener)
	c.provider = session.NewProvider(c.auth)
	c.coord = mutation.New(c.src,
		mutation.WithLogger(c.log),
		mutation.WithConfirmer(mutation.ConfirmFunc(confirm)),
		mutation.WithNotifier(mutation.NotifyFunc(func(msg string) {
			output.Error("%s", msg)
		})),
	)

	ctx := cmd.Context()
	if token := c.state.Token(); token != "" && c.auth != nil {
		if err := c.provider.Restore(ctx, token); err != nil {
			c.log.Debug("stored session is no longer valid", "error", err)
			output.Warning("Your session has expired, sign in again")
			if err := c.state.Clear(); err != nil {
				return err
			}
		}
	}
	c.unbind = c.coord.Bind(ctx, c.provider)

	app = c
	return nil
}

func teardown() {
	if app == nil {
		return
	}
	if app.unbind != nil {
		app.unbind()
	}
	if app.db != nil {
		_ = database.Close(app.db)
	}
	app = nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// confirm asks on stdin unless --yes was given
func confirm(_ context.Context, prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(output.Out, "%s [y/N] ", prompt)
	answer, _ := bufio.NewReader(stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
