// seed.go
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
	"github.com/localnerve/strudel-share/cmd/strudelctl/output"
	"github.com/localnerve/strudel-share/internal/demo"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/spf13/cobra"
)

var force bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the built-in patterns into an empty store",
	Long: `Insert the built-in patterns into the store so the board leaves demo mode.
An empty store keeps serving the demo dataset, so a fresh deployment is seeded once.
A store that already has patterns is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.gw == nil {
			output.Warning("Demo mode: DB_DATABASE is not set, nothing to seed")
			return errReported
		}
		ctx := cmd.Context()

		n, err := app.gw.Count(ctx, gateway.Patterns, nil)
		if err != nil {
			return err
		}
		if n > 0 && !force {
			output.Info("The store already has %d patterns, use --force to add the built-in ones anyway", n)
			return nil
		}

		patterns := demo.SeedPatterns()
		if err := app.gw.Insert(ctx, gateway.Patterns, &patterns); err != nil {
			return err
		}
		output.Success("Seeded %d patterns", len(patterns))
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&force, "force", false, "Seed even when the store has patterns")
	rootCmd.AddCommand(seedCmd)
}
