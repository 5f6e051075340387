// patterns.go
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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/localnerve/strudel-share/cmd/strudelctl/output"
	"github.com/localnerve/strudel-share/internal/compose"
	"github.com/localnerve/strudel-share/internal/demo"
	"github.com/localnerve/strudel-share/internal/mutation"
	"github.com/spf13/cobra"
)

var (
	// patterns flags
	category string
	search   string

	// upload flags
	form     mutation.PatternForm
	codeFile string

	// play flags
	printOnly bool
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List patterns",
	Long: `List the pattern board with like counts.

Examples:
  strudelctl patterns
  strudelctl patterns --category Bass
  strudelctl patterns --search techno`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if category != "" && !demo.IsCategory(category) {
			return fmt.Errorf("unknown category %q, one of %s", category, strings.Join(demo.Categories, ", "))
		}
		board := app.coord.LoadPatterns(cmd.Context())
		if board.IsDemo {
			output.DemoBanner()
		}
		output.Patterns(compose.FilterPatterns(board.Patterns, category, search))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show PATTERN_ID",
	Short: "Show a pattern with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := app.coord.LoadPattern(cmd.Context(), args[0])
		if err != nil {
			return report(err)
		}
		if detail.IsDemo {
			output.DemoBanner()
		}
		output.Pattern(detail)
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like PATTERN_ID",
	Short: "Like a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.coord.Like(cmd.Context(), args[0]); err != nil {
			return report(err)
		}
		output.Success("Liked")
		return nil
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike PATTERN_ID",
	Short: "Remove your like from a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.coord.Unlike(cmd.Context(), args[0]); err != nil {
			return report(err)
		}
		output.Success("Unliked")
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a pattern",
	Long: `Upload a pattern. The code comes from --code, --file, or stdin with --file -.

Examples:
  strudelctl upload --name "Four on the floor" --code 's("bd*4")' --tags house,kick
  strudelctl upload --name Arp --category Synth --file arp.strudel`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if codeFile != "" {
			code, err := readCode(codeFile)
			if err != nil {
				return err
			}
			form.Code = code
		}
		if form.Category != "" && !isUploadCategory(form.Category) {
			return fmt.Errorf("unknown category %q, one of %s", form.Category, strings.Join(demo.UploadCategories, ", "))
		}
		patch, err := app.coord.UploadPattern(cmd.Context(), form)
		if errors.Is(err, mutation.ErrValidation) {
			output.Muted("Nothing uploaded: name and code are required")
			return nil
		}
		if err != nil {
			return report(err)
		}
		output.Success("Uploaded %s (%s)", patch.Pattern.Name, patch.Pattern.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete PATTERN_ID",
	Short: "Delete one of your patterns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := app.coord.DeletePattern(cmd.Context(), args[0])
		if err != nil {
			return report(err)
		}
		output.Success("Deleted %s", patch.ID)
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play PATTERN_ID",
	Short: "Open a pattern in the Strudel REPL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := app.coord.LoadPattern(cmd.Context(), args[0])
		if err != nil {
			return report(err)
		}
		if printOnly {
			fmt.Fprintln(output.Out, app.bridge.URL(detail.Pattern.Code))
			return nil
		}
		url, err := app.bridge.Play(cmd.Context(), detail.Pattern.Code, func() {
			output.Muted("Handed off to the REPL")
		})
		if err != nil {
			output.Warning("Could not open a browser, open this url instead:")
			fmt.Fprintln(output.Out, url)
			return nil
		}
		output.Success("Playing %s", detail.Pattern.Name)
		return nil
	},
}

func isUploadCategory(name string) bool {
	for _, c := range demo.UploadCategories {
		if c == name {
			return true
		}
	}
	return false
}

func readCode(path string) (string, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read code: %w", err)
	}
	return string(raw), nil
}

func init() {
	patternsCmd.Flags().StringVarP(&category, "category", "c", "", "Category filter, All for every category")
	patternsCmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name or tag search")

	uploadCmd.Flags().StringVarP(&form.Name, "name", "n", "", "Pattern name")
	uploadCmd.Flags().StringVarP(&form.Category, "category", "c", "", "Category, defaults to "+demo.DefaultCategory)
	uploadCmd.Flags().StringVar(&form.Code, "code", "", "Strudel code")
	uploadCmd.Flags().StringVarP(&codeFile, "file", "f", "", "Read the code from a file, - for stdin")
	uploadCmd.Flags().StringVarP(&form.Author, "author", "a", "", "Author, defaults to your display name")
	uploadCmd.Flags().StringVarP(&form.Tags, "tags", "t", "", "Comma separated tags")
	uploadCmd.Flags().StringVarP(&form.Description, "description", "d", "", "Description")

	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")

	playCmd.Flags().BoolVar(&printOnly, "print", false, "Print the REPL url instead of opening it")

	rootCmd.AddCommand(patternsCmd, showCmd, likeCmd, unlikeCmd, uploadCmd, deleteCmd, playCmd)
}
