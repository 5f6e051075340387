// feed.go
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
	"strings"

	"github.com/localnerve/strudel-share/cmd/strudelctl/output"
	"github.com/spf13/cobra"
)

var (
	// comment flags
	onPattern bool
	remove    bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the feed, newest posts first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		feed := app.coord.LoadFeed(cmd.Context())
		if feed.IsDemo {
			output.DemoBanner()
		}
		output.Feed(feed.Posts)
		return nil
	},
}

var postCmd = &cobra.Command{
	Use:   "post TEXT...",
	Short: "Post to the feed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := app.coord.CreatePost(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return report(err)
		}
		output.Success("Posted (%s)", patch.ID)
		return nil
	},
}

var unpostCmd = &cobra.Command{
	Use:   "unpost POST_ID",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := app.coord.DeletePost(cmd.Context(), args[0]); err != nil {
			return report(err)
		}
		output.Success("Deleted")
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment ID [TEXT...]",
	Short: "Comment on a post, or on a pattern with --pattern",
	Long: `Comment on a feed post, or on a pattern with --pattern.
With --delete the id is a comment id and that comment is removed.

Examples:
  strudelctl comment 5f0c... nice groove
  strudelctl comment --pattern demo-3 love the swing
  strudelctl comment --delete --pattern 91ab...`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, text := args[0], strings.Join(args[1:], " ")

		var err error
		switch {
		case remove && onPattern:
			_, err = app.coord.DeletePatternComment(ctx, "", id)
		case remove:
			_, err = app.coord.DeleteComment(ctx, "", id)
		case onPattern:
			_, err = app.coord.AddPatternComment(ctx, id, text)
		default:
			_, err = app.coord.AddComment(ctx, id, text)
		}
		if err != nil {
			return report(err)
		}
		if remove {
			output.Success("Comment deleted")
		} else {
			output.Success("Commented")
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{unpostCmd, commentCmd} {
		cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	}
	commentCmd.Flags().BoolVarP(&onPattern, "pattern", "p", false, "The id is a pattern (or pattern comment) id")
	commentCmd.Flags().BoolVar(&remove, "delete", false, "Delete the comment with this id")

	rootCmd.AddCommand(feedCmd, postCmd, unpostCmd, commentCmd)
}
