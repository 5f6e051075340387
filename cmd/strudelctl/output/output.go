// output.go
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

// Package output renders strudelctl results in the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/localnerve/strudel-share/internal/views"
)

var (
	// Out receives results, Err receives notices and alerts
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")
	colorLiked   = lipgloss.Color("#EC4899")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	likedStyle   = lipgloss.NewStyle().Foreground(colorLiked)

	bannerStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 1)

	codeStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorMuted).
			PaddingLeft(1)
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Fprint(Out, successStyle.Render("✓ "))
	fmt.Fprintf(Out, format+"\n", args...)
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Fprint(Err, warningStyle.Render("⚠ "))
	fmt.Fprintf(Err, format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Fprint(Err, errorStyle.Render("✗ "))
	fmt.Fprintf(Err, format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Fprint(Out, infoStyle.Render("ℹ "))
	fmt.Fprintf(Out, format+"\n", args...)
}

// Muted prints a muted message
func Muted(format string, args ...interface{}) {
	fmt.Fprintln(Out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Primary prints a primary message
func Primary(format string, args ...interface{}) {
	fmt.Fprintln(Out, primaryStyle.Render(fmt.Sprintf(format, args...)))
}

// DemoBanner is shown above any listing served from the built-in dataset
func DemoBanner() {
	fmt.Fprintln(Err, bannerStyle.Render("Demo mode: showing built-in patterns, changes are disabled"))
}

func heart(liked bool) string {
	if liked {
		return likedStyle.Render("♥")
	}
	return "♡"
}

// Patterns prints the pattern board as a table
func Patterns(patterns []views.PatternView) {
	if len(patterns) == 0 {
		Muted("No patterns found")
		return
	}
	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tLIKES\tAUTHOR\tTAGS\tID")
	for _, p := range patterns {
		fmt.Fprintf(w, "%s\t%s\t%s %d\t%s\t%s\t%s\n",
			p.Name, p.Category, heart(p.IsLiked), p.LikesCount, p.Author, strings.Join(p.Tags, ","), p.ID)
	}
	w.Flush()
}

// Pattern prints a pattern detail page
func Pattern(d views.PatternDetail) {
	p := d.Pattern
	Primary("%s", p.Name)
	Muted("%s by %s · %s %d", p.Category, p.Author, heart(p.IsLiked), p.LikesCount)
	if p.Description != "" {
		fmt.Fprintln(Out, p.Description)
	}
	if len(p.Tags) > 0 {
		Muted("tags: %s", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintln(Out, codeStyle.Render(p.Code))

	if len(d.Comments) == 0 {
		Muted("No comments yet")
		return
	}
	fmt.Fprintln(Out)
	for _, c := range d.Comments {
		fmt.Fprintf(Out, "%s %s\n", primaryStyle.Render(c.Author), c.Content)
		Muted("  %s · %s", c.CreatedAt.Format("2006-01-02 15:04"), c.ID)
	}
}

// Feed prints posts with their comments
func Feed(posts []views.PostView) {
	if len(posts) == 0 {
		Muted("No posts yet")
		return
	}
	for i, p := range posts {
		if i > 0 {
			fmt.Fprintln(Out)
		}
		fmt.Fprintf(Out, "%s %s\n", primaryStyle.Render(p.Author), p.Content)
		Muted("%s · %s · %d comments", p.CreatedAt.Format("2006-01-02 15:04"), p.ID, len(p.Comments))
		for _, c := range p.Comments {
			fmt.Fprintf(Out, "  ↳ %s %s\n", primaryStyle.Render(c.Author), c.Content)
		}
	}
}
