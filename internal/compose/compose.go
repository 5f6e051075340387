// compose.go
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

package compose

import (
	"sort"
	"strings"

	"github.com/localnerve/strudel-share/internal/models"
	"github.com/localnerve/strudel-share/internal/views"
)

// PostsWithComments attaches to each post the comments that reference it,
// oldest first. Post order is kept. Comments with no matching post are dropped.
func PostsWithComments(posts []models.Post, comments []models.Comment) []views.PostView {
	byPost := make(map[string][]models.Comment, len(posts))
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}

	out := make([]views.PostView, 0, len(posts))
	for _, p := range posts {
		attached := append([]models.Comment{}, byPost[p.ID]...)
		sort.SliceStable(attached, func(i, j int) bool {
			return attached[i].CreatedAt.Before(attached[j].CreatedAt)
		})
		out = append(out, views.PostView{Post: p, Comments: attached})
	}
	return out
}

// PatternsWithLikes derives like counts and the viewer's liked flag.
// Every like row counts, duplicates included. An empty userID likes nothing.
func PatternsWithLikes(patterns []models.Pattern, likes []models.PatternLike, userID string) []views.PatternView {
	counts := make(map[string]int, len(patterns))
	mine := make(map[string]bool)
	for _, l := range likes {
		counts[l.PatternID]++
		if userID != "" && l.UserID == userID {
			mine[l.PatternID] = true
		}
	}

	out := make([]views.PatternView, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, views.PatternView{
			Pattern:    p,
			LikesCount: counts[p.ID],
			IsLiked:    mine[p.ID],
		})
	}
	return out
}

// Plain wraps patterns with zero likes, for demo rows
func Plain(patterns []models.Pattern) []views.PatternView {
	return PatternsWithLikes(patterns, nil, "")
}

// Resolved is the outcome of choosing between fetched and demo rows
type Resolved[T any] struct {
	Rows   []T
	IsDemo bool
}

// ResolveDataSource falls back to demo rows when the read failed or came back empty
func ResolveDataSource[T any](rows []T, err error, demo []T) Resolved[T] {
	if err != nil || len(rows) == 0 {
		return Resolved[T]{Rows: demo, IsDemo: true}
	}
	return Resolved[T]{Rows: rows}
}

// FilterPatterns keeps the patterns in category whose name or a tag contains query.
// "All" or an empty category matches everything, as does an empty query.
func FilterPatterns(patterns []views.PatternView, category, query string) []views.PatternView {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]views.PatternView, 0, len(patterns))
	for _, p := range patterns {
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		if query != "" && !matches(p.Pattern, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p models.Pattern, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// ParseTags splits comma separated input, trimming blanks and dropping empties
func ParseTags(input string) models.Tags {
	tags := models.Tags{}
	for _, part := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
