// views.go
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

package views

import (
	"github.com/localnerve/strudel-share/internal/models"
)

// PostView is a post with its comments, oldest first
type PostView struct {
	models.Post
	Comments     []models.Comment `json:"comments"`
	ShowComments bool             `json:"show_comments"`
}

// PatternView is a pattern with its like summary for one viewer
type PatternView struct {
	models.Pattern
	LikesCount int  `json:"likes_count"`
	IsLiked    bool `json:"is_liked"`
}

// PatternBoard is the pattern listing
type PatternBoard struct {
	Patterns []PatternView `json:"patterns"`
	IsDemo   bool          `json:"isDemo"`
}

// Feed is the post listing
type Feed struct {
	Posts  []PostView `json:"posts"`
	IsDemo bool       `json:"isDemo"`
}

// PatternDetail is one pattern with its comments
type PatternDetail struct {
	Pattern  PatternView             `json:"pattern"`
	Comments []models.PatternComment `json:"comments"`
	IsDemo   bool                    `json:"isDemo"`
}

// Profile holds the uploaded and liked tabs of the signed in user
type Profile struct {
	Uploaded []PatternView `json:"uploaded"`
	Liked    []PatternView `json:"liked"`
}

// State is the local view state a coordinator keeps consistent with the store
type State struct {
	ViewerID     string         `json:"viewer_id,omitempty"`
	Patterns     []PatternView  `json:"patterns"`
	PatternsDemo bool           `json:"patterns_demo"`
	Posts        []PostView     `json:"posts"`
	FeedDemo     bool           `json:"feed_demo"`
	Detail       *PatternDetail `json:"detail,omitempty"`
	Uploaded     []PatternView  `json:"uploaded"`
	Liked        []PatternView  `json:"liked"`
}

// FindPattern returns the first view of the pattern id held anywhere in the state
func (s State) FindPattern(id string) (PatternView, bool) {
	if s.Detail != nil && s.Detail.Pattern.ID == id {
		return s.Detail.Pattern, true
	}
	for _, list := range [][]PatternView{s.Patterns, s.Uploaded, s.Liked} {
		for _, p := range list {
			if p.ID == id {
				return p, true
			}
		}
	}
	return PatternView{}, false
}

// FindPost returns the post id from the feed
func (s State) FindPost(id string) (PostView, bool) {
	for _, p := range s.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return PostView{}, false
}

// FindComment returns the feed comment id
func (s State) FindComment(id string) (models.Comment, bool) {
	for _, p := range s.Posts {
		for _, c := range p.Comments {
			if c.ID == id {
				return c, true
			}
		}
	}
	return models.Comment{}, false
}

// FindPatternComment returns the detail comment id
func (s State) FindPatternComment(id string) (models.PatternComment, bool) {
	if s.Detail == nil {
		return models.PatternComment{}, false
	}
	for _, c := range s.Detail.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return models.PatternComment{}, false
}
