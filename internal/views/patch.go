// patch.go
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

// Op is the kind of change a patch describes
type Op string

const (
	Insert Op = "insert"
	Remove Op = "remove"
	Update Op = "update"
)

// Collection names the entity a patch touches
type Collection string

const (
	CollectionPatterns        Collection = "patterns"
	CollectionPatternLikes    Collection = "pattern_likes"
	CollectionPatternComments Collection = "pattern_comments"
	CollectionPosts           Collection = "posts"
	CollectionComments        Collection = "comments"
)

// Patch is one confirmed change to apply to local state
type Patch struct {
	Op             Op                     `json:"op"`
	Collection     Collection             `json:"collection"`
	ID             string                 `json:"id,omitempty"`
	ParentID       string                 `json:"parent_id,omitempty"`
	Post           *models.Post           `json:"post,omitempty"`
	Comment        *models.Comment        `json:"comment,omitempty"`
	Pattern        *models.Pattern        `json:"pattern,omitempty"`
	PatternComment *models.PatternComment `json:"pattern_comment,omitempty"`
	LikesDelta     int                    `json:"likes_delta,omitempty"`
	Liked          *bool                  `json:"liked,omitempty"`
	ToggleComments bool                   `json:"toggle_comments,omitempty"`
}

// Apply returns state with patch applied. The input state is not modified.
func Apply(s State, p Patch) State {
	switch p.Collection {
	case CollectionPosts:
		return applyPost(s, p)
	case CollectionComments:
		return applyComment(s, p)
	case CollectionPatterns:
		return applyPattern(s, p)
	case CollectionPatternLikes:
		return applyLike(s, p)
	case CollectionPatternComments:
		return applyPatternComment(s, p)
	}
	return s
}

func applyPost(s State, p Patch) State {
	switch p.Op {
	case Insert:
		if p.Post == nil {
			return s
		}
		posts := make([]PostView, 0, len(s.Posts)+1)
		posts = append(posts, PostView{Post: *p.Post, Comments: []models.Comment{}})
		s.Posts = append(posts, s.Posts...)
	case Remove:
		posts := make([]PostView, 0, len(s.Posts))
		for _, post := range s.Posts {
			if post.ID != p.ID {
				posts = append(posts, post)
			}
		}
		s.Posts = posts
	case Update:
		if !p.ToggleComments {
			return s
		}
		posts := make([]PostView, len(s.Posts))
		copy(posts, s.Posts)
		for i := range posts {
			if posts[i].ID == p.ID {
				posts[i].ShowComments = !posts[i].ShowComments
			}
		}
		s.Posts = posts
	}
	return s
}

func applyComment(s State, p Patch) State {
	posts := make([]PostView, len(s.Posts))
	copy(posts, s.Posts)
	switch p.Op {
	case Insert:
		if p.Comment == nil {
			return s
		}
		for i := range posts {
			if posts[i].ID == p.Comment.PostID {
				comments := make([]models.Comment, 0, len(posts[i].Comments)+1)
				comments = append(comments, posts[i].Comments...)
				posts[i].Comments = append(comments, *p.Comment)
			}
		}
	case Remove:
		for i := range posts {
			if p.ParentID != "" && posts[i].ID != p.ParentID {
				continue
			}
			comments := make([]models.Comment, 0, len(posts[i].Comments))
			for _, c := range posts[i].Comments {
				if c.ID != p.ID {
					comments = append(comments, c)
				}
			}
			posts[i].Comments = comments
		}
	default:
		return s
	}
	s.Posts = posts
	return s
}

func withoutPattern(list []PatternView, id string) []PatternView {
	if list == nil {
		return nil
	}
	out := make([]PatternView, 0, len(list))
	for _, v := range list {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}

func applyPattern(s State, p Patch) State {
	switch p.Op {
	case Insert:
		if p.Pattern == nil {
			return s
		}
		view := PatternView{Pattern: *p.Pattern}
		s.Patterns = append([]PatternView{view}, s.Patterns...)
		if s.ViewerID != "" && p.Pattern.OwnedBy(s.ViewerID) {
			s.Uploaded = append([]PatternView{view}, s.Uploaded...)
		}
	case Remove:
		s.Patterns = withoutPattern(s.Patterns, p.ID)
		s.Uploaded = withoutPattern(s.Uploaded, p.ID)
		s.Liked = withoutPattern(s.Liked, p.ID)
		if s.Detail != nil && s.Detail.Pattern.ID == p.ID {
			s.Detail = nil
		}
	}
	return s
}

func likeView(v PatternView, delta int, liked *bool) PatternView {
	v.LikesCount = max(v.LikesCount+delta, 0)
	if liked != nil {
		v.IsLiked = *liked
	}
	return v
}

func updateLikes(list []PatternView, id string, delta int, liked *bool) []PatternView {
	if list == nil {
		return nil
	}
	out := make([]PatternView, len(list))
	for i, v := range list {
		if v.ID == id {
			v = likeView(v, delta, liked)
		}
		out[i] = v
	}
	return out
}

func applyLike(s State, p Patch) State {
	if p.Op != Update {
		return s
	}
	before, known := s.FindPattern(p.ID)

	s.Patterns = updateLikes(s.Patterns, p.ID, p.LikesDelta, p.Liked)
	s.Uploaded = updateLikes(s.Uploaded, p.ID, p.LikesDelta, p.Liked)
	s.Liked = updateLikes(s.Liked, p.ID, p.LikesDelta, p.Liked)
	if s.Detail != nil && s.Detail.Pattern.ID == p.ID {
		detail := *s.Detail
		detail.Pattern = likeView(detail.Pattern, p.LikesDelta, p.Liked)
		s.Detail = &detail
	}

	if p.Liked == nil {
		return s
	}
	if *p.Liked {
		if _, inTab := findIn(s.Liked, p.ID); !inTab && known {
			s.Liked = append([]PatternView{likeView(before, p.LikesDelta, p.Liked)}, s.Liked...)
		}
	} else {
		s.Liked = withoutPattern(s.Liked, p.ID)
	}
	return s
}

func findIn(list []PatternView, id string) (PatternView, bool) {
	for _, v := range list {
		if v.ID == id {
			return v, true
		}
	}
	return PatternView{}, false
}

func applyPatternComment(s State, p Patch) State {
	if s.Detail == nil {
		return s
	}
	detail := *s.Detail
	switch p.Op {
	case Insert:
		if p.PatternComment == nil || p.PatternComment.PatternID != detail.Pattern.ID {
			return s
		}
		comments := make([]models.PatternComment, 0, len(detail.Comments)+1)
		comments = append(comments, detail.Comments...)
		detail.Comments = append(comments, *p.PatternComment)
	case Remove:
		comments := make([]models.PatternComment, 0, len(detail.Comments))
		for _, c := range detail.Comments {
			if c.ID != p.ID {
				comments = append(comments, c)
			}
		}
		detail.Comments = comments
	default:
		return s
	}
	s.Detail = &detail
	return s
}
