// patch_test.go
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
	"testing"

	"github.com/localnerve/strudel-share/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func pattern(id, owner string) models.Pattern {
	p := models.Pattern{ID: id, Name: id, Category: "Drums", Code: "s(\"bd\")", Author: "a", Tags: models.Tags{}}
	if owner != "" {
		p.UserID = ptr(owner)
	}
	return p
}

func TestApplyPosts(t *testing.T) {
	s := State{Posts: []PostView{{Post: models.Post{ID: "p1"}, Comments: []models.Comment{}}}}

	s2 := Apply(s, Patch{Op: Insert, Collection: CollectionPosts, Post: &models.Post{ID: "p2", Content: "hello world"}})
	require.Len(t, s2.Posts, 2)
	assert.Equal(t, "p2", s2.Posts[0].ID)
	assert.Empty(t, s2.Posts[0].Comments)
	assert.NotNil(t, s2.Posts[0].Comments)
	assert.Len(t, s.Posts, 1, "input state untouched")

	s3 := Apply(s2, Patch{Op: Update, Collection: CollectionPosts, ID: "p1", ToggleComments: true})
	assert.True(t, s3.Posts[1].ShowComments)
	assert.False(t, s2.Posts[1].ShowComments)

	s4 := Apply(s3, Patch{Op: Remove, Collection: CollectionPosts, ID: "p2"})
	require.Len(t, s4.Posts, 1)
	assert.Equal(t, "p1", s4.Posts[0].ID)
}

func TestApplyComments(t *testing.T) {
	s := State{Posts: []PostView{
		{Post: models.Post{ID: "p1"}, Comments: []models.Comment{{ID: "c1", PostID: "p1"}}},
		{Post: models.Post{ID: "p2"}, Comments: []models.Comment{}},
	}}

	s2 := Apply(s, Patch{Op: Insert, Collection: CollectionComments, Comment: &models.Comment{ID: "c2", PostID: "p1"}})
	require.Len(t, s2.Posts[0].Comments, 2)
	assert.Equal(t, "c2", s2.Posts[0].Comments[1].ID, "appended last")
	assert.Len(t, s.Posts[0].Comments, 1)
	assert.Empty(t, s2.Posts[1].Comments)

	s3 := Apply(s2, Patch{Op: Remove, Collection: CollectionComments, ID: "c1", ParentID: "p1"})
	require.Len(t, s3.Posts[0].Comments, 1)
	assert.Equal(t, "c2", s3.Posts[0].Comments[0].ID)
}

func TestApplyLikeEverywhere(t *testing.T) {
	view := PatternView{Pattern: pattern("x", "owner"), LikesCount: 2}
	s := State{
		Patterns: []PatternView{view},
		Uploaded: []PatternView{view},
		Liked:    []PatternView{},
		Detail:   &PatternDetail{Pattern: view},
	}

	liked := Apply(s, Patch{Op: Update, Collection: CollectionPatternLikes, ID: "x", LikesDelta: 1, Liked: ptr(true)})
	assert.Equal(t, 3, liked.Patterns[0].LikesCount)
	assert.True(t, liked.Patterns[0].IsLiked)
	assert.Equal(t, 3, liked.Uploaded[0].LikesCount)
	assert.Equal(t, 3, liked.Detail.Pattern.LikesCount)
	require.Len(t, liked.Liked, 1)
	assert.Equal(t, 3, liked.Liked[0].LikesCount)
	assert.Equal(t, 2, s.Detail.Pattern.LikesCount, "input detail untouched")

	unliked := Apply(liked, Patch{Op: Update, Collection: CollectionPatternLikes, ID: "x", LikesDelta: -1, Liked: ptr(false)})
	assert.Equal(t, s.Patterns, unliked.Patterns)
	assert.Equal(t, s.Uploaded, unliked.Uploaded)
	assert.Equal(t, *s.Detail, *unliked.Detail)
	assert.Empty(t, unliked.Liked)
}

func TestApplyUnlikeFloorsAtZero(t *testing.T) {
	s := State{Patterns: []PatternView{{Pattern: pattern("x", ""), LikesCount: 0}}}
	s = Apply(s, Patch{Op: Update, Collection: CollectionPatternLikes, ID: "x", LikesDelta: -1, Liked: ptr(false)})
	assert.Equal(t, 0, s.Patterns[0].LikesCount)
}

func TestApplyPatternInsert(t *testing.T) {
	s := State{ViewerID: "me", Patterns: []PatternView{{Pattern: pattern("old", "")}}}

	mine := pattern("new", "me")
	s2 := Apply(s, Patch{Op: Insert, Collection: CollectionPatterns, Pattern: &mine})
	require.Len(t, s2.Patterns, 2)
	assert.Equal(t, "new", s2.Patterns[0].ID)
	assert.Zero(t, s2.Patterns[0].LikesCount)
	require.Len(t, s2.Uploaded, 1)

	theirs := pattern("other", "them")
	s3 := Apply(s2, Patch{Op: Insert, Collection: CollectionPatterns, Pattern: &theirs})
	assert.Len(t, s3.Patterns, 3)
	assert.Len(t, s3.Uploaded, 1)
}

func TestApplyPatternRemoveFromEveryList(t *testing.T) {
	view := PatternView{Pattern: pattern("x", "me"), LikesCount: 1, IsLiked: true}
	other := PatternView{Pattern: pattern("y", "me")}
	s := State{
		ViewerID: "me",
		Patterns: []PatternView{view, other},
		Uploaded: []PatternView{view, other},
		Liked:    []PatternView{view},
		Detail:   &PatternDetail{Pattern: view},
	}

	s2 := Apply(s, Patch{Op: Remove, Collection: CollectionPatterns, ID: "x"})
	assert.Equal(t, []PatternView{other}, s2.Patterns)
	assert.Equal(t, []PatternView{other}, s2.Uploaded)
	assert.Empty(t, s2.Liked)
	assert.Nil(t, s2.Detail)
	assert.Len(t, s.Patterns, 2)
}

func TestApplyPatternComments(t *testing.T) {
	s := State{Detail: &PatternDetail{Pattern: PatternView{Pattern: pattern("x", "")}, Comments: []models.PatternComment{}}}

	s2 := Apply(s, Patch{Op: Insert, Collection: CollectionPatternComments, PatternComment: &models.PatternComment{ID: "c1", PatternID: "x"}})
	require.Len(t, s2.Detail.Comments, 1)
	assert.Empty(t, s.Detail.Comments)

	s3 := Apply(s2, Patch{Op: Insert, Collection: CollectionPatternComments, PatternComment: &models.PatternComment{ID: "c2", PatternID: "other"}})
	assert.Len(t, s3.Detail.Comments, 1, "comment for another pattern ignored")

	s4 := Apply(s3, Patch{Op: Remove, Collection: CollectionPatternComments, ID: "c1"})
	assert.Empty(t, s4.Detail.Comments)
}

func TestFind(t *testing.T) {
	s := State{
		Posts:  []PostView{{Post: models.Post{ID: "p1"}, Comments: []models.Comment{{ID: "c1"}}}},
		Liked:  []PatternView{{Pattern: pattern("x", "")}},
		Detail: &PatternDetail{Pattern: PatternView{Pattern: pattern("y", "")}, Comments: []models.PatternComment{{ID: "pc"}}},
	}

	_, ok := s.FindPattern("x")
	assert.True(t, ok)
	_, ok = s.FindPattern("y")
	assert.True(t, ok)
	_, ok = s.FindPost("p1")
	assert.True(t, ok)
	_, ok = s.FindComment("c1")
	assert.True(t, ok)
	_, ok = s.FindPatternComment("pc")
	assert.True(t, ok)
	_, ok = s.FindPattern("z")
	assert.False(t, ok)
}
