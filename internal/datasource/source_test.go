// source_test.go
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

package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/gateway/gatewaytest"
	"github.com/localnerve/strudel-share/internal/logging"
	"github.com/localnerve/strudel-share/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPattern(t *testing.T, gw gateway.Gateway, name, owner string, at time.Time) models.Pattern {
	t.Helper()
	p := models.Pattern{Name: name, Category: "Drums", Code: "s(\"bd\")", Author: "a", CreatedAt: at}
	if owner != "" {
		p.UserID = &owner
	}
	require.NoError(t, gw.Insert(context.Background(), gateway.Patterns, &p))
	return p
}

func like(t *testing.T, gw gateway.Gateway, patternID, userID string, at time.Time) {
	t.Helper()
	require.NoError(t, gw.Insert(context.Background(), gateway.PatternLikes,
		&models.PatternLike{PatternID: patternID, UserID: userID, CreatedAt: at}))
}

func TestDemoSource(t *testing.T) {
	ctx := context.Background()
	src := Demo(logging.Discard())
	assert.False(t, src.Configured())
	assert.False(t, src.CanMutate())

	board := src.Patterns(ctx, "")
	assert.True(t, board.IsDemo)
	assert.Len(t, board.Patterns, 10)

	feed := src.Feed(ctx)
	assert.True(t, feed.IsDemo)
	assert.NotNil(t, feed.Posts)
	assert.Empty(t, feed.Posts)

	detail, err := src.Pattern(ctx, "demo-3", "")
	require.NoError(t, err)
	assert.True(t, detail.IsDemo)
	assert.Equal(t, "Synth Arpeggio", detail.Pattern.Name)

	_, err = src.Pattern(ctx, "nope", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCanMutateNeedsBothEndpoints(t *testing.T) {
	gw := gatewaytest.NewSQLite(t)
	assert.False(t, New(gw, false, logging.Discard()).CanMutate())
	assert.True(t, New(gw, true, logging.Discard()).CanMutate())
}

func TestPatternsFallback(t *testing.T) {
	ctx := context.Background()
	rec := gatewaytest.NewRecorder(gatewaytest.NewSQLite(t))
	src := New(rec, true, logging.Discard())

	board := src.Patterns(ctx, "u1")
	assert.True(t, board.IsDemo, "empty store falls back")
	assert.Len(t, board.Patterns, 10)

	seedPattern(t, rec, "mine", "u1", time.Now())
	board = src.Patterns(ctx, "u1")
	assert.False(t, board.IsDemo)
	require.Len(t, board.Patterns, 1)

	rec.SetFailReads(true)
	board = src.Patterns(ctx, "u1")
	assert.True(t, board.IsDemo, "read failure falls back")
	for _, p := range board.Patterns {
		assert.Zero(t, p.LikesCount)
		assert.False(t, p.IsLiked)
	}
}

func TestPatternsWithLikes(t *testing.T) {
	ctx := context.Background()
	gw := gatewaytest.NewSQLite(t)
	now := time.Now()
	older := seedPattern(t, gw, "older", "", now.Add(-time.Hour))
	newer := seedPattern(t, gw, "newer", "", now)
	like(t, gw, older.ID, "u1", now)
	like(t, gw, older.ID, "u2", now)

	board := New(gw, true, logging.Discard()).Patterns(ctx, "u1")
	require.Len(t, board.Patterns, 2)
	assert.Equal(t, newer.ID, board.Patterns[0].ID, "newest first")
	assert.Equal(t, 2, board.Patterns[1].LikesCount)
	assert.True(t, board.Patterns[1].IsLiked)
	assert.False(t, board.Patterns[0].IsLiked)
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	rec := gatewaytest.NewRecorder(gatewaytest.NewSQLite(t))
	src := New(rec, true, logging.Discard())

	feed := src.Feed(ctx)
	assert.False(t, feed.IsDemo, "configured empty feed is not demo")
	assert.Empty(t, feed.Posts)

	now := time.Now()
	post := &models.Post{Content: "hello world", UserID: "u1", Author: "ann", CreatedAt: now}
	require.NoError(t, rec.Insert(ctx, gateway.Posts, post))
	require.NoError(t, rec.Insert(ctx, gateway.Comments, &models.Comment{Content: "second", PostID: post.ID, UserID: "u2", Author: "bo", CreatedAt: now.Add(time.Second)}))
	require.NoError(t, rec.Insert(ctx, gateway.Comments, &models.Comment{Content: "first", PostID: post.ID, UserID: "u2", Author: "bo", CreatedAt: now}))

	feed = src.Feed(ctx)
	require.Len(t, feed.Posts, 1)
	require.Len(t, feed.Posts[0].Comments, 2)
	assert.Equal(t, "first", feed.Posts[0].Comments[0].Content)

	rec.SetFailReads(true)
	feed = src.Feed(ctx)
	assert.True(t, feed.IsDemo)
	assert.Empty(t, feed.Posts)
}

func TestPatternDetail(t *testing.T) {
	ctx := context.Background()
	rec := gatewaytest.NewRecorder(gatewaytest.NewSQLite(t))
	src := New(rec, true, logging.Discard())
	p := seedPattern(t, rec, "x", "u1", time.Now())
	like(t, rec, p.ID, "u2", time.Now())
	require.NoError(t, rec.Insert(ctx, gateway.PatternComments, &models.PatternComment{Content: "nice", PatternID: p.ID, UserID: "u2", Author: "bo"}))

	detail, err := src.Pattern(ctx, p.ID, "u2")
	require.NoError(t, err)
	assert.False(t, detail.IsDemo)
	assert.Equal(t, 1, detail.Pattern.LikesCount)
	assert.True(t, detail.Pattern.IsLiked)
	require.Len(t, detail.Comments, 1)

	_, err = src.Pattern(ctx, "missing", "u2")
	assert.ErrorIs(t, err, ErrNotFound)

	detail, err = src.Pattern(ctx, "demo-1", "u2")
	require.NoError(t, err)
	assert.True(t, detail.IsDemo)

	rec.SetFailReads(true)
	_, err = src.Pattern(ctx, p.ID, "u2")
	assert.ErrorIs(t, err, ErrNotFound, "failed read of a non-demo id has nothing to fall back to")
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	gw := gatewaytest.NewSQLite(t)
	src := New(gw, true, logging.Discard())
	now := time.Now()

	mine := seedPattern(t, gw, "mine", "me", now)
	a := seedPattern(t, gw, "a", "them", now)
	b := seedPattern(t, gw, "b", "them", now)
	seedPattern(t, gw, "unrelated", "them", now)
	like(t, gw, a.ID, "me", now.Add(-time.Minute))
	like(t, gw, b.ID, "me", now)
	like(t, gw, mine.ID, "them", now)

	profile, err := src.Profile(ctx, "me")
	require.NoError(t, err)
	require.Len(t, profile.Uploaded, 1)
	assert.Equal(t, mine.ID, profile.Uploaded[0].ID)
	assert.Equal(t, 1, profile.Uploaded[0].LikesCount)
	require.Len(t, profile.Liked, 2)
	assert.Equal(t, b.ID, profile.Liked[0].ID, "most recently liked first")
	assert.True(t, profile.Liked[1].IsLiked)

	empty, err := src.Profile(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty.Uploaded)
}
