// flows_test.go
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

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/localnerve/strudel-share/internal/config"
	"github.com/localnerve/strudel-share/internal/datasource"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/logging"
	"github.com/localnerve/strudel-share/internal/models"
	"github.com/localnerve/strudel-share/internal/views"
	"github.com/localnerve/strudel-share/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// testBoardAndCascade checks tag storage, like counts and cascading deletes
func testBoardAndCascade(t *testing.T, gw gateway.Gateway) {
	ctx := context.Background()
	ann := users["tok-ann"]
	bob := users["tok-bob"]

	p := helpers.CreateTestPattern(t, gw, "Cascade", "Bass", ann.ID, "sub", "808")
	require.NoError(t, gw.Insert(ctx, gateway.PatternLikes, &models.PatternLike{PatternID: p.ID, UserID: bob.ID}))
	require.NoError(t, gw.Insert(ctx, gateway.PatternComments, &models.PatternComment{
		PatternID: p.ID, UserID: bob.ID, Author: "bob", Content: "deep",
	}))

	src := datasource.New(gw, true, logging.Discard())
	board := src.Patterns(ctx, bob.ID)
	require.False(t, board.IsDemo)

	var found *views.PatternView
	for i := range board.Patterns {
		if board.Patterns[i].ID == p.ID {
			found = &board.Patterns[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 1, found.LikesCount)
	assert.True(t, found.IsLiked)
	assert.Equal(t, models.Tags{"sub", "808"}, found.Tags)

	// duplicate likes are rejected by the store
	assert.Error(t, gw.Insert(ctx, gateway.PatternLikes, &models.PatternLike{PatternID: p.ID, UserID: bob.ID}))

	n, err := gw.Delete(ctx, gateway.Patterns, gateway.Where(gateway.Eq("id", p.ID), gateway.Eq("user_id", ann.ID)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	likes, err := gw.Count(ctx, gateway.PatternLikes, gateway.Where(gateway.Eq("pattern_id", p.ID)))
	require.NoError(t, err)
	assert.Zero(t, likes)
	comments, err := gw.Count(ctx, gateway.PatternComments, gateway.Where(gateway.Eq("pattern_id", p.ID)))
	require.NoError(t, err)
	assert.Zero(t, comments)
}

// testFeedComposition checks posts come back newest first with their comments
func testFeedComposition(t *testing.T, gw gateway.Gateway) {
	ctx := context.Background()
	ann := users["tok-ann"]

	post := helpers.CreateTestPost(t, gw, ann.ID, "ann", "first jam")
	require.NoError(t, gw.Insert(ctx, gateway.Comments, &models.Comment{
		PostID: post.ID, UserID: ann.ID, Author: "ann", Content: "self reply",
	}))

	feed := datasource.New(gw, true, logging.Discard()).Feed(ctx)
	require.False(t, feed.IsDemo)

	var found *views.PostView
	for i := range feed.Posts {
		if feed.Posts[i].ID == post.ID {
			found = &feed.Posts[i]
		}
	}
	require.NotNil(t, found)
	require.Len(t, found.Comments, 1)
	assert.Equal(t, "self reply", found.Comments[0].Content)
}

// testHandlerFlow runs upload, like and a confirmed delete through the HTTP surface
func testHandlerFlow(t *testing.T, cfg *config.Config, gw gateway.Gateway) {
	helpers.SeedDemoPatterns(t, gw)
	app := newApp(cfg, datasource.New(gw, true, logging.Discard()), users)

	req := httptest.NewRequest("POST", "/api/patterns", jsonBody(t, map[string]any{
		"name":     "Flow",
		"category": "Synth",
		"code":     `note("c e g")`,
	}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok-ann")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, 201)

	var created struct {
		Patch views.Patch `json:"patch"`
	}
	helpers.ParseJSON(t, resp, &created)
	require.NotNil(t, created.Patch.Pattern)
	id := created.Patch.Pattern.ID

	req = httptest.NewRequest("POST", "/api/patterns/"+id+"/like", nil)
	req.Header.Set("Authorization", "Bearer tok-bob")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, 200)

	req = httptest.NewRequest("DELETE", "/api/patterns/"+id, nil)
	req.Header.Set("Authorization", "Bearer tok-ann")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, 428)
	helpers.AssertErrorType(t, resp, "confirmation")

	req = httptest.NewRequest("DELETE", "/api/patterns/"+id+"?confirm=true", nil)
	req.Header.Set("Authorization", "Bearer tok-bob")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, 403)
	helpers.AssertErrorType(t, resp, "ownership")

	req = httptest.NewRequest("DELETE", "/api/patterns/"+id+"?confirm=true", nil)
	req.Header.Set("Authorization", "Bearer tok-ann")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, 200)

	req = httptest.NewRequest("GET", "/api/patterns/"+id, nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, 303)
}
