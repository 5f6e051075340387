// data.go
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

package helpers

import (
	"context"
	"testing"

	"github.com/localnerve/strudel-share/internal/demo"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/models"
)

// CreateTestPattern inserts a pattern. An empty owner leaves it unowned.
func CreateTestPattern(t *testing.T, gw gateway.Gateway, name, category, owner string, tags ...string) models.Pattern {
	t.Helper()
	p := models.Pattern{
		Name:     name,
		Category: category,
		Code:     `s("bd*4")`,
		Author:   "tester",
		Tags:     models.Tags(tags),
	}
	if owner != "" {
		p.UserID = &owner
	}
	if err := gw.Insert(context.Background(), gateway.Patterns, &p); err != nil {
		t.Fatalf("Failed to create pattern: %v", err)
	}
	return p
}

// CreateTestPost inserts a feed post
func CreateTestPost(t *testing.T, gw gateway.Gateway, userID, author, content string) models.Post {
	t.Helper()
	p := models.Post{Content: content, UserID: userID, Author: author}
	if err := gw.Insert(context.Background(), gateway.Posts, &p); err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return p
}

// SeedDemoPatterns inserts the seedable demo patterns
func SeedDemoPatterns(t *testing.T, gw gateway.Gateway) []models.Pattern {
	t.Helper()
	patterns := demo.SeedPatterns()
	if err := gw.Insert(context.Background(), gateway.Patterns, &patterns); err != nil {
		t.Fatalf("Failed to seed patterns: %v", err)
	}
	return patterns
}
