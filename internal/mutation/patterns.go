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

package mutation

import (
	"context"
	"fmt"

	"github.com/localnerve/strudel-share/internal/compose"
	"github.com/localnerve/strudel-share/internal/demo"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/models"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/views"
)

// PatternForm is the upload form. Tags is a comma separated list.
type PatternForm struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category"`
	Code        string `json:"code" validate:"required"`
	Author      string `json:"author"`
	Tags        string `json:"tags"`
	Description string `json:"description"`
}

type patternCommentInput struct {
	PatternID string `validate:"required"`
	Content   string `validate:"required"`
}

type likeInput struct {
	PatternID string `validate:"required"`
}

func boolPtr(b bool) *bool { return &b }

// Like records a like by the viewer
func (c *Coordinator) Like(ctx context.Context, patternID string) (views.Patch, error) {
	in := likeInput{PatternID: patternID}
	trim(&in.PatternID)

	return c.run(ctx, step{
		action:     ActionLike,
		entity:     in.PatternID,
		gate:       gatePatterns,
		demoEntity: isDemoPattern(in.PatternID),
		input:      &in,
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			like := &models.PatternLike{PatternID: in.PatternID, UserID: user.ID}
			if err := c.src.Gateway().Insert(ctx, gateway.PatternLikes, like); err != nil {
				return views.Patch{}, err
			}
			return views.Patch{
				Op:         views.Update,
				Collection: views.CollectionPatternLikes,
				ID:         in.PatternID,
				LikesDelta: 1,
				Liked:      boolPtr(true),
			}, nil
		},
	})
}

// Unlike removes the viewer's like
func (c *Coordinator) Unlike(ctx context.Context, patternID string) (views.Patch, error) {
	in := likeInput{PatternID: patternID}
	trim(&in.PatternID)

	return c.run(ctx, step{
		action:     ActionUnlike,
		entity:     in.PatternID,
		gate:       gatePatterns,
		demoEntity: isDemoPattern(in.PatternID),
		input:      &in,
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			n, err := c.src.Gateway().Delete(ctx, gateway.PatternLikes,
				gateway.Where(gateway.Eq("pattern_id", in.PatternID), gateway.Eq("user_id", user.ID)))
			if err != nil {
				return views.Patch{}, err
			}
			return views.Patch{
				Op:         views.Update,
				Collection: views.CollectionPatternLikes,
				ID:         in.PatternID,
				LikesDelta: -int(n),
				Liked:      boolPtr(false),
			}, nil
		},
	})
}

// ToggleLike likes or unlikes depending on the pattern's liked flag in state
func (c *Coordinator) ToggleLike(ctx context.Context, patternID string) (views.Patch, error) {
	if view, ok := c.State().FindPattern(patternID); ok && view.IsLiked {
		return c.Unlike(ctx, patternID)
	}
	return c.Like(ctx, patternID)
}

// UploadPattern stores a new pattern owned by the viewer
func (c *Coordinator) UploadPattern(ctx context.Context, form PatternForm) (views.Patch, error) {
	trim(&form.Name, &form.Category, &form.Code, &form.Author, &form.Description)

	// the demo gate needs to know whether the board is demo
	if _, ok := c.Viewer().(session.Authenticated); ok && c.src.CanMutate() && c.State().Patterns == nil {
		c.LoadPatterns(ctx)
	}

	return c.run(ctx, step{
		action: ActionUploadPattern,
		gate:   gatePatterns,
		input:  &form,
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			category := form.Category
			if category == "" {
				category = demo.DefaultCategory
			}
			author := form.Author
			if author == "" {
				if author = session.DisplayName(user); author == "Anonymous" {
					author = "anonymous"
				}
			}
			owner := user.ID
			pattern := &models.Pattern{
				Name:        form.Name,
				Category:    category,
				Code:        form.Code,
				Author:      author,
				Tags:        compose.ParseTags(form.Tags),
				Description: form.Description,
				UserID:      &owner,
			}
			if err := c.src.Gateway().Insert(ctx, gateway.Patterns, pattern); err != nil {
				return views.Patch{}, err
			}
			return views.Patch{Op: views.Insert, Collection: views.CollectionPatterns, ID: pattern.ID, Pattern: pattern}, nil
		},
	})
}

// DeletePattern removes the viewer's own pattern after confirmation.
// Its likes and comments go with it in the store.
func (c *Coordinator) DeletePattern(ctx context.Context, patternID string) (views.Patch, error) {
	in := likeInput{PatternID: patternID}
	trim(&in.PatternID)

	return c.run(ctx, step{
		action:     ActionDeletePattern,
		entity:     in.PatternID,
		gate:       gatePatterns,
		demoEntity: isDemoPattern(in.PatternID),
		input:      &in,
		authorize: func(ctx context.Context, user session.Authenticated) error {
			view, found := c.State().FindPattern(in.PatternID)
			pattern := view.Pattern
			if !found {
				if err := c.src.Gateway().Get(ctx, gateway.Patterns, in.PatternID, &pattern); err != nil {
					return err
				}
			}
			if !pattern.OwnedBy(user.ID) {
				return ErrNotOwner
			}
			return c.confirmDelete(ctx, "pattern")
		},
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			_, err := c.src.Gateway().Delete(ctx, gateway.Patterns,
				gateway.Where(gateway.Eq("id", in.PatternID), gateway.Eq("user_id", user.ID)))
			if err != nil {
				return views.Patch{}, err
			}
			return views.Patch{Op: views.Remove, Collection: views.CollectionPatterns, ID: in.PatternID}, nil
		},
	})
}

// AddPatternComment comments on a pattern
func (c *Coordinator) AddPatternComment(ctx context.Context, patternID, content string) (views.Patch, error) {
	in := patternCommentInput{PatternID: patternID, Content: content}
	trim(&in.PatternID, &in.Content)

	return c.run(ctx, step{
		action:     ActionAddPatternComment,
		entity:     in.PatternID,
		gate:       gatePatterns,
		demoEntity: isDemoPattern(in.PatternID),
		input:      &in,
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			comment := &models.PatternComment{
				Content:   in.Content,
				PatternID: in.PatternID,
				UserID:    user.ID,
				Author:    session.DisplayName(user),
			}
			if err := c.src.Gateway().Insert(ctx, gateway.PatternComments, comment); err != nil {
				return views.Patch{}, err
			}
			return views.Patch{
				Op:             views.Insert,
				Collection:     views.CollectionPatternComments,
				ID:             comment.ID,
				ParentID:       comment.PatternID,
				PatternComment: comment,
			}, nil
		},
	})
}

// DeletePatternComment removes the viewer's own pattern comment after confirmation.
// A non-empty patternID must be the comment's pattern, otherwise it is ErrNotFound.
func (c *Coordinator) DeletePatternComment(ctx context.Context, patternID, commentID string) (views.Patch, error) {
	in := deleteInput{ID: commentID}
	trim(&in.ID, &patternID)
	var parent string

	return c.run(ctx, step{
		action: ActionDeletePatternComment,
		entity: in.ID,
		gate:   gatePatterns,
		input:  &in,
		authorize: func(ctx context.Context, user session.Authenticated) error {
			comment, found := c.State().FindPatternComment(in.ID)
			if !found {
				if err := c.src.Gateway().Get(ctx, gateway.PatternComments, in.ID, &comment); err != nil {
					return err
				}
			}
			if patternID != "" && comment.PatternID != patternID {
				return fmt.Errorf("comment %s on pattern %s: %w", in.ID, patternID, gateway.ErrNotFound)
			}
			parent = comment.PatternID
			if comment.UserID != user.ID {
				return ErrNotOwner
			}
			return c.confirmDelete(ctx, "comment")
		},
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			_, err := c.src.Gateway().Delete(ctx, gateway.PatternComments,
				gateway.Where(gateway.Eq("id", in.ID), gateway.Eq("user_id", user.ID)))
			if err != nil {
				return views.Patch{}, err
			}
			return views.Patch{Op: views.Remove, Collection: views.CollectionPatternComments, ID: in.ID, ParentID: parent}, nil
		},
	})
}
