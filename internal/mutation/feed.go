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

package mutation

import (
	"context"
	"fmt"

	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/models"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/views"
)

type postInput struct {
	Content string `validate:"required"`
}

type commentInput struct {
	PostID  string `validate:"required"`
	Content string `validate:"required"`
}

type deleteInput struct {
	ID string `validate:"required"`
}

// CreatePost publishes a post and prepends it to the feed
func (c *Coordinator) CreatePost(ctx context.Context, content string) (views.Patch, error) {
	in := postInput{Content: content}
	trim(&in.Content)

	return c.run(ctx, step{
		action: ActionCreatePost,
		gate:   gateFeed,
		input:  &in,
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			post := &models.Post{
				Content: in.Content,
				UserID:  user.ID,
				Author:  session.DisplayName(user),
			}
			if err := c.src.Gateway().Insert(ctx, gateway.Posts, post); err != nil {
				return views.Patch{}, err
			}
			return views.Patch{Op: views.Insert, Collection: views.CollectionPosts, ID: post.ID, Post: post}, nil
		},
	})
}

// AddComment comments on a post and appends it to that post's comments
func (c *Coordinator) AddComment(ctx context.Context, postID, content string) (views.Patch, error) {
	in := commentInput{PostID: postID, Content: content}
	trim(&in.PostID, &in.Content)

	return c.run(ctx, step{
		action: ActionAddComment,
		entity: in.PostID,
		gate:   gateFeed,
		input:  &in,
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			comment := &models.Comment{
				Content: in.Content,
				PostID:  in.PostID,
				UserID:  user.ID,
				Author:  session.DisplayName(user),
			}
			if err := c.src.Gateway().Insert(ctx, gateway.Comments, comment); err != nil {
				return views.Patch{}, err
			}
			return views.Patch{
				Op:         views.Insert,
				Collection: views.CollectionComments,
				ID:         comment.ID,
				ParentID:   comment.PostID,
				Comment:    comment,
			}, nil
		},
	})
}

// DeletePost removes the viewer's own post after confirmation
func (c *Coordinator) DeletePost(ctx context.Context, postID string) (views.Patch, error) {
	in := deleteInput{ID: postID}
	trim(&in.ID)

	return c.run(ctx, step{
		action: ActionDeletePost,
		entity: in.ID,
		gate:   gateFeed,
		input:  &in,
		authorize: func(ctx context.Context, user session.Authenticated) error {
			post, found := c.State().FindPost(in.ID)
			owner := post.UserID
			if !found {
				var row models.Post
				if err := c.src.Gateway().Get(ctx, gateway.Posts, in.ID, &row); err != nil {
					return err
				}
				owner = row.UserID
			}
			if owner != user.ID {
				return ErrNotOwner
			}
			return c.confirmDelete(ctx, "post")
		},
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			_, err := c.src.Gateway().Delete(ctx, gateway.Posts,
				gateway.Where(gateway.Eq("id", in.ID), gateway.Eq("user_id", user.ID)))
			if err != nil {
				return views.Patch{}, err
			}
			return views.Patch{Op: views.Remove, Collection: views.CollectionPosts, ID: in.ID}, nil
		},
	})
}

// DeleteComment removes the viewer's own feed comment after confirmation.
// A non-empty postID must be the comment's post, otherwise it is ErrNotFound.
func (c *Coordinator) DeleteComment(ctx context.Context, postID, commentID string) (views.Patch, error) {
	in := deleteInput{ID: commentID}
	trim(&in.ID, &postID)
	var parent string

	return c.run(ctx, step{
		action: ActionDeleteComment,
		entity: in.ID,
		gate:   gateFeed,
		input:  &in,
		authorize: func(ctx context.Context, user session.Authenticated) error {
			comment, found := c.State().FindComment(in.ID)
			if !found {
				if err := c.src.Gateway().Get(ctx, gateway.Comments, in.ID, &comment); err != nil {
					return err
				}
			}
			if postID != "" && comment.PostID != postID {
				return fmt.Errorf("comment %s on post %s: %w", in.ID, postID, gateway.ErrNotFound)
			}
			parent = comment.PostID
			if comment.UserID != user.ID {
				return ErrNotOwner
			}
			return c.confirmDelete(ctx, "comment")
		},
		write: func(ctx context.Context, user session.Authenticated) (views.Patch, error) {
			_, err := c.src.Gateway().Delete(ctx, gateway.Comments,
				gateway.Where(gateway.Eq("id", in.ID), gateway.Eq("user_id", user.ID)))
			if err != nil {
				return views.Patch{}, err
			}
			return views.Patch{Op: views.Remove, Collection: views.CollectionComments, ID: in.ID, ParentID: parent}, nil
		},
	})
}
