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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/strudel-share/internal/mutation"
	"github.com/localnerve/strudel-share/internal/utils"
	"github.com/localnerve/strudel-share/internal/views"
)

// FeedHandler handles feed routes
type FeedHandler struct {
	*Deps
}

// GetFeed handles GET /api/feed
// @Summary Get the feed
// @Description Posts newest first, each with its comments oldest first
// @Tags Feed
// @Produce json
// @Success 200 {object} views.Feed
// @Router /feed [get]
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Source.Feed(c.UserContext()), fiber.StatusOK)
}

// CreatePost handles POST /api/feed/posts
// @Summary Create a post
// @Tags Feed
// @Accept json
// @Produce json
// @Param body body CommentRequest true "Post"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /feed/posts [post]
func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	var body CommentRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	return runMutation(c, h.Deps, fiber.StatusCreated, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.CreatePost(c.UserContext(), body.Content)
	})
}

// DeletePost handles DELETE /api/feed/posts/:id
// @Summary Delete own post
// @Tags Feed
// @Produce json
// @Param id path string true "Post ID"
// @Param confirm query bool true "Confirm the delete"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 428 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /feed/posts/{id} [delete]
func (h *FeedHandler) DeletePost(c *fiber.Ctx) error {
	return runMutation(c, h.Deps, fiber.StatusOK, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.DeletePost(c.UserContext(), param(c, "id"))
	})
}

// AddComment handles POST /api/feed/posts/:id/comments
// @Summary Comment on a post
// @Tags Feed
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} utils.SuccessResponseStruct
// @Security CookieAuth
// @Router /feed/posts/{id}/comments [post]
func (h *FeedHandler) AddComment(c *fiber.Ctx) error {
	var body CommentRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	return runMutation(c, h.Deps, fiber.StatusCreated, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.AddComment(c.UserContext(), param(c, "id"), body.Content)
	})
}

// DeleteComment handles DELETE /api/feed/posts/:id/comments/:commentId
// @Summary Delete own comment
// @Tags Feed
// @Produce json
// @Param id path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Param confirm query bool true "Confirm the delete"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /feed/posts/{id}/comments/{commentId} [delete]
func (h *FeedHandler) DeleteComment(c *fiber.Ctx) error {
	return runMutation(c, h.Deps, fiber.StatusOK, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.DeleteComment(c.UserContext(), param(c, "id"), param(c, "commentId"))
	})
}
