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

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/strudel-share/internal/compose"
	"github.com/localnerve/strudel-share/internal/datasource"
	"github.com/localnerve/strudel-share/internal/demo"
	"github.com/localnerve/strudel-share/internal/middleware"
	"github.com/localnerve/strudel-share/internal/mutation"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/types"
	"github.com/localnerve/strudel-share/internal/utils"
	"github.com/localnerve/strudel-share/internal/views"
)

// PatternHandler handles pattern board, detail, like, comment and profile routes
type PatternHandler struct {
	*Deps
}

// UploadRequest is the upload body. Tags is a comma separated string or an array.
type UploadRequest struct {
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Code        string        `json:"code"`
	Author      string        `json:"author"`
	Tags        types.TagList `json:"tags" swaggertype:"array,string"`
	Description string        `json:"description"`
}

// CommentRequest is the body of a new comment or post
type CommentRequest struct {
	Content string `json:"content"`
}

// ListPatterns handles GET /api/patterns
// @Summary List patterns
// @Description Pattern board with like counts, filtered by category and a name or tag search
// @Tags Patterns
// @Produce json
// @Param category query string false "Category, All for every category"
// @Param q query string false "Case-insensitive name or tag search"
// @Success 200 {object} views.PatternBoard
// @Router /patterns [get]
func (h *PatternHandler) ListPatterns(c *fiber.Ctx) error {
	viewerID := session.UserID(middleware.ViewerFrom(c))
	board := h.Source.Patterns(c.UserContext(), viewerID)
	board.Patterns = compose.FilterPatterns(board.Patterns, c.Query("category"), c.Query("q"))
	return utils.SuccessResponse(c, board, fiber.StatusOK)
}

// ListCategories handles GET /api/patterns/categories
// @Summary List categories
// @Tags Patterns
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /patterns/categories [get]
func (h *PatternHandler) ListCategories(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.Map{
		"categories": demo.Categories,
		"upload":     demo.UploadCategories,
	}, fiber.StatusOK)
}

// GetPattern handles GET /api/patterns/:id
// @Summary Get a pattern
// @Description Pattern detail with comments. A missing pattern redirects to the listing.
// @Tags Patterns
// @Produce json
// @Param id path string true "Pattern ID"
// @Success 200 {object} views.PatternDetail
// @Success 303
// @Router /patterns/{id} [get]
func (h *PatternHandler) GetPattern(c *fiber.Ctx) error {
	viewerID := session.UserID(middleware.ViewerFrom(c))
	detail, err := h.Source.Pattern(c.UserContext(), param(c, "id"), viewerID)
	if errors.Is(err, datasource.ErrNotFound) {
		return c.Redirect("/api/patterns", fiber.StatusSeeOther)
	}
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, detail, fiber.StatusOK)
}

// PlayPattern handles GET /api/patterns/:id/play
// @Summary Play a pattern
// @Description Redirects to the Strudel player with the pattern code in the url fragment
// @Tags Patterns
// @Param id path string true "Pattern ID"
// @Success 302
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /patterns/{id}/play [get]
func (h *PatternHandler) PlayPattern(c *fiber.Ctx) error {
	detail, err := h.Source.Pattern(c.UserContext(), param(c, "id"), "")
	if errors.Is(err, datasource.ErrNotFound) {
		return utils.NotFoundResponse(c, "Pattern not found")
	}
	if err != nil {
		return err
	}
	return c.Redirect(h.Bridge.URL(detail.Pattern.Code), fiber.StatusFound)
}

// UploadPattern handles POST /api/patterns
// @Summary Upload a pattern
// @Tags Patterns
// @Accept json
// @Produce json
// @Param body body UploadRequest true "Pattern"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /patterns [post]
func (h *PatternHandler) UploadPattern(c *fiber.Ctx) error {
	var body UploadRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}

	coord := newCoordinator(c, h.Source, h.Guard, h.Logger)
	patch, err := coord.UploadPattern(c.UserContext(), mutation.PatternForm{
		Name:        body.Name,
		Category:    body.Category,
		Code:        body.Code,
		Author:      body.Author,
		Tags:        body.Tags.String(),
		Description: body.Description,
	})
	if err != nil {
		return mutationError(err)
	}
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, patch)
}

// DeletePattern handles DELETE /api/patterns/:id
// @Summary Delete own pattern
// @Description Deletes the pattern with its likes and comments. Requires confirm=true.
// @Tags Patterns
// @Produce json
// @Param id path string true "Pattern ID"
// @Param confirm query bool true "Confirm the delete"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 428 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /patterns/{id} [delete]
func (h *PatternHandler) DeletePattern(c *fiber.Ctx) error {
	return h.mutate(c, fiber.StatusOK, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.DeletePattern(c.UserContext(), param(c, "id"))
	})
}

// LikePattern handles POST /api/patterns/:id/like
// @Summary Like a pattern
// @Tags Patterns
// @Produce json
// @Param id path string true "Pattern ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /patterns/{id}/like [post]
func (h *PatternHandler) LikePattern(c *fiber.Ctx) error {
	return h.mutate(c, fiber.StatusOK, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.Like(c.UserContext(), param(c, "id"))
	})
}

// UnlikePattern handles DELETE /api/patterns/:id/like
// @Summary Unlike a pattern
// @Tags Patterns
// @Produce json
// @Param id path string true "Pattern ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /patterns/{id}/like [delete]
func (h *PatternHandler) UnlikePattern(c *fiber.Ctx) error {
	return h.mutate(c, fiber.StatusOK, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.Unlike(c.UserContext(), param(c, "id"))
	})
}

// AddComment handles POST /api/patterns/:id/comments
// @Summary Comment on a pattern
// @Tags Patterns
// @Accept json
// @Produce json
// @Param id path string true "Pattern ID"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} utils.SuccessResponseStruct
// @Security CookieAuth
// @Router /patterns/{id}/comments [post]
func (h *PatternHandler) AddComment(c *fiber.Ctx) error {
	var body CommentRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	return h.mutate(c, fiber.StatusCreated, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.AddPatternComment(c.UserContext(), param(c, "id"), body.Content)
	})
}

// DeleteComment handles DELETE /api/patterns/:id/comments/:commentId
// @Summary Delete own pattern comment
// @Tags Patterns
// @Produce json
// @Param id path string true "Pattern ID"
// @Param commentId path string true "Comment ID"
// @Param confirm query bool true "Confirm the delete"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /patterns/{id}/comments/{commentId} [delete]
func (h *PatternHandler) DeleteComment(c *fiber.Ctx) error {
	return h.mutate(c, fiber.StatusOK, func(coord *mutation.Coordinator) (views.Patch, error) {
		return coord.DeletePatternComment(c.UserContext(), param(c, "id"), param(c, "commentId"))
	})
}

// GetProfile handles GET /api/profile
// @Summary Signed in user's patterns
// @Description Uploaded and liked tabs
// @Tags Profile
// @Produce json
// @Success 200 {object} views.Profile
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /profile [get]
func (h *PatternHandler) GetProfile(c *fiber.Ctx) error {
	coord := newCoordinator(c, h.Source, h.Guard, h.Logger)
	profile, err := coord.LoadProfile(c.UserContext())
	if err != nil {
		if errors.Is(err, mutation.ErrAuthRequired) {
			return mutationError(err)
		}
		return utils.ErrorResponse(c, "Failed to load profile", fiber.StatusInternalServerError, "read")
	}
	return utils.SuccessResponse(c, profile, fiber.StatusOK)
}

func (h *PatternHandler) mutate(c *fiber.Ctx, status int, fn func(*mutation.Coordinator) (views.Patch, error)) error {
	return runMutation(c, h.Deps, status, fn)
}

func runMutation(c *fiber.Ctx, d *Deps, status int, fn func(*mutation.Coordinator) (views.Patch, error)) error {
	patch, err := fn(newCoordinator(c, d.Source, d.Guard, d.Logger))
	if err != nil {
		return mutationError(err)
	}
	return utils.MutationSuccessResponse(c, status, patch)
}
