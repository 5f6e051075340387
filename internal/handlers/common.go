// common.go
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
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/strudel-share/internal/config"
	"github.com/localnerve/strudel-share/internal/datasource"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/middleware"
	"github.com/localnerve/strudel-share/internal/mutation"
	"github.com/localnerve/strudel-share/internal/playback"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/types"
	"github.com/localnerve/strudel-share/internal/utils"
)

// Deps is what the route handlers share
type Deps struct {
	Config *config.Config
	Source *datasource.Source
	// Guard is shared by every request
	Guard  *mutation.Guard
	Bridge *playback.Bridge
	// Auth is nil when the identity provider is not configured
	Auth   session.Client
	Logger *slog.Logger
}

// newCoordinator builds the per-request coordinator for the requesting viewer.
// Deletes are confirmed by the confirm=true query parameter.
func newCoordinator(c *fiber.Ctx, src *datasource.Source, guard *mutation.Guard, logger *slog.Logger) *mutation.Coordinator {
	var confirm mutation.Confirmer = mutation.Never
	if c.QueryBool("confirm", false) {
		confirm = mutation.Always
	}
	coord := mutation.New(src,
		mutation.WithGuard(guard),
		mutation.WithConfirmer(confirm),
		mutation.WithLogger(logger),
	)
	coord.SetViewer(middleware.ViewerFrom(c))
	return coord
}

// mutationError maps coordinator errors onto response errors
func mutationError(err error) error {
	var actionErr *mutation.ActionError
	switch {
	case errors.Is(err, mutation.ErrAuthRequired):
		return types.NewError(fiber.StatusUnauthorized, "Sign in required", "auth.required")
	case errors.Is(err, mutation.ErrDemoMode):
		return types.NewError(fiber.StatusForbidden, "Not available in demo mode", "demo")
	case errors.Is(err, mutation.ErrNotOwner):
		return types.NewError(fiber.StatusForbidden, "Only the owner can delete this", "ownership")
	case errors.Is(err, mutation.ErrValidation):
		return types.NewError(fiber.StatusBadRequest, "Invalid input", "validation")
	case errors.Is(err, mutation.ErrInFlight):
		return types.NewError(fiber.StatusConflict, "Action already in progress", "inflight")
	case errors.Is(err, mutation.ErrNotConfirmed):
		return types.NewError(fiber.StatusPreconditionRequired, "Confirm the delete with confirm=true", "confirmation")
	case errors.Is(err, gateway.ErrNotFound):
		return types.NewError(fiber.StatusNotFound, "Not found", "notfound")
	case errors.As(err, &actionErr):
		return types.NewError(fiber.StatusInternalServerError, actionErr.Error(), "write")
	}
	return err
}

// parseBody parses a JSON body, mapping malformed input to a validation error
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return types.NewError(fiber.StatusBadRequest, "Invalid input", "validation")
	}
	return nil
}

// ErrorHandler renders every error with the standard error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var custom *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &custom):
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

// NotFound is the fallback route
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}

func param(c *fiber.Ctx, name string) string {
	return strings.TrimSpace(c.Params(name))
}
