// auth.go
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

package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/types"
)

const viewerKey = "viewer"

const (
	// SessionCookie is the Authorizer session cookie name
	SessionCookie = "cookie_session"
	// AccessTokenCookie holds the access token issued by sign in
	AccessTokenCookie = "access_token"
)

// Viewer resolves who is making the request and stores it for handlers.
// A bearer token (or the access token cookie) is checked against the profile endpoint,
// else the Authorizer session cookie is validated.
// Missing or invalid credentials leave the request anonymous.
func Viewer(client session.Client, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var viewer session.Viewer = session.Anonymous{}
		if client == nil {
			c.Locals(viewerKey, viewer)
			return c.Next()
		}

		ctx := c.UserContext()
		token := BearerToken(c)
		if token == "" {
			token = c.Cookies(AccessTokenCookie)
		}
		if token != "" {
			user, err := client.Profile(ctx, token)
			if err != nil {
				logger.Debug("bearer token rejected", "error", err)
			} else {
				viewer = user
			}
		} else if cookie := c.Cookies(SessionCookie); cookie != "" {
			user, err := client.ValidateCookie(ctx, cookie)
			if err != nil {
				logger.Debug("session cookie rejected", "error", err)
			} else {
				viewer = user
			}
		}

		c.Locals(viewerKey, viewer)
		return c.Next()
	}
}

// RequireUser rejects anonymous requests
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if session.UserID(ViewerFrom(c)) == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Sign in required",
				Type:    "auth.required",
			}
		}
		return c.Next()
	}
}

// ViewerFrom returns the viewer resolved by Viewer, anonymous if none
func ViewerFrom(c *fiber.Ctx) session.Viewer {
	if v, ok := c.Locals(viewerKey).(session.Viewer); ok {
		return v
	}
	return session.Anonymous{}
}

// BearerToken extracts the token of an Authorization: Bearer header
func BearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
