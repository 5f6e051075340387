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

package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/strudel-share/internal/middleware"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/types"
	"github.com/localnerve/strudel-share/internal/utils"
)

var validate = validator.New()

// AuthHandler handles session routes against the identity provider
type AuthHandler struct {
	*Deps
}

// SignUpRequest is the sign up body. Username defaults to the email local part.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username"`
}

// SignInRequest is the sign in body
type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse describes the session after an auth call
type SessionResponse struct {
	Authenticated bool                   `json:"authenticated"`
	User          *session.Authenticated `json:"user,omitempty"`
	DisplayName   string                 `json:"display_name"`
	AccessToken   string                 `json:"access_token,omitempty"`
	Message       string                 `json:"message,omitempty"`
}

func (h *AuthHandler) available() error {
	if h.Auth == nil {
		return types.NewError(fiber.StatusForbidden, "Sign in is not available in demo mode", "demo")
	}
	return nil
}

func sessionResponse(p *session.Provider) SessionResponse {
	viewer := p.CurrentUser()
	resp := SessionResponse{DisplayName: session.DisplayName(viewer)}
	if user, ok := viewer.(session.Authenticated); ok {
		resp.Authenticated = true
		resp.User = &user
		resp.AccessToken = p.Token()
	}
	return resp
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SignUp handles POST /api/auth/signup
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Account"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	if err := h.available(); err != nil {
		return err
	}
	var body SignUpRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	if err := validate.Struct(&body); err != nil {
		return types.NewError(fiber.StatusBadRequest, "Email and password are required", "validation")
	}

	p := session.NewProvider(h.Auth)
	if err := p.SignUp(c.UserContext(), body.Email, body.Password, body.Username); err != nil {
		return types.NewError(fiber.StatusUnauthorized, err.Error(), "auth.signup")
	}

	resp := sessionResponse(p)
	if !resp.Authenticated {
		resp.Message = "Check your email to confirm your account"
	} else {
		h.setCookie(c, resp.AccessToken)
	}
	return utils.SuccessResponse(c, resp, fiber.StatusCreated)
}

// SignIn handles POST /api/auth/signin
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	if err := h.available(); err != nil {
		return err
	}
	var body SignInRequest
	if err := parseBody(c, &body); err != nil {
		return err
	}
	if err := validate.Struct(&body); err != nil {
		return types.NewError(fiber.StatusBadRequest, "Email and password are required", "validation")
	}

	p := session.NewProvider(h.Auth)
	if err := p.SignIn(c.UserContext(), body.Email, body.Password); err != nil {
		return types.NewError(fiber.StatusUnauthorized, err.Error(), "auth.signin")
	}

	resp := sessionResponse(p)
	h.setCookie(c, resp.AccessToken)
	return utils.SuccessResponse(c, resp, fiber.StatusOK)
}

// SignOut handles POST /api/auth/signout
// @Summary Sign out
// @Tags Auth
// @Success 204
// @Security CookieAuth
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.available(); err != nil {
		return err
	}
	token := middleware.BearerToken(c)
	if token == "" {
		token = c.Cookies(middleware.AccessTokenCookie)
	}
	if token != "" {
		if err := h.Auth.SignOut(c.UserContext(), token); err != nil {
			h.Logger.Warn("sign out failed", "error", err)
		}
	}
	c.ClearCookie(middleware.AccessTokenCookie)
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /api/auth/me
// @Summary Current viewer
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	viewer := middleware.ViewerFrom(c)
	resp := SessionResponse{DisplayName: session.DisplayName(viewer)}
	if user, ok := viewer.(session.Authenticated); ok {
		resp.Authenticated = true
		resp.User = &user
	}
	return utils.SuccessResponse(c, resp, fiber.StatusOK)
}

// OAuth handles GET /api/auth/oauth/:provider
// @Summary Start OAuth sign in
// @Tags Auth
// @Param provider path string true "OAuth provider, e.g. google"
// @Success 302
// @Router /auth/oauth/{provider} [get]
func (h *AuthHandler) OAuth(c *fiber.Ctx) error {
	if err := h.available(); err != nil {
		return err
	}
	p := session.NewProvider(h.Auth)
	return c.Redirect(p.SignInWithOAuth(param(c, "provider")), fiber.StatusFound)
}
