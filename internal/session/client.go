// client.go
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

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	authorizer "github.com/localnerve/authorizer-go"
)

// ErrNoSession is returned when the identity provider reports no valid session
var ErrNoSession = errors.New("session is not valid")

// Session is the result of a successful sign up or sign in.
// AccessToken is empty when the provider still requires email verification.
type Session struct {
	User        Authenticated
	AccessToken string
}

// Client is the hosted identity provider
type Client interface {
	SignUp(ctx context.Context, email, password, username string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (Authenticated, error)
	ValidateCookie(ctx context.Context, cookie string) (Authenticated, error)
	OAuthURL(provider string) string
}

// AuthorizerClient implements Client with an Authorizer instance
type AuthorizerClient struct {
	client      *authorizer.AuthorizerClient
	authzURL    string
	redirectURL string
	roles       []string
}

// NewAuthorizerClient creates a client for the Authorizer at authzURL
func NewAuthorizerClient(clientID, authzURL, redirectURL string) (*AuthorizerClient, error) {
	client, err := authorizer.NewAuthorizerClient(clientID, authzURL, redirectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	return &AuthorizerClient{
		client:      client,
		authzURL:    strings.TrimSuffix(authzURL, "/"),
		redirectURL: redirectURL,
		roles:       []string{"user"},
	}, nil
}

// profile is the subset of the Authorizer user we read
type profile struct {
	ID                string         `json:"id"`
	Email             string         `json:"email"`
	Nickname          string         `json:"nickname"`
	PreferredUsername string         `json:"preferred_username"`
	AppData           map[string]any `json:"app_data"`
}

func toAuthenticated(user any) (Authenticated, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return Authenticated{}, err
	}
	var p profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Authenticated{}, err
	}
	if p.ID == "" {
		return Authenticated{}, ErrNoSession
	}

	username := p.Nickname
	if username == "" && p.PreferredUsername != p.Email {
		username = p.PreferredUsername
	}
	a := Authenticated{ID: p.ID, Email: p.Email, Username: username}
	if len(p.AppData) > 0 {
		a.Metadata = p.AppData
	}
	return a, nil
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func (c *AuthorizerClient) rolePtrs() []*string {
	ptrs := make([]*string, len(c.roles))
	for i := range c.roles {
		ptrs[i] = &c.roles[i]
	}
	return ptrs
}

func (c *AuthorizerClient) session(res *authorizer.AuthTokenResponse) (Session, error) {
	if res == nil {
		return Session{}, ErrNoSession
	}
	var s Session
	if res.AccessToken != nil {
		s.AccessToken = *res.AccessToken
	}
	if res.User != nil {
		user, err := toAuthenticated(res.User)
		if err != nil {
			return Session{}, err
		}
		s.User = user
	}
	return s, nil
}

// SignUp registers a new account with the username as nickname
func (c *AuthorizerClient) SignUp(ctx context.Context, email, password, username string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	res, err := c.client.SignUp(&authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		NickName:        &username,
		Roles:           c.rolePtrs(),
	})
	if err != nil {
		return Session{}, err
	}
	return c.session(res)
}

// SignIn logs in with email and password
func (c *AuthorizerClient) SignIn(ctx context.Context, email, password string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	res, err := c.client.Login(&authorizer.LoginInput{
		Email:    &email,
		Password: password,
	})
	if err != nil {
		return Session{}, err
	}
	return c.session(res)
}

// SignOut ends the session for token
func (c *AuthorizerClient) SignOut(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.client.Logout(bearer(token))
	return err
}

// Profile returns the user owning token
func (c *AuthorizerClient) Profile(ctx context.Context, token string) (Authenticated, error) {
	if err := ctx.Err(); err != nil {
		return Authenticated{}, err
	}
	user, err := c.client.GetProfile(bearer(token))
	if err != nil {
		return Authenticated{}, err
	}
	return toAuthenticated(user)
}

// ValidateCookie checks an Authorizer cookie_session value
func (c *AuthorizerClient) ValidateCookie(ctx context.Context, cookie string) (Authenticated, error) {
	if err := ctx.Err(); err != nil {
		return Authenticated{}, err
	}
	res, err := c.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  c.rolePtrs(),
	})
	if err != nil {
		return Authenticated{}, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid {
		return Authenticated{}, ErrNoSession
	}
	return toAuthenticated(res.User)
}

// OAuthURL is where a browser starts the OAuth flow for provider
func (c *AuthorizerClient) OAuthURL(provider string) string {
	return OAuthURL(c.authzURL, provider, c.redirectURL)
}

// OAuthURL builds the Authorizer OAuth login url
func OAuthURL(authzURL, provider, redirectURL string) string {
	u := strings.TrimSuffix(authzURL, "/") + "/oauth_login/" + url.PathEscape(provider)
	if redirectURL != "" {
		u += "?" + url.Values{"redirectURL": {redirectURL}}.Encode()
	}
	return u
}
