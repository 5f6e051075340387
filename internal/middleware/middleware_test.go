// middleware_test.go
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
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/strudel-share/internal/logging"
	"github.com/localnerve/strudel-share/internal/session"
)

type tokenClient struct{}

func (tokenClient) SignUp(context.Context, string, string, string) (session.Session, error) {
	return session.Session{}, errors.New("unused")
}

func (tokenClient) SignIn(context.Context, string, string) (session.Session, error) {
	return session.Session{}, errors.New("unused")
}

func (tokenClient) SignOut(context.Context, string) error { return nil }

func (tokenClient) Profile(_ context.Context, token string) (session.Authenticated, error) {
	if token == "good" {
		return session.Authenticated{ID: "bearer-user"}, nil
	}
	return session.Authenticated{}, session.ErrNoSession
}

func (tokenClient) ValidateCookie(_ context.Context, cookie string) (session.Authenticated, error) {
	if cookie == "good" {
		return session.Authenticated{ID: "cookie-user"}, nil
	}
	return session.Authenticated{}, session.ErrNoSession
}

func (tokenClient) OAuthURL(string) string { return "" }

func setupApp(client session.Client) *fiber.App {
	app := fiber.New()
	app.Use(Viewer(client, logging.Discard()))
	app.Get("/who", func(c *fiber.Ctx) error {
		return c.SendString(session.UserID(ViewerFrom(c)))
	})
	app.Get("/private", RequireUser(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestViewerResolution(t *testing.T) {
	app := setupApp(tokenClient{})

	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"anonymous", "", "", ""},
		{"bearer", "Bearer good", "", "bearer-user"},
		{"bad bearer", "Bearer bad", "good", ""},
		{"cookie", "", "good", "cookie-user"},
		{"bad cookie", "", "bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/who", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", SessionCookie+"="+tt.cookie)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			body, _ := io.ReadAll(resp.Body)
			if got := string(body); got != tt.want {
				t.Errorf("got viewer %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireUser(t *testing.T) {
	app := setupApp(tokenClient{})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError && resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected rejection, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}

func TestDemoMode(t *testing.T) {
	for _, canMutate := range []bool{true, false} {
		app := fiber.New()
		app.Use(DemoMode(func() bool { return canMutate }))
		app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		got := resp.Header.Get(DemoHeader)
		if canMutate && got != "" {
			t.Errorf("unexpected demo header %q", got)
		}
		if !canMutate && got != "true" {
			t.Errorf("expected demo header, got %q", got)
		}
	}
}

func TestNilClientIsAnonymous(t *testing.T) {
	app := setupApp(nil)
	req := httptest.NewRequest("GET", "/who", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) != 0 {
		t.Errorf("expected anonymous, got %q", string(body))
	}
}
