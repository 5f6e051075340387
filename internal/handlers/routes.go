// routes.go
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
	"github.com/localnerve/strudel-share/internal/middleware"
)

// SetupRoutes mounts the API under /api
func SetupRoutes(app *fiber.App, d *Deps) {
	api := app.Group("/api")
	api.Use(middleware.DemoMode(d.Source.CanMutate))
	api.Use(middleware.Viewer(d.Auth, d.Logger))

	patterns := &PatternHandler{Deps: d}
	feed := &FeedHandler{Deps: d}
	auth := &AuthHandler{Deps: d}
	health := &HealthHandler{Deps: d}

	api.Get("/health", health.Health)

	api.Get("/patterns", patterns.ListPatterns)
	api.Get("/patterns/categories", patterns.ListCategories)
	api.Get("/patterns/:id", patterns.GetPattern)
	api.Get("/patterns/:id/play", patterns.PlayPattern)
	api.Post("/patterns", patterns.UploadPattern)
	api.Delete("/patterns/:id", patterns.DeletePattern)
	api.Post("/patterns/:id/like", patterns.LikePattern)
	api.Delete("/patterns/:id/like", patterns.UnlikePattern)
	api.Post("/patterns/:id/comments", patterns.AddComment)
	api.Delete("/patterns/:id/comments/:commentId", patterns.DeleteComment)

	api.Get("/feed", feed.GetFeed)
	api.Post("/feed/posts", feed.CreatePost)
	api.Delete("/feed/posts/:id", feed.DeletePost)
	api.Post("/feed/posts/:id/comments", feed.AddComment)
	api.Delete("/feed/posts/:id/comments/:commentId", feed.DeleteComment)

	api.Get("/profile", middleware.RequireUser(), patterns.GetProfile)

	api.Post("/auth/signup", auth.SignUp)
	api.Post("/auth/signin", auth.SignIn)
	api.Post("/auth/signout", auth.SignOut)
	api.Get("/auth/me", auth.Me)
	api.Get("/auth/oauth/:provider", auth.OAuth)
}
