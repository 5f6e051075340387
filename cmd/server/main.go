// main.go
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

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/strudel-share/internal/config"
	"github.com/localnerve/strudel-share/internal/database"
	"github.com/localnerve/strudel-share/internal/datasource"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/handlers"
	"github.com/localnerve/strudel-share/internal/logging"
	"github.com/localnerve/strudel-share/internal/mutation"
	"github.com/localnerve/strudel-share/internal/playback"
	"github.com/localnerve/strudel-share/internal/session"

	_ "github.com/localnerve/strudel-share/docs/api" // Swagger docs
)

// @title Strudel Share API
// @version 1.0.0
// @description Share, play, like and discuss Strudel live-coding patterns
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/strudel-share
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	// The store is optional: without it the service serves the demo dataset
	var gw gateway.Gateway
	if cfg.StoreConfigured() {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		gw = gateway.NewGormGateway(db)
	}

	var auth session.Client
	if cfg.AuthConfigured() {
		auth, err = session.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, cfg.AuthzRedirectURL)
		if err != nil {
			log.Error("failed to create authorizer client", "error", err)
			os.Exit(1)
		}
	}

	if cfg.DemoMode() {
		log.Warn("running in demo mode",
			"store", cfg.StoreConfigured(),
			"authorizer", cfg.AuthConfigured())
	}

	deps := &handlers.Deps{
		Config: cfg,
		Source: datasource.New(gw, cfg.AuthConfigured(), log),
		Guard:  mutation.NewGuard(),
		Bridge: playback.New(cfg.PlaybackURL, nil),
		Auth:   auth,
		Logger: log,
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		AppName:      "strudel-share",
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("strudel_share")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.SetupRoutes(app, deps)

	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	log.Info("starting server", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
