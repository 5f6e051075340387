// integration_test.go
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

package integration_test

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/strudel-share/internal/config"
	"github.com/localnerve/strudel-share/internal/database"
	"github.com/localnerve/strudel-share/internal/datasource"
	"github.com/localnerve/strudel-share/internal/gateway"
	"github.com/localnerve/strudel-share/internal/handlers"
	"github.com/localnerve/strudel-share/internal/logging"
	"github.com/localnerve/strudel-share/internal/mutation"
	"github.com/localnerve/strudel-share/internal/playback"
	"github.com/localnerve/strudel-share/internal/services"
	"github.com/localnerve/strudel-share/internal/session"
	"github.com/localnerve/strudel-share/internal/views"
	"github.com/localnerve/strudel-share/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var users = helpers.StaticAuth{
	"tok-ann": {ID: "a0000000-0000-0000-0000-000000000001", Email: "ann@example.com", Username: "ann"},
	"tok-bob": {ID: "b0000000-0000-0000-0000-000000000002", Email: "bob@example.com", Username: "bob"},
}

func connect(t *testing.T, cfg *config.Config) *gateway.GormGateway {
	t.Helper()
	db, err := database.Connect(cfg)
	require.NoError(t, err, "Failed to connect to database")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db), "Failed to run migrations")
	return gateway.NewGormGateway(db)
}

func newApp(cfg *config.Config, src *datasource.Source, auth session.Client) *fiber.App {
	log := logging.Discard()
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.SetupRoutes(app, &handlers.Deps{
		Config: cfg,
		Source: src,
		Guard:  mutation.NewGuard(),
		Bridge: playback.New(cfg.PlaybackURL, nil),
		Auth:   auth,
		Logger: log,
	})
	app.Use(handlers.NotFound)
	return app
}

// TestWithPostgreSQL tests the service with a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc, err := helpers.StartPostgres(t)
	require.NoError(t, err)
	defer tc.Terminate(t)

	gw := connect(t, tc.Config)

	t.Run("BoardAndCascade", func(t *testing.T) {
		testBoardAndCascade(t, gw)
	})

	t.Run("FeedComposition", func(t *testing.T) {
		testFeedComposition(t, gw)
	})

	t.Run("HandlerFlow", func(t *testing.T) {
		testHandlerFlow(t, tc.Config, gw)
	})
}

// TestWithMariaDB tests the store with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("MARIADB_IMAGE", "mariadb:11"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "rootpass",
				"MARIADB_DATABASE":      "testdb",
				"MARIADB_USER":          "testuser",
				"MARIADB_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start MariaDB container")
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	require.NoError(t, err)
	port, err := mariadbContainer.MappedPort(ctx, "3306")
	require.NoError(t, err)

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	gw := connect(t, cfg)

	t.Run("BoardAndCascade", func(t *testing.T) {
		testBoardAndCascade(t, gw)
	})

	t.Run("FeedComposition", func(t *testing.T) {
		testFeedComposition(t, gw)
	})
}

// TestHealthCheck tests the health check against a live store and a missing authorizer
func TestHealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc, err := helpers.StartPostgres(t)
	require.NoError(t, err)
	defer tc.Terminate(t)

	cfg := *tc.Config
	cfg.AuthzURL = "http://localhost:9999" // Non-existent service
	gw := connect(t, &cfg)

	result := services.HealthCheck(context.Background(), &cfg, gw)

	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "unreachable", result.Authorizer)
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "live", result.Mode)
}

// TestWithAuthorizer runs sign up, upload and like against a live Authorizer
func TestWithAuthorizer(t *testing.T) {
	if testing.Short() || os.Getenv("AUTHZ_IMAGE") == "" {
		t.Skip("Skipping authorizer test, set AUTHZ_IMAGE to run it")
	}

	tc, err := helpers.CreateAllTestContainers(t)
	require.NoError(t, err)
	defer tc.Terminate(t)

	gw := connect(t, tc.Config)
	helpers.SeedDemoPatterns(t, gw)

	s := helpers.AcquireAccount(t, tc.Config.AuthzURL, tc.Config.AuthzClientID,
		"strudel-it@example.com", helpers.GeneratePassword(), "itester")
	assert.Equal(t, "itester", session.DisplayName(s.User))

	client, err := session.NewAuthorizerClient(tc.Config.AuthzClientID, tc.Config.AuthzURL, tc.Config.AuthzRedirectURL)
	require.NoError(t, err)

	app := newApp(tc.Config, datasource.New(gw, true, logging.Discard()), client)

	req := httptest.NewRequest("POST", "/api/patterns", jsonBody(t, map[string]any{
		"name": "Integration Groove",
		"code": `s("bd sd")`,
		"tags": "live, test",
	}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	helpers.AssertStatus(t, resp, 201)

	var created struct {
		Patch views.Patch `json:"patch"`
	}
	helpers.ParseJSON(t, resp, &created)
	require.NotNil(t, created.Patch.Pattern)
	assert.Equal(t, "itester", created.Patch.Pattern.Author)
	assert.Equal(t, []string{"live", "test"}, []string(created.Patch.Pattern.Tags))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
