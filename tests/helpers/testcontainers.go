// testcontainers.go
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

// This file is a helper for running tests with testcontainers.
// It is used by the testcontainers executable and by the integration tests.
// Expects environment variables to be loaded from .env files.
//

package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/strudel-share/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	dbNetworkAlias    = "db"
	authzNetworkAlias = "authorizer"
)

type TestContainers struct {
	Network             *testcontainers.DockerNetwork
	DBContainer         *postgres.PostgresContainer
	AuthorizerContainer testcontainers.Container

	// Host side settings for the service under test
	Config *config.Config
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.AuthorizerContainer != nil {
		if err := tc.AuthorizerContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Authorizer: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Postgres: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// StartPostgres starts a standalone store for the service
func StartPostgres(t *testing.T) (*TestContainers, error) {
	return start(t, false)
}

// CreateAllTestContainers starts the store and an Authorizer on a shared network
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	return start(t, true)
}

func start(t *testing.T, withAuthorizer bool) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	dbName := getEnv("DB_DATABASE", "strudel")
	dbUser := getEnv("DB_USER", "strudel")
	dbPassword := getEnv("DB_PASSWORD", "strudel")

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw

	// Create and start the Database container
	dbContainer, err := postgres.Run(ctx, getEnv("DB_IMAGE", "postgres:17-alpine"),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
		network.WithNetwork([]string{dbNetworkAlias}, nw),
	)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Postgres")
	}
	testContainers.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, "5432/tcp")
	logMessage(t, "DB_HOST=%s DB_PORT=%s", dbHost, dbPort.Port())

	testContainers.Config = &config.Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            "postgres",
		DBHost:            dbHost,
		DBPort:            dbPort.Port(),
		DBDatabase:        dbName,
		DBUser:            dbUser,
		DBPassword:        dbPassword,
		DBConnectionLimit: 5,
		PlaybackURL:       "https://strudel.cc/",
		LogLevel:          "debug",
		LogFormat:         "text",
	}

	if !withAuthorizer {
		return testContainers, nil
	}

	// The Authorizer keeps its users in its own database on the same server
	authzDatabase := getEnv("AUTHZ_DATABASE", "authorizer")
	if err := performPostgresDBInit(ctx, dbContainer, authzDatabase); err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to initialize databases")
	}

	// Create and start the Authorizer container
	tcpAuthzPort, err := nat.NewPort("tcp", getEnv("AUTHZ_PORT", "8080"))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create Authorizer port")
	}
	authzDbConnection := fmt.Sprintf("postgres://%s:%s@%s:5432/%s?sslmode=disable",
		dbUser, dbPassword, dbNetworkAlias, authzDatabase)
	authzLogLevel := "info"
	if os.Getenv("DEBUG_CONTAINER") == "true" {
		authzLogLevel = "debug"
	}
	authzClientID := getEnv("AUTHZ_CLIENT_ID", "strudel-share-test")

	authorizerContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        getEnv("AUTHZ_IMAGE", "lakhansamani/authorizer:latest"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":                        "production",
				"CLIENT_ID":                  authzClientID,
				"PORT":                       tcpAuthzPort.Port(),
				"DATABASE_TYPE":              "postgres",
				"DATABASE_NAME":              authzDatabase,
				"DATABASE_URL":               authzDbConnection,
				"ADMIN_SECRET":               getEnv("AUTHZ_ADMIN_SECRET", "admin-secret"),
				"ROLES":                      "admin,user",
				"DEFAULT_ROLES":              "user",
				"DISABLE_EMAIL_VERIFICATION": "true",
				"DISABLE_PLAYGROUND":         "true",
				"LOG_LEVEL":                  authzLogLevel,
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {authzNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Authorizer")
	}
	testContainers.AuthorizerContainer = authorizerContainer

	// Log the localhost and mapped ports for Authorizer for test processes
	authzHost, _ := authorizerContainer.Host(ctx)
	authzPort, _ := authorizerContainer.MappedPort(ctx, tcpAuthzPort)
	authzURL := fmt.Sprintf("http://%s:%s", authzHost, authzPort.Port())
	logMessage(t, "AUTHZ_URL=%s", authzURL)

	testContainers.Config.AuthzURL = authzURL
	testContainers.Config.AuthzClientID = authzClientID
	testContainers.Config.AuthzRedirectURL = fmt.Sprintf("http://localhost:%s/", testContainers.Config.Port)

	logMessage(t, "strudel-share testcontainers started successfully")
	return testContainers, nil
}

func performPostgresDBInit(ctx context.Context, ctr *postgres.PostgresContainer, authzDatabase string) error {
	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return err
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres for setup: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var exists bool
	if err := db.Raw("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)", authzDatabase).Scan(&exists).Error; err != nil {
		return err
	}
	if exists {
		return nil
	}
	// CREATE DATABASE does not take bind parameters
	if err := db.Exec(fmt.Sprintf("CREATE DATABASE %q", authzDatabase)).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", authzDatabase, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
