package containers

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "commish"
	dbUser     = "commish"
	dbPassword = "secret"

	startupTimeout = 30 * time.Second
)

// SchemaPath is the schema init script as seen from a package directory one
// level below the module root.
var SchemaPath = filepath.Join("..", "schema", "schema.sql")

// DBContainer is a throwaway Postgres server with the commish schema loaded.
type DBContainer struct {
	container *postgres.PostgresContainer
}

// NewDBContainer starts Postgres and runs the given init scripts in order.
func NewDBContainer(initScripts ...string) *DBContainer {
	ctx := context.Background()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(initScripts...),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		log.Fatal().Err(err).Strs("init_scripts", initScripts).Msg("error starting postgres container")
	}

	return &DBContainer{
		container: container,
	}
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("error terminating postgres container")
	}
}

// ConnectionString returns a pgx connection string for the container. TLS is
// not configured on the server.
func (c *DBContainer) ConnectionString() string {
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		log.Fatal().Err(err).Msg("error getting postgres connection string")
	}
	return connStr
}
