package integration_test

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/metinatakli/showtime-booking/internal/repository"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const (
	startupTimeout = time.Minute
	redisPort      = nat.Port("6379/tcp")
)

type PostgresContainer struct {
	Container        *postgres.PostgresContainer
	ConnectionString string
}

type RedisContainer struct {
	Container *tcredis.RedisContainer
	// Address is host:port, the form the app's redis config expects.
	Address string
}

// getDbContainer starts PostgreSQL and applies the embedded migrations, so
// the schema the tests see is the one the service ships with.
func getDbContainer(ctx context.Context) (*PostgresContainer, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	container, err := postgres.Run(ctx,
		dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_INITDB_ARGS": "--data-checksums",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start DB container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get DB connection string: %w", err)
	}

	err = repository.MigrateUp(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresContainer{
		Container:        container,
		ConnectionString: connStr,
	}, nil
}

func getCacheContainer(ctx context.Context) (*RedisContainer, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	container, err := tcredis.Run(ctx, cacheImageName, tcredis.WithLogLevel(tcredis.LogLevelNotice))
	if err != nil {
		return nil, fmt.Errorf("failed to start cache container: %w", err)
	}

	addr, err := container.PortEndpoint(ctx, redisPort, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache address: %w", err)
	}

	return &RedisContainer{
		Container: container,
		Address:   addr,
	}, nil
}
