package common

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const redisImage = "redis:7-alpine"

// RedisContainer is a throwaway Redis for cache integration tests.
type RedisContainer struct {
	container testcontainers.Container
	url       string
}

// URL returns a redis:// URL for database 0.
func (r *RedisContainer) URL() string {
	return r.url
}

// StartRedis starts a Redis container for t and terminates it on cleanup.
// The test is skipped in -short mode or when Docker is unavailable.
func StartRedis(t *testing.T) *RedisContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("container tests skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	ctr, err := testcontainers.Run(ctx, redisImage,
		testcontainers.WithExposedPorts("6379/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}

	t.Cleanup(func() {
		// Fresh context: the start context has already ended.
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cleanupCancel()
		ctr.Terminate(cleanupCtx)
	})

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("get redis host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("get redis port: %v", err)
	}

	return &RedisContainer{
		container: ctr,
		url:       fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
	}
}
