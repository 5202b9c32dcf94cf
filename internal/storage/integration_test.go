//go:build integration

package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestIntegration_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	s, err := ConnectPostgres(context.Background(), url)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestIntegration_Redis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)

	s := NewRedis(client, "hiretrack:test:storage")
	defer func() {
		client.Del(context.Background(), "hiretrack:test:storage")
		s.Close()
	}()

	exerciseStore(t, s)
}
