package cache

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pageza/alchemorsel-import/backend/internal/parser"
)

func TestHash(t *testing.T) {
	assert.Len(t, Hash(""), 64)
	assert.Equal(t, Hash("Suppe"), Hash("Suppe"))
	assert.NotEqual(t, Hash("Suppe"), Hash("Suppe "))
	assert.Equal(t, keyPrefix+Hash("Suppe"), Key("Suppe"))
}

func TestParseCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	c := NewParseCache(client, time.Minute)

	_, found, err := c.Get(context.Background(), "Suppe")
	assert.Error(t, err)
	assert.False(t, found)

	recipe := parser.ParseRecipe("Suppe")
	assert.Error(t, c.Set(context.Background(), "Suppe", &recipe))
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestParseCacheRoundTrip(t *testing.T) {
	client := setupRedis(t)
	c := NewParseCache(client, time.Minute)
	ctx := context.Background()
	text := "Suppe\nZutaten für 2 Portionen:\nWasser (1 l)\nAnleitung für 2 Portionen:\n1. Kochen"

	_, found, err := c.Get(ctx, text)
	require.NoError(t, err)
	assert.False(t, found)

	recipe := parser.ParseRecipe(text)
	require.NoError(t, c.Set(ctx, text, &recipe))

	cached, found, err := c.Get(ctx, text)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, recipe, *cached)

	ttl, err := client.TTL(ctx, Key(text)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
