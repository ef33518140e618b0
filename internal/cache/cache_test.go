package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisReadsAsMiss(t *testing.T) {
	// Port 1 is never a redis server; commands fail fast with connection refused.
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, c.SetJSON(ctx, "session:x", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	found, err := c.GetJSON(ctx, "session:x", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Error(t, c.Ping(ctx))
}

func TestSetStrictReportsFailures(t *testing.T) {
	var nilClient *Client
	assert.Error(t, nilClient.SetStrict(context.Background(), "k", []byte("v"), time.Minute))

	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := c.SetStrict(ctx, "session:x", []byte("v"), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session:x")
}
