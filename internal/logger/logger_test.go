package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{
		"username", "alice",
		"password", "secret",
		"session_token", "abc.def.ghi",
		"dangling",
	})

	assert.Equal(t, []interface{}{
		"username", "alice",
		"password", "[REDACTED]",
		"session_token", "[REDACTED]",
		"dangling",
	}, got)
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production", "test"} {
		t.Run(mode, func(t *testing.T) {
			l, err := New(mode)
			require.NoError(t, err)
			require.NotNil(t, l)
			l.With("component", "test").Info("hello", "password", "x")
			l.Debug("details", "token", "y")
			assert.NotNil(t, l.StdLog())
		})
	}
}
