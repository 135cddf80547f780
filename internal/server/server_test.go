package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeServerConfig writes a config file over a fresh data dir and exports
// secret as the only JWT secret source.
func writeServerConfig(t *testing.T, secret string) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("CHECKMYGRADE_JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("CHECKMYGRADE_JWT_SECRET"))
	t.Setenv("JWT_SECRET", secret)
	if secret == "" {
		require.NoError(t, os.Unsetenv("JWT_SECRET"))
	}

	content := "storage:\n  data_dir: " + filepath.Join(dir, "data") + "\nlogging:\n  level: error\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewServerRequiresJWTSecret(t *testing.T) {
	_, err := NewServer(writeServerConfig(t, ""))
	assert.ErrorContains(t, err, "JWT secret is required")
}

func TestNewServerAndShutdown(t *testing.T) {
	srv, err := NewServer(writeServerConfig(t, "s3cret"))
	require.NoError(t, err)
	require.NotNil(t, srv.router)

	assert.NoError(t, srv.Shutdown(context.Background()))
}
