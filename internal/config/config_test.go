package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bookkeeping-app-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("UPLOAD_DIR", "")

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "viron_bookkeeping_db", cfg.DB.Name)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(10<<20), cfg.Uploads.MaxFileBytes)
	assert.Equal(t, 30*time.Minute, cfg.Auth.ResetTokenTTL)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load(logger.NewNop())
	assert.Error(t, err)
}

func TestDotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_PORT=9001\nDB_NAME=\"from_file\" # comment\n"), 0o644))
	chdir(t, nested)

	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("DB_NAME", "")
	require.NoError(t, os.Unsetenv("DB_NAME"))

	cfg, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.HTTPPort)
	assert.Equal(t, "from_file", cfg.DB.Name)
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	cfg := DBConfig{Driver: DriverSQLite, SQLitePath: "data/app.db"}
	assert.Contains(t, cfg.GetDSN(), "data/app.db?")
	assert.Contains(t, cfg.GetDSN(), "foreign_keys(1)")

	cfg.DSN = "custom"
	assert.Equal(t, "custom", cfg.GetDSN())
}

func TestLocationFallsBackToLocal(t *testing.T) {
	assert.Equal(t, time.Local, Config{TimeZone: "Local"}.Location())
	assert.Equal(t, time.Local, Config{TimeZone: "Not/AZone"}.Location())
	assert.Equal(t, time.UTC, Config{TimeZone: "UTC"}.Location())
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvList("CORS_ALLOWED_ORIGINS", nil))
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
