package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "env: production\n"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, defaultUploadsDir, cfg.UploadsDir)
	assert.Equal(t, defaultDBHost, cfg.Database.Host)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	_, err := Load(writeConfig(t, "port: 70000\n"))
	assert.Error(t, err)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestDSNAssembly(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: 3307,
		User: "cms", Password: "pw", Name: "quill",
		Charset: "utf8mb4", ParseTime: true, Loc: "Local",
	}
	dsn := db.DSNValue()
	assert.Contains(t, dsn, "cms:pw@tcp(db.internal:3307)/quill?")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestDSNVerbatimWins(t *testing.T) {
	db := DatabaseConfig{DSN: "root:x@tcp(localhost:3306)/other"}
	assert.Equal(t, "root:x@tcp(localhost:3306)/other", db.DSNValue())
}

func TestRedisURL(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380, DB: 2}
	assert.Equal(t, "redis://cache:6380/2", r.URLValue())

	r = RedisConfig{URL: "redis://explicit:6379/0"}
	assert.Equal(t, "redis://explicit:6379/0", r.URLValue())

	r = RedisConfig{URL: "bare-host:6379"}
	assert.Equal(t, "redis://bare-host:6379", r.URLValue())
}
