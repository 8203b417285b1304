package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "chessdb.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
mode: production
server:
  port: 9090
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: chess
  password: secret
  dbname: chessdb
redis:
  addr: "localhost:6379"
  ttl: "10m"
cors:
  allowed_origins: ["https://example.org"]
`), 0o600))

	cfg, err := Load(file, dir)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Mode)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"https://example.org"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "chess:secret@tcp(db.internal:3306)/chessdb?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.DSN())
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHESSDB_DATABASE_HOST", "pg.internal")
	t.Setenv("CHESSDB_DATABASE_PASSWORD", "from-env")

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "pg.internal", cfg.Database.Host)
	assert.Equal(t, "host=pg.internal port=5432 user= password=from-env dbname= sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql"} {
		c := DatabaseConfig{Driver: driver}
		d, err := c.Dialector()
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := (&DatabaseConfig{Driver: "oracle"}).Dialector()
	assert.Error(t, err)
}
