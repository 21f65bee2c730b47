package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeErrorMessage(t *testing.T) {
	fallback := "操作失败"
	testErr := errors.New("internal database error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不暴露错误详情
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "internal database error", SafeErrorMessage(testErr, fallback))
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "budget", cfg.Database.DBName)
	assert.False(t, cfg.Email.Enabled)
	assert.Equal(t, float64(100), cfg.Alert.ThresholdPercent)
	assert.Equal(t, time.Minute, cfg.Server.WriteWindow())
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_ExternalFileAndEnv(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: \"9000\"\ndatabase:\n  driver: SQLite\n  path: /tmp/test.db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BUDGET_SERVER_MODE", "release")
	t.Setenv("PGHOST", "db.internal")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// 端口自动补全冒号，驱动名统一小写
	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfig_PrefixedEnvWinsOverPGAlias(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	t.Setenv("PGDATABASE", "from_pg")
	t.Setenv("BUDGET_DATABASE_DBNAME", "from_budget")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from_budget", cfg.Database.DBName)
}
