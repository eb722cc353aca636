package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) writeConfig(content string) string {
	path := filepath.Join(s.T().TempDir(), "wordgrid.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(Defaults(), cfg)
	s.Equal(":8080", cfg.Addr())
}

func (s *ConfigSuite) TestEnvironmentOverrides() {
	s.T().Setenv("WORDGRID_PORT", "9090")
	s.T().Setenv("WORDGRID_STORAGE_TYPE", "sqlite")
	s.T().Setenv("WORDGRID_SQLITE_PATH", "/tmp/test.db")
	s.T().Setenv("WORDGRID_SESSION_TTL", "2h")
	s.T().Setenv("WORDGRID_DICTIONARY_SOURCE", "https://example.com/dictionary.json")

	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(9090, cfg.Port)
	s.Equal("sqlite", cfg.StorageType)
	s.Equal("/tmp/test.db", cfg.SQLitePath)
	s.Equal(2*time.Hour, cfg.SessionTTL)
	s.Equal("https://example.com/dictionary.json", cfg.DictionarySource)
}

func (s *ConfigSuite) TestConfigFile() {
	path := s.writeConfig("port: 7000\nstorage_type: redis\nredis_url: redis://cache:6379\nlog_level: debug\n")

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(7000, cfg.Port)
	s.Equal("redis", cfg.StorageType)
	s.Equal("redis://cache:6379", cfg.RedisURL)
	s.Equal(slog.LevelDebug, cfg.SlogLevel())
}

func (s *ConfigSuite) TestConfigFileFromEnvironment() {
	path := s.writeConfig("port: 7001\n")
	s.T().Setenv("WORDGRID_CONFIG", path)

	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal(7001, cfg.Port)
}

func (s *ConfigSuite) TestEnvironmentBeatsConfigFile() {
	path := s.writeConfig("port: 7000\n")
	s.T().Setenv("WORDGRID_PORT", "7002")

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(7002, cfg.Port)
}

func (s *ConfigSuite) TestMissingConfigFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestInvalidStorageType() {
	s.T().Setenv("WORDGRID_STORAGE_TYPE", "postgres")

	_, err := Load("")
	s.ErrorContains(err, "invalid storage type")
}

func (s *ConfigSuite) TestSlogLevel() {
	s.Equal(slog.LevelInfo, Config{LogLevel: "bogus"}.SlogLevel())
	s.Equal(slog.LevelWarn, Config{LogLevel: "WARN"}.SlogLevel())
	s.Equal(slog.LevelError, Config{LogLevel: "error"}.SlogLevel())
}
