package kv

import (
	"fmt"

	"go.uber.org/zap"

	"user-profiles/internal/config"
)

// FromConfig builds the configured substrate backend.
func FromConfig(cfg *config.Config, log *zap.Logger) (Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		return NewFile(cfg.Storage.FileDir, log)
	case "sqlite":
		return NewSQLite(cfg.Storage.SQLitePath, log)
	case "redis":
		return NewRedis(RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
