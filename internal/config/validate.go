package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if err := c.Storage.validate(c.Database); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if strings.TrimSpace(c.Dataset.DialoguesPath) == "" {
		return fmt.Errorf("dataset.dialogues_path is required")
	}
	if strings.TrimSpace(c.Dataset.SchemaPath) == "" {
		return fmt.Errorf("dataset.schema_path is required")
	}

	if c.RateLimit.WritesPerMinute < 0 {
		return fmt.Errorf("rate_limit.writes_per_minute must be >= 0 (got %d)", c.RateLimit.WritesPerMinute)
	}
	if c.RateLimit.WritesPerMinute > 0 && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 when rate limiting is enabled")
	}

	return nil
}

func (s *StorageConfig) validate(db DatabaseConfig) error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))

	switch s.Driver {
	case DriverFile:
		if strings.TrimSpace(s.DataDir) == "" {
			return fmt.Errorf("data_dir is required for the %s driver", DriverFile)
		}
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(db.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the %s driver", DriverPostgres)
		}
		if db.MaxConns <= 0 {
			return fmt.Errorf("database.max_conns must be > 0 (got %d)", db.MaxConns)
		}
		if db.MinConns < 0 || db.MinConns > db.MaxConns {
			return fmt.Errorf("database.min_conns must be in 0..max_conns (got %d)", db.MinConns)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s, %s or %s)", s.Driver, DriverFile, DriverMemory, DriverPostgres)
	}
	return nil
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
