// Package rowan is the public entry point: it selects a database driver from
// configuration and returns an ORM handle.
package rowan

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rowan/internal/mysql"
	"github.com/mesh-intelligence/rowan/internal/sqlite"
	"github.com/mesh-intelligence/rowan/pkg/orm"
)

// Version is the library version, also reported by the CLI.
const Version = "0.1.0"

// Supported driver names.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config selects a driver and its data source. For sqlite the DSN is a file
// path or ":memory:"; for mysql it is a go-sql-driver connection string, see
// mysql.DSN.
type Config struct {
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver"`
	DSN    string `json:"dsn" yaml:"dsn" mapstructure:"dsn"`
}

// Config validation errors.
var (
	ErrDriverEmpty   = errors.New("driver must not be empty")
	ErrDriverUnknown = errors.New("unknown driver")
	ErrDSNEmpty      = errors.New("dsn must not be empty")
)

var knownDrivers = map[string]bool{
	DriverSQLite: true,
	DriverMySQL:  true,
}

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Driver == "" {
		return ErrDriverEmpty
	}
	if !knownDrivers[c.Driver] {
		return fmt.Errorf("%w: %q", ErrDriverUnknown, c.Driver)
	}
	if c.DSN == "" {
		return ErrDSNEmpty
	}
	return nil
}

// Open validates the configuration and connects through the named driver.
func Open(cfg Config) (*orm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case DriverSQLite:
		return sqlite.Open(cfg.DSN)
	case DriverMySQL:
		return mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnknown, cfg.Driver)
	}
}
