// Shared helpers for rowan CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mesh-intelligence/rowan/pkg/orm"
	"github.com/mesh-intelligence/rowan/pkg/rowan"
)

// buildConfig assembles the driver configuration from config.yaml values and
// the resolved data directory. For sqlite an empty dsn falls back to
// <data-dir>/rowan.db; mysql always needs an explicit connection string.
func buildConfig() (rowan.Config, error) {
	cfg := rowan.Config{
		Driver: configDriver,
		DSN:    configDSN,
	}
	if cfg.Driver == "" {
		cfg.Driver = defaultDriver
	}

	if cfg.Driver == rowan.DriverSQLite && cfg.DSN == "" {
		dataDir, err := resolveDataDir()
		if err != nil {
			return rowan.Config{}, fmt.Errorf("resolve data dir: %w", err)
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return rowan.Config{}, fmt.Errorf("create data dir: %w", err)
		}
		cfg.DSN = filepath.Join(dataDir, "rowan.db")
	}

	return cfg, nil
}

// openDB connects using the assembled configuration. The caller must close
// the handle.
func openDB() (*orm.DB, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	db, err := rowan.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

// parseID converts a positional id argument.
func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

// printNote writes one note as text or JSON depending on --json.
func printNote(n *Note) error {
	if flagJSON {
		out, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal note: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	body := ""
	if n.Body != nil {
		body = *n.Body
	}
	fmt.Printf("#%d  %s  (%s)\n", n.ID, n.Title, n.Created)
	if body != "" {
		fmt.Println(body)
	}
	return nil
}

// printNotes writes a list of notes as text or JSON.
func printNotes(notes []Note) error {
	if flagJSON {
		out, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal notes: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	for i := range notes {
		if err := printNote(&notes[i]); err != nil {
			return err
		}
	}
	fmt.Printf("%d note(s)\n", len(notes))
	return nil
}
