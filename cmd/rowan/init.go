// Init command creates the notes schema for the configured driver.
package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rowan/pkg/rowan"
)

//go:embed schema_sqlite.sql
var schemaSQLite string

//go:embed schema_mysql.sql
var schemaMySQL string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the note store",
	Long: `Init creates the notes table for the configured driver. The schema
script is written next to the database so it can be inspected or re-run,
then executed through the connection.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	schema := schemaSQLite
	if cfg.Driver == rowan.DriverMySQL {
		schema = schemaMySQL
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	script := filepath.Join(dataDir, "schema.sql")
	if err := os.WriteFile(script, []byte(schema), 0o644); err != nil {
		return fmt.Errorf("write schema script: %w", err)
	}

	db, err := rowan.Open(cfg)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	defer db.Close()

	if err := db.Init(script); err != nil {
		return fmt.Errorf("run schema script: %w", err)
	}

	fmt.Println("Note store initialized")
	return nil
}
