// Sql command runs raw statements against the configured database.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <statement>",
	Short: "Run a raw SQL statement",
	Long: `Sql runs one statement against the configured database. Selects
print their rows; anything else reports the number of affected rows.

Example:
  rowan sql "select count(*) from notes"
  rowan sql "delete from notes where id > 100"`,
	Args: cobra.ExactArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stmt := strings.TrimSpace(args[0])
	if strings.HasPrefix(strings.ToLower(stmt), "select") {
		rows, err := db.Query(stmt)
		if err != nil {
			return err
		}
		return printRows(rows)
	}

	res, err := db.Exec(stmt)
	if err != nil {
		return err
	}
	fmt.Printf("%d row(s) affected\n", res.Affected)
	return nil
}

// printRows renders raw rows as tab-separated text, NULL for absent values,
// or as a JSON array of nullable string arrays with --json.
func printRows(rows []orm.Row) error {
	if flagJSON {
		out := make([][]*string, len(rows))
		for i, row := range rows {
			cols := make([]*string, row.Len())
			for j := range cols {
				cols[j], _ = row.Value(j)
			}
			out[i] = cols
		}
		text, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal rows: %w", err)
		}
		fmt.Println(string(text))
		return nil
	}

	for _, row := range rows {
		cols := make([]string, row.Len())
		for j := range cols {
			if s, ok := row.String(j); ok {
				cols[j] = s
			} else {
				cols[j] = "NULL"
			}
		}
		fmt.Println(strings.Join(cols, "\t"))
	}
	fmt.Printf("%d row(s)\n", len(rows))
	return nil
}
