// List command shows stored notes.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

var (
	listWhere string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List shows stored notes, optionally filtered and capped.

Example:
  rowan list
  rowan list --where "id > 10" --limit 5`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listWhere, "where", "", "raw where clause filter")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of notes (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	q := orm.FindAll[Note](db)
	if listWhere != "" {
		q = orm.FindMany[Note](db, listWhere)
	}
	if listLimit > 0 {
		q = q.Limit(listLimit)
	}

	notes, err := q.Run()
	if err != nil {
		return err
	}
	return printNotes(notes)
}
