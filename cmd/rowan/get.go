// Get command fetches one note by id.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a note by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := orm.FindOne[Note](db, id)
	if err != nil {
		return err
	}
	if n == nil {
		return fmt.Errorf("note %d not found", id)
	}
	return printNote(n)
}
