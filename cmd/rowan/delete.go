// Delete command removes a note by id.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if _, err := orm.Delete(db, *n); err != nil {
		return err
	}
	fmt.Printf("Deleted note %d\n", id)
	return nil
}
