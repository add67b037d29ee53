// Update command rewrites an existing note.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

var (
	updateTitle string
	updateBody  string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a note's title or body",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateBody, "body", "", "new body")
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	if cmd.Flags().Changed("title") {
		n.Title = updateTitle
	}
	if cmd.Flags().Changed("body") {
		if updateBody == "" {
			n.Body = nil
		} else {
			n.Body = &updateBody
		}
	}

	if _, err := orm.Update(db, *n); err != nil {
		return err
	}
	return printNote(n)
}
