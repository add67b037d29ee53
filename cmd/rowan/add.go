// Add command creates a new note.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

var (
	addTitle string
	addBody  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new note",
	Long: `Add stores a new note and prints it back with the id the database
assigned.

Example:
  rowan add --title "Shopping" --body "milk, bread"
  rowan add --title "Standup" --json`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "note title (required)")
	addCmd.Flags().StringVar(&addBody, "body", "", "note body")
	_ = addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	n := Note{
		Title:   addTitle,
		Created: time.Now().UTC().Format(time.RFC3339),
	}
	if addBody != "" {
		n.Body = &addBody
	}

	stored, err := orm.Insert(db, n)
	if err != nil {
		return err
	}
	return printNote(stored)
}
