// Note is the entity the CLI stores.
package main

// Note is one stored note. Field order matches the column order of the notes
// table in both schema scripts.
type Note struct {
	ID      int64   `db:"id" json:"id"`
	Title   string  `db:"title" json:"title"`
	Body    *string `db:"body" json:"body"`
	Created string  `db:"created" json:"created"`
}

// TableName names the backing table.
func (Note) TableName() string { return "notes" }
