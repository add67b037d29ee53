// Package sqlite backs the ORM with an embedded SQLite database via
// database/sql and the cgo-free modernc driver.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

// Driver implements orm.Driver on a SQLite database file. ":memory:" opens a
// throwaway in-memory database.
type Driver struct {
	db *sql.DB
}

// Open opens or creates the database at path and wraps it in an ORM handle.
func Open(path string) (*orm.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return orm.NewDB(&Driver{db: db}), nil
}

// Exec runs a statement that returns no rows.
func (d *Driver) Exec(query string) (orm.Result, error) {
	res, err := d.db.Exec(query)
	if err != nil {
		return orm.Result{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return orm.Result{}, err
	}
	last, err := res.LastInsertId()
	if err != nil {
		return orm.Result{}, err
	}
	return orm.Result{Affected: affected, LastInsertID: last}, nil
}

// Query runs a select and stringifies every column. SQLite's dynamic typing
// folds integers and text alike into nullable strings.
func (d *Driver) Query(query string) ([]orm.Row, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []orm.Row
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		scan := make([]any, len(cols))
		for i := range vals {
			scan[i] = &vals[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		r := orm.NewRow()
		for i := range vals {
			if vals[i].Valid {
				s := vals[i].String
				r.Set(i, &s)
			} else {
				r.Set(i, nil)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertLookup locates the inserted row by SQLite's implicit rowid, which
// also covers tables whose id column is not an alias for it.
func (d *Driver) InsertLookup(lastID int64) string {
	return fmt.Sprintf("rowid = %d", lastID)
}

// Close releases the database file.
func (d *Driver) Close() error {
	return d.db.Close()
}
