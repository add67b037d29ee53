// Package mysql backs the ORM with a MySQL server via database/sql and the
// go-sql-driver connector.
package mysql

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

// Driver implements orm.Driver on a MySQL connection pool.
type Driver struct {
	db *sql.DB
}

// DSN builds a connection string for Open. multiStatements stays on so Init
// can run a whole schema script in one call; ANSI_QUOTES makes the server
// read double-quoted values as strings, matching the statements the ORM
// generates.
func DSN(user, password, host string, port int, database string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?multiStatements=true&sql_mode=%%27ANSI_QUOTES%%27",
		user, password, host, port, database)
}

// Open connects to the server and verifies the connection with a ping.
func Open(dsn string) (*orm.DB, error) {
	db, err := sql.Open("mysql", dsn)
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

// Query runs a select and stringifies every column.
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

// InsertLookup locates the inserted row by its auto-increment id; MySQL has
// no implicit rowid.
func (d *Driver) InsertLookup(lastID int64) string {
	return fmt.Sprintf("id = %d", lastID)
}

// Close releases the connection pool.
func (d *Driver) Close() error {
	return d.db.Close()
}
