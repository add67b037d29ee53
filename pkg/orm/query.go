package orm

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/rowan/pkg/wire"
)

// Query is a deferred typed select. Finders return it so callers can narrow
// the statement before running it.
type Query[T Entity] struct {
	db  *DB
	sql string
}

// FindAll selects every row of T's table.
func FindAll[T Entity](db *DB) *Query[T] {
	return &Query[T]{db: db, sql: fmt.Sprintf("select * from %s", tableName[T]())}
}

// FindMany selects rows matching a raw where clause. The clause is
// interpolated as-is; quote dynamic values with Protect.
func FindMany[T Entity](db *DB, where string) *Query[T] {
	return &Query[T]{
		db:  db,
		sql: fmt.Sprintf("select * from %s where %s", tableName[T](), where),
	}
}

// Select runs an arbitrary select whose column list matches T's fields.
func Select[T Entity](db *DB, query string) *Query[T] {
	return &Query[T]{db: db, sql: query}
}

// Limit caps the number of rows returned.
func (q *Query[T]) Limit(n int) *Query[T] {
	q.sql = fmt.Sprintf("%s limit %d", q.sql, n)
	return q
}

// Run executes the select and rebuilds each row into a T. The first row that
// fails to decode aborts the rest with ErrDecode.
func (q *Query[T]) Run() ([]T, error) {
	rows, err := q.db.Query(q.sql)
	if err != nil {
		return nil, err
	}
	return decodeRows[T](rows)
}

// FindOne fetches the row with the given primary key. A missing row is not
// an error: the result is nil, nil.
func FindOne[T Entity](db *DB, id uint64) (*T, error) {
	out, err := FindMany[T](db, fmt.Sprintf("id = %d", id)).Run()
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// Insert adds e to its table and returns the stored row, re-read so
// engine-assigned values are visible. A zero id is left out of the statement
// and assigned by the database.
func Insert[T Entity](db *DB, e T) (*T, error) {
	names, err := wire.Fields(e)
	if err != nil {
		return nil, err
	}
	vals, err := wire.FieldValues(e)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(names))
	args := make([]string, 0, len(vals))
	for i, name := range names {
		if name == "id" && vals[i] == `"0"` {
			continue
		}
		cols = append(cols, name)
		args = append(args, vals[i])
	}

	query := fmt.Sprintf("insert into %s (%s) values (%s)",
		tableName[T](), strings.Join(cols, ","), strings.Join(args, ","))
	res, err := db.Exec(query)
	if err != nil {
		return nil, err
	}

	where, err := db.insertLookup(res.LastInsertID)
	if err != nil {
		return nil, err
	}
	out, err := FindMany[T](db, where).Run()
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrInsert
	}
	return &out[0], nil
}

// Update writes every field of e back to its row, keyed by id, and returns
// the number of affected rows.
func Update[T Entity](db *DB, e T) (int64, error) {
	names, err := wire.Fields(e)
	if err != nil {
		return 0, err
	}
	vals, err := wire.FieldValues(e)
	if err != nil {
		return 0, err
	}
	id, err := entityID(e)
	if err != nil {
		return 0, err
	}

	assign := make([]string, 0, len(names))
	for i, name := range names {
		if name == "id" {
			continue
		}
		assign = append(assign, fmt.Sprintf("%s = %s", name, vals[i]))
	}

	query := fmt.Sprintf("update %s set %s where id = %s",
		tableName[T](), strings.Join(assign, ", "), id)
	res, err := db.Exec(query)
	if err != nil {
		return 0, err
	}
	return res.Affected, nil
}

// Delete removes e's row, keyed by id, and returns the number of affected
// rows.
func Delete[T Entity](db *DB, e T) (int64, error) {
	id, err := entityID(e)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("delete from %s where id = %s", tableName[T](), id)
	res, err := db.Exec(query)
	if err != nil {
		return 0, err
	}
	return res.Affected, nil
}
