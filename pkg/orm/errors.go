package orm

import "errors"

var (
	// ErrNoConnection reports an operation against a closed or never-opened
	// database handle.
	ErrNoConnection = errors.New("no database connection")

	// ErrInsert reports an insert whose follow-up lookup produced no row.
	ErrInsert = errors.New("inserted row not found")

	// ErrDecode wraps a failure to rebuild a result row into its entity.
	// The first bad row aborts the whole result set.
	ErrDecode = errors.New("row decode failed")
)
