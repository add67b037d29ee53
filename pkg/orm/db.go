package orm

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Result reports the outcome of a statement that does not return rows.
type Result struct {
	Affected     int64
	LastInsertID int64
}

// Driver is the database-specific half of the ORM. Implementations execute
// finished SQL text and hand rows back as positional nullable strings.
type Driver interface {
	// Exec runs a statement that returns no rows.
	Exec(query string) (Result, error)

	// Query runs a select and stringifies every column of every row.
	Query(query string) ([]Row, error)

	// InsertLookup returns the where clause that locates the row just
	// inserted, given the engine's last-insert id.
	InsertLookup(lastID int64) string

	Close() error
}

// DB is a connection handle shared across goroutines. A mutex serializes
// statement execution; the change ledger has its own lock so Change can nest
// Exec and Query calls.
type DB struct {
	mu         sync.Mutex
	drv        Driver
	log        *slog.Logger
	sessionID  string
	lastInsert int64

	changeMu    sync.Mutex
	changeCount int64
}

// NewDB wraps a driver in a handle. Every handle gets a UUID v7 session id
// that tags its log lines.
func NewDB(drv Driver) *DB {
	sid := uuid.Must(uuid.NewV7()).String()
	return &DB{
		drv:       drv,
		sessionID: sid,
		log:       slog.Default().With("session", sid),
	}
}

// SessionID returns the handle's log-correlation id.
func (db *DB) SessionID() string {
	return db.sessionID
}

// Exec runs a statement that returns no rows and records the engine's
// last-insert id for LastInsertID.
func (db *DB) Exec(query string) (Result, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.drv == nil {
		return Result{}, ErrNoConnection
	}
	db.log.Debug("exec", "query", query)
	res, err := db.drv.Exec(query)
	if err != nil {
		return Result{}, err
	}
	db.lastInsert = res.LastInsertID
	return res, nil
}

// Query runs a select and returns the raw rows.
func (db *DB) Query(query string) ([]Row, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.drv == nil {
		return nil, ErrNoConnection
	}
	db.log.Debug("query", "query", query)
	return db.drv.Query(query)
}

// LastInsertID returns the engine-assigned key of the most recent insert on
// this handle.
func (db *DB) LastInsertID() (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.drv == nil {
		return 0, ErrNoConnection
	}
	return db.lastInsert, nil
}

// Close releases the underlying connection. Any later operation returns
// ErrNoConnection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.drv == nil {
		return ErrNoConnection
	}
	err := db.drv.Close()
	db.drv = nil
	return err
}

func (db *DB) insertLookup(lastID int64) (string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.drv == nil {
		return "", ErrNoConnection
	}
	return db.drv.InsertLookup(lastID), nil
}

// Init runs the DDL script at the given path. Drivers must accept
// multi-statement text for this to set up more than one table.
func (db *DB) Init(script string) error {
	ddl, err := os.ReadFile(script)
	if err != nil {
		return err
	}
	_, err = db.Exec(string(ddl))
	return err
}

// Change runs updateQuery at most once per handle generation. A one-row
// ledger table records the generation counter; the statement runs only when
// this handle's counter moves past the stored one, so re-running the same
// migration sequence against an initialized database is a no-op.
func (db *DB) Change(updateQuery string) error {
	db.changeMu.Lock()
	defer db.changeMu.Unlock()

	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS rowan_changelog (last INTEGER)"); err != nil {
		return err
	}
	rows, err := db.Query("select last from rowan_changelog")
	if err != nil {
		return err
	}
	var last int64
	if len(rows) == 0 {
		if _, err := db.Exec("insert into rowan_changelog (last) values (0)"); err != nil {
			return err
		}
	} else {
		last, err = rows[0].Int(0)
		if err != nil {
			return err
		}
	}

	db.changeCount++
	if db.changeCount > last {
		if _, err := db.Exec(updateQuery); err != nil {
			return err
		}
		update := fmt.Sprintf("update rowan_changelog set last = %d", db.changeCount)
		if _, err := db.Exec(update); err != nil {
			return err
		}
	}
	return nil
}

// EscapeSQL doubles quote characters for embedding text in a statement.
func EscapeSQL(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// Protect quotes and escapes a value for interpolation into SQL text, e.g. a
// like pattern in a hand-written where clause.
func (db *DB) Protect(value string) string {
	return `"` + EscapeSQL(value) + `"`
}
