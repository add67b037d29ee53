package mysql

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rowan/pkg/orm"
)

func TestDSN(t *testing.T) {
	dsn := DSN("root", "secret", "127.0.0.1", 3306, "rowan")
	assert.Equal(t,
		"root:secret@tcp(127.0.0.1:3306)/rowan?multiStatements=true&sql_mode=%27ANSI_QUOTES%27",
		dsn)
}

type note struct {
	ID      int64   `db:"id"`
	Title   string  `db:"title"`
	Body    *string `db:"body"`
	Created string  `db:"created"`
}

func (note) TableName() string { return "notes" }

// TestLiveRoundTrip needs a reachable server; set ROWAN_MYSQL_DSN to run it,
// e.g. root:secret@tcp(127.0.0.1:3306)/rowan_test?multiStatements=true&sql_mode=%27ANSI_QUOTES%27
func TestLiveRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("live database test")
	}
	dsn := os.Getenv("ROWAN_MYSQL_DSN")
	if dsn == "" {
		t.Skip("ROWAN_MYSQL_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`DROP TABLE IF EXISTS notes;
CREATE TABLE notes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title TEXT NOT NULL,
	body TEXT,
	created TEXT NOT NULL
);`)
	require.NoError(t, err)

	stored, err := orm.Insert(db, note{Title: "first", Created: "2026-01-02"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotZero(t, stored.ID)
	assert.Nil(t, stored.Body)

	got, err := orm.FindOne[note](db, uint64(stored.ID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *stored, *got)

	stored.Title = "second"
	n, err := orm.Update(db, *stored)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = orm.Delete(db, *stored)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
