package orm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID   int64   `db:"id"`
	Name string  `db:"name"`
	Age  *int64  `db:"age"`
}

func (user) TableName() string { return "user" }

// fakeDriver records every statement and serves queued query results.
type fakeDriver struct {
	execs    []string
	queries  []string
	results  [][]Row
	execRes  Result
	execErr  error
	queryErr error
	closed   bool
}

func (f *fakeDriver) Exec(query string) (Result, error) {
	f.execs = append(f.execs, query)
	return f.execRes, f.execErr
}

func (f *fakeDriver) Query(query string) ([]Row, error) {
	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.results) == 0 {
		return nil, nil
	}
	rows := f.results[0]
	f.results = f.results[1:]
	return rows, nil
}

func (f *fakeDriver) InsertLookup(lastID int64) string {
	return fmt.Sprintf("rowid = %d", lastID)
}

func (f *fakeDriver) Close() error {
	f.closed = true
	return nil
}

func sp(s string) *string { return &s }

func userRow(id, name, age *string) Row {
	r := NewRow()
	r.Set(0, id)
	r.Set(1, name)
	r.Set(2, age)
	return r
}

func TestFindOne(t *testing.T) {
	drv := &fakeDriver{results: [][]Row{{userRow(sp("7"), sp("John"), sp("30"))}}}
	db := NewDB(drv)

	u, err := FindOne[user](db, 7)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "John", u.Name)
	require.NotNil(t, u.Age)
	assert.Equal(t, int64(30), *u.Age)

	assert.Equal(t, []string{"select * from user where id = 7"}, drv.queries)
}

func TestFindOneAbsent(t *testing.T) {
	db := NewDB(&fakeDriver{})

	u, err := FindOne[user](db, 99)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFindManyLimit(t *testing.T) {
	drv := &fakeDriver{results: [][]Row{{
		userRow(sp("1"), sp("a"), nil),
		userRow(sp("2"), sp("b"), nil),
	}}}
	db := NewDB(drv)

	users, err := FindMany[user](db, "id > 0").Limit(2).Run()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Nil(t, users[0].Age)

	assert.Equal(t, []string{"select * from user where id > 0 limit 2"}, drv.queries)
}

func TestFindAll(t *testing.T) {
	drv := &fakeDriver{}
	db := NewDB(drv)

	users, err := FindAll[user](db).Run()
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, []string{"select * from user"}, drv.queries)
}

func TestRunDecodeError(t *testing.T) {
	drv := &fakeDriver{results: [][]Row{{
		userRow(sp("1"), sp("ok"), nil),
		userRow(sp("not a number"), sp("bad"), nil),
	}}}
	db := NewDB(drv)

	_, err := FindAll[user](db).Run()
	assert.ErrorIs(t, err, ErrDecode)
}

func TestInsert(t *testing.T) {
	drv := &fakeDriver{
		execRes: Result{Affected: 1, LastInsertID: 42},
		results: [][]Row{{userRow(sp("42"), sp("John"), sp("30"))}},
	}
	db := NewDB(drv)

	age := int64(30)
	got, err := Insert(db, user{Name: "John", Age: &age})
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)

	// A zero id stays out of the statement so the engine assigns the key.
	require.Len(t, drv.execs, 1)
	assert.Equal(t, `insert into user (name,age) values ("John","30")`, drv.execs[0])
	assert.Equal(t, []string{"select * from user where rowid = 42"}, drv.queries)

	last, err := db.LastInsertID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), last)
}

func TestInsertExplicitID(t *testing.T) {
	drv := &fakeDriver{
		execRes: Result{Affected: 1, LastInsertID: 5},
		results: [][]Row{{userRow(sp("5"), sp("x"), nil)}},
	}
	db := NewDB(drv)

	_, err := Insert(db, user{ID: 5, Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, `insert into user (id,name,age) values ("5","x",null)`, drv.execs[0])
}

func TestInsertLookupMiss(t *testing.T) {
	drv := &fakeDriver{execRes: Result{LastInsertID: 9}}
	db := NewDB(drv)

	_, err := Insert(db, user{Name: "ghost"})
	assert.ErrorIs(t, err, ErrInsert)
}

func TestUpdate(t *testing.T) {
	drv := &fakeDriver{execRes: Result{Affected: 1}}
	db := NewDB(drv)

	age := int64(31)
	n, err := Update(db, user{ID: 7, Name: "John", Age: &age})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, `update user set name = "John", age = "31" where id = 7`, drv.execs[0])
}

func TestDelete(t *testing.T) {
	drv := &fakeDriver{execRes: Result{Affected: 1}}
	db := NewDB(drv)

	n, err := Delete(db, user{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, "delete from user where id = 7", drv.execs[0])
}

func TestClosedHandle(t *testing.T) {
	drv := &fakeDriver{}
	db := NewDB(drv)
	require.NoError(t, db.Close())
	assert.True(t, drv.closed)

	_, err := db.Exec("select 1")
	assert.ErrorIs(t, err, ErrNoConnection)
	_, err = db.Query("select 1")
	assert.ErrorIs(t, err, ErrNoConnection)
	_, err = db.LastInsertID()
	assert.ErrorIs(t, err, ErrNoConnection)
	assert.ErrorIs(t, db.Close(), ErrNoConnection)

	_, err = FindOne[user](db, 1)
	assert.ErrorIs(t, err, ErrNoConnection)
}

func TestChangeFreshLedger(t *testing.T) {
	// Empty ledger: the counter moves to 1, past the stored 0, so the
	// statement runs and the ledger advances.
	drv := &fakeDriver{}
	db := NewDB(drv)

	require.NoError(t, db.Change("alter table user add column email TEXT"))

	assert.Equal(t, []string{
		"CREATE TABLE IF NOT EXISTS rowan_changelog (last INTEGER)",
		"insert into rowan_changelog (last) values (0)",
		"alter table user add column email TEXT",
		"update rowan_changelog set last = 1",
	}, drv.execs)
	assert.Equal(t, []string{"select last from rowan_changelog"}, drv.queries)
}

func TestChangeAlreadyApplied(t *testing.T) {
	// Stored generation ahead of this handle: the statement is skipped.
	ledger := NewRow()
	ledger.Set(0, sp("5"))
	drv := &fakeDriver{results: [][]Row{{ledger}}}
	db := NewDB(drv)

	require.NoError(t, db.Change("alter table user add column email TEXT"))

	assert.Equal(t, []string{
		"CREATE TABLE IF NOT EXISTS rowan_changelog (last INTEGER)",
	}, drv.execs)
}

func TestProtect(t *testing.T) {
	db := NewDB(&fakeDriver{})
	assert.Equal(t, `"M%"`, db.Protect("M%"))
	assert.Equal(t, `"a""b"`, db.Protect(`a"b`))
	assert.Equal(t, `say ""hi""`, EscapeSQL(`say "hi"`))
}

func TestSessionID(t *testing.T) {
	a := NewDB(&fakeDriver{})
	b := NewDB(&fakeDriver{})
	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
}

func TestBuildObject(t *testing.T) {
	names := []string{"id", "name", "age"}

	row := userRow(sp("1"), sp(`a"b\c`), nil)
	assert.Equal(t, `{"id":"1","name":"a\"b\\c","age":null}`, buildObject(names, row))

	// Missing columns read as null.
	short := NewRow()
	short.Set(0, sp("2"))
	assert.Equal(t, `{"id":"2","name":null,"age":null}`, buildObject(names, short))
}

func TestRow(t *testing.T) {
	r := NewRow()
	r.Set(0, sp("11"))
	r.Set(1, nil)

	n, err := r.Int(0)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)

	_, err = r.Int(1)
	assert.Error(t, err)
	_, err = r.Int(9)
	assert.Error(t, err)

	s, ok := r.String(0)
	assert.True(t, ok)
	assert.Equal(t, "11", s)
	_, ok = r.String(1)
	assert.False(t, ok)

	v, ok := r.Value(1)
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = r.Value(9)
	assert.False(t, ok)

	assert.Equal(t, 2, r.Len())
}
