package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`a"b`, `a\"b`},
		{`a\b`, `a\\b`},
		// Backslash doubling runs first, so a pre-escaped quote gains
		// another layer instead of collapsing.
		{`a\"b`, `a\\\"b`},
		{`c:\temp "quoted"`, `c:\\temp \"quoted\"`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), "input %q", tt.in)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		`c:\temp "quoted"`,
		`\\server\share`,
		`"`, `\`, `\"`, `"\`,
		"line1\nline2",
		`trailing backslash\`,
	}
	for _, in := range inputs {
		var got string
		require.NoError(t, Unmarshal(`"`+Escape(in)+`"`, &got), "input %q", in)
		assert.Equal(t, in, got, "input %q", in)
	}
}

type person struct {
	ID   int64   `db:"id"`
	Name string  `db:"name"`
	Note *string `db:"note"`
	Age  uint64  `db:"age"`
}

func TestMarshalColumns(t *testing.T) {
	cols, err := MarshalColumns(person{})
	require.NoError(t, err)
	assert.Equal(t, "(id,name,note,age)", cols)

	cols, err = MarshalColumns(&person{})
	require.NoError(t, err)
	assert.Equal(t, "(id,name,note,age)", cols)

	_, err = MarshalColumns("not a struct")
	assert.Error(t, err)
}

func TestMarshalValues(t *testing.T) {
	note := "a note"
	vals, err := MarshalValues(person{ID: -7, Name: "John", Note: &note, Age: 30})
	require.NoError(t, err)
	assert.Equal(t, `("-7","John","a note","30")`, vals)

	vals, err = MarshalValues(person{Name: `say "hi"`})
	require.NoError(t, err)
	assert.Equal(t, `("0","say \"hi\"",null,"0")`, vals)
}

func TestMarshalKeyValues(t *testing.T) {
	kv, err := MarshalKeyValues(person{ID: -222, Name: "John", Age: 777})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"-222","name":"John","note":null,"age":"777"}`, kv)
}

func TestFieldValues(t *testing.T) {
	vals, err := FieldValues(person{ID: 1, Name: "n", Age: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{`"1"`, `"n"`, "null", `"2"`}, vals)

	_, err = FieldValues((*person)(nil))
	assert.Error(t, err)
}

func TestKeyValuesRoundTrip(t *testing.T) {
	note := `c:\temp "quoted"` + "\nsecond line"
	records := []person{
		{},
		{ID: -222, Name: "a\"\n\\", Note: &note, Age: 777},
		{ID: 9223372036854775807, Name: "max", Age: 18446744073709551615},
		{ID: -9223372036854775807, Name: "null"},
	}
	for _, in := range records {
		kv, err := MarshalKeyValues(in)
		require.NoError(t, err)

		var out person
		require.NoError(t, Unmarshal(kv, &out), "wire %s", kv)
		assert.Equal(t, in, out, "wire %s", kv)
	}
}

func TestMarshalNested(t *testing.T) {
	type inner struct {
		Tag string `db:"tag"`
	}
	type outer struct {
		ID    int64             `db:"id"`
		On    bool              `db:"on"`
		Inner inner             `db:"inner"`
		Tags  []string          `db:"tags"`
		Meta  map[string]string `db:"meta"`
	}

	in := outer{
		ID:    5,
		On:    true,
		Inner: inner{Tag: "t"},
		Tags:  []string{"a", "b"},
		Meta:  map[string]string{"z": "1", "a": "2"},
	}
	kv, err := MarshalKeyValues(in)
	require.NoError(t, err)
	// Map keys sort for deterministic output.
	assert.Equal(t,
		`{"id":"5","on":true,"inner":{"tag":"t"},"tags":["a","b"],"meta":{"a":"2","z":"1"}}`,
		kv)

	var out outer
	require.NoError(t, Unmarshal(kv, &out))
	assert.Equal(t, in, out)
}

func TestMarshalVariant(t *testing.T) {
	type envelope struct {
		Cmd command `db:"cmd"`
	}

	kv, err := MarshalKeyValues(envelope{Cmd: command{Name: "Ping"}})
	require.NoError(t, err)
	assert.Equal(t, `{"cmd":"Ping"}`, kv)

	in := envelope{Cmd: command{Name: "Exec", Args: []string{"ls", "-l"}}}
	kv, err = MarshalKeyValues(in)
	require.NoError(t, err)
	assert.Equal(t, `{"cmd":{"Exec":["ls","-l"]}}`, kv)

	var out envelope
	require.NoError(t, Unmarshal(kv, &out))
	assert.Equal(t, in, out)
}

func TestMarshalUnsupported(t *testing.T) {
	type withFloat struct {
		F float64 `db:"f"`
	}
	_, err := MarshalKeyValues(withFloat{F: 1.5})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	type withChan struct {
		C chan int `db:"c"`
	}
	_, err = MarshalKeyValues(withChan{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
