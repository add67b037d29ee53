// Package wire implements the key-value wire format exchanged between typed
// records and the database layer.
//
// The format is a restricted, JSON-like textual grammar: null, quoted strings
// with exactly two escape sequences (\" and \\), arrays, objects, and enum
// variants. Every numeric leaf is quoted ("-222", never -222); booleans are
// the bare literals true and false. The encoder produces SQL-ready value
// lists and key-value objects from a struct; the decoder reconstructs a
// struct from the object form rebuilt out of database rows.
//
// The decoder is hand-rolled on purpose: the grammar is not JSON (quoted
// scalars, two escapes only, no whitespace tolerance), and a stock parser
// would accept inputs this format must reject.
package wire
