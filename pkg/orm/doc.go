// Package orm maps Go structs onto relational tables over a pluggable SQL
// driver. Statements are assembled as text from the wire encoding of an
// entity; result rows come back as positional nullable strings and are
// rebuilt into the wire object form before decoding into the target struct.
//
// An entity is any struct implementing Entity. Its exported fields map to
// columns in declaration order, named by the `db` tag or the lower-cased
// field name. The first column is expected to be the integer primary key id.
package orm
