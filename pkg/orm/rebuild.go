package orm

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/rowan/pkg/wire"
)

// buildObject renders one result row as a wire object: each column paired
// with its field name in declaration order, values re-escaped for the wire,
// NULL columns as bare null. The output feeds wire.Unmarshal directly.
func buildObject(names []string, row Row) string {
	parts := make([]string, 0, len(names))
	for i, name := range names {
		val := "null"
		if v, ok := row.Value(i); ok && v != nil {
			val = `"` + wire.Escape(*v) + `"`
		}
		parts = append(parts, `"`+name+`":`+val)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// decodeRows rebuilds every row into a T. Decoding stops at the first bad
// row; there is no partial success.
func decodeRows[T Entity](rows []Row) ([]T, error) {
	var zero T
	names, err := wire.Fields(zero)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var e T
		if err := wire.Unmarshal(buildObject(names, row), &e); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		out = append(out, e)
	}
	return out, nil
}
