package orm

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/rowan/pkg/wire"
)

// Entity is implemented by any struct that maps to a table. TableName must
// work on the zero value; the generic finders call it before any row exists.
type Entity interface {
	TableName() string
}

func tableName[T Entity]() string {
	var zero T
	return zero.TableName()
}

// entityID returns the primary key of e as bare digits, taken from the field
// whose wire name is id.
func entityID(e any) (string, error) {
	names, err := wire.Fields(e)
	if err != nil {
		return "", err
	}
	vals, err := wire.FieldValues(e)
	if err != nil {
		return "", err
	}
	for i, name := range names {
		if name == "id" {
			return strings.Trim(vals[i], `"`), nil
		}
	}
	return "", fmt.Errorf("orm: %T has no id field", e)
}
