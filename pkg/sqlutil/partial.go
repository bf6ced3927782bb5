package sqlutil

import (
	"fmt"
	"strings"

	"github.com/openboard/service-jobboard-go/pkg/apperr"
)

// Field is one column update in a partial-update payload. Callers append
// fields in payload order; that order is preserved in the generated SQL.
type Field struct {
	Name  string
	Value any
}

// PartialUpdate builds a parameterized SET clause from an ordered list of
// field updates. Column names come from the columns mapping when present,
// otherwise the field name is used verbatim. Names are double-quoted to
// preserve identifier case; values are never interpolated into the SQL
// text, only bound positionally ($1, $2, ...).
//
//	PartialUpdate([]Field{{"handle", "a"}, {"numEmployees", 5}},
//	    map[string]string{"numEmployees": "num_employees"})
//	→ `"handle"=$1, "num_employees"=$2`, []any{"a", 5}
//
// An empty field list is a caller error, not an empty statement.
func PartialUpdate(fields []Field, columns map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, apperr.BadRequest("no data")
	}
	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for i, f := range fields {
		col := f.Name
		if mapped, ok := columns[f.Name]; ok {
			col = mapped
		}
		assignments = append(assignments, fmt.Sprintf("%q=$%d", col, i+1))
		args = append(args, f.Value)
	}
	return strings.Join(assignments, ", "), args, nil
}
