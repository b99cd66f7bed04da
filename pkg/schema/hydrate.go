package schema

import (
	"encoding/json"
	"fmt"
)

// Record is an open-ended log record as supplied by the caller. It is
// never stored structurally; it is projected through the declared
// column list before hitting the table.
type Record map[string]any

// ColumnValue is one hydrated column: either a parameterized argument
// or a raw SQL expression. A non-empty Expr wins over Arg.
type ColumnValue struct {
	Column ColumnDefinition
	Arg    any
	Expr   string
}

// Hydrate projects a record onto the declared columns, in declared
// order, applying the type-specific transforms:
//
//   - JSON columns serialize the looked-up value to JSON text; a missing
//     value serializes to the literal JSON null rather than failing
//   - timestamp columns ignore the supplied value and emit a server-side
//     current-time expression, qualified with AT TIME ZONE when a
//     timezone is configured
//   - all other columns take the looked-up value, falling back to the
//     column's configured default when the value is absent or nil
//
// The timezone is spliced into the expression verbatim. It is trusted
// configuration only and must never carry caller input.
func Hydrate(rec Record, columns []ColumnDefinition, timezone string) []ColumnValue {
	values := make([]ColumnValue, 0, len(columns))

	for _, col := range columns {
		value := rec[col.Name]

		switch {
		case col.Type == TypeJSON:
			values = append(values, ColumnValue{Column: col, Arg: marshalJSON(value)})

		case col.Type.IsTimestamp():
			values = append(values, ColumnValue{Column: col, Expr: timestampExpr(timezone)})

		default:
			if value == nil {
				value = col.Default
			}
			values = append(values, ColumnValue{Column: col, Arg: value})
		}
	}

	return values
}

func marshalJSON(value any) string {
	text, err := json.Marshal(value)
	if err != nil {
		// Unserializable metadata is a caller mistake; store null
		// rather than failing the whole write
		return "null"
	}
	return string(text)
}

func timestampExpr(timezone string) string {
	if timezone == "" {
		return "now()"
	}
	return fmt.Sprintf("now() AT TIME ZONE '%s'", timezone)
}
