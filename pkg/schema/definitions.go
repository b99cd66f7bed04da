package schema

import (
	"fmt"
	"strings"

	"github.com/logpile/logpile/pkg/errors"
	"github.com/logpile/logpile/pkg/query"
)

// DataType is the SQL-level type tag of a column
type DataType string

const (
	TypeString      DataType = "STRING"
	TypeInteger     DataType = "INTEGER"
	TypeBigInt      DataType = "BIGINT"
	TypeSerial      DataType = "SERIAL"
	TypeJSON        DataType = "JSON"
	TypeTimestamp   DataType = "TIMESTAMP"
	TypeTimestampTZ DataType = "TIMESTAMPTZ"
	TypeBoolean     DataType = "BOOLEAN"
)

// sqlTypes maps each data type to its postgres type name
var sqlTypes = map[DataType]string{
	TypeString:      "character varying",
	TypeInteger:     "integer",
	TypeBigInt:      "bigint",
	TypeSerial:      "serial",
	TypeJSON:        "json",
	TypeTimestamp:   "timestamp",
	TypeTimestampTZ: "timestamp with time zone",
	TypeBoolean:     "boolean",
}

// SQL returns the postgres type name for the data type
func (t DataType) SQL() string {
	if s, ok := sqlTypes[t]; ok {
		return s
	}
	// Unknown tags pass through so callers can declare types this enum
	// does not name (numeric(18,2), text, uuid, ...)
	return strings.ToLower(string(t))
}

// IsTimestamp reports whether the type is a timestamp kind. Timestamp
// columns are always written with a server-side current-time expression.
func (t DataType) IsTimestamp() bool {
	return t == TypeTimestamp || t == TypeTimestampTZ
}

// ColumnDefinition declares one persisted field: name, SQL-level type
// tag and an optional default applied when a record omits the field.
type ColumnDefinition struct {
	Name    string   `json:"name"`
	Type    DataType `json:"type"`
	Default any      `json:"default,omitempty"`
}

// TableDefinition is a named, schema-qualified table built from an
// ordered column list. It is fixed at construction and never mutated.
type TableDefinition struct {
	Schema  string
	Name    string
	Columns []ColumnDefinition
}

// NewTableDefinition validates the column list and returns the table
// definition. An empty column list selects the default log columns.
// Duplicate column names are a configuration error.
func NewTableDefinition(schemaName, tableName string, columns []ColumnDefinition) (*TableDefinition, error) {
	if tableName == "" {
		return nil, errors.NewConfigurationError("table", "table name is required")
	}
	if len(columns) == 0 {
		columns = DefaultColumns()
	}

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col.Name == "" {
			return nil, errors.NewConfigurationError("columns", "column name must not be empty")
		}
		if seen[col.Name] {
			return nil, errors.NewConfigurationError("columns", fmt.Sprintf("duplicate column name '%s'", col.Name))
		}
		seen[col.Name] = true
	}

	return &TableDefinition{
		Schema:  schemaName,
		Name:    tableName,
		Columns: columns,
	}, nil
}

// QualifiedName returns the quoted, schema-qualified table name
func (t *TableDefinition) QualifiedName() string {
	if t.Schema == "" {
		return query.QuoteIdent(t.Name)
	}
	return query.QuoteIdent(t.Schema) + "." + query.QuoteIdent(t.Name)
}

// ColumnNames returns the declared column names in declared order
func (t *TableDefinition) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a declared column by name
func (t *TableDefinition) Column(name string) (ColumnDefinition, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnDefinition{}, false
}

// CreateDDL renders the idempotent creation statement for the table
func (t *TableDefinition) CreateDDL() string {
	var ddl strings.Builder
	ddl.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n", t.QualifiedName()))

	for i, col := range t.Columns {
		ddl.WriteString("  ")
		ddl.WriteString(buildColumnDDL(col))
		if i < len(t.Columns)-1 {
			ddl.WriteString(",")
		}
		ddl.WriteString("\n")
	}

	ddl.WriteString(")")
	return ddl.String()
}

func buildColumnDDL(col ColumnDefinition) string {
	ddl := fmt.Sprintf("%s %s", query.QuoteIdent(col.Name), col.Type.SQL())
	if col.Default != nil && col.Type != TypeSerial {
		ddl += fmt.Sprintf(" DEFAULT %s", defaultLiteral(col.Default))
	}
	return ddl
}

// defaultLiteral renders a configured column default as a SQL literal.
// Defaults are trusted configuration, the same trust boundary as the
// timezone string.
func defaultLiteral(value any) string {
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", v)
	}
}
