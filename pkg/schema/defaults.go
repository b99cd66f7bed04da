package schema

// Default names for the built-in log table shape
const (
	ColumnID        = "id"
	ColumnLevel     = "level"
	ColumnMessage   = "message"
	ColumnMeta      = "meta"
	ColumnCreatedAt = "created_at"
)

// DefaultColumns returns the built-in column set used when the caller
// supplies none: an auto-incrementing identifier, the log level and
// message, a JSON metadata column and a creation timestamp.
func DefaultColumns() []ColumnDefinition {
	return []ColumnDefinition{
		{Name: ColumnID, Type: TypeSerial},
		{Name: ColumnLevel, Type: TypeString},
		{Name: ColumnMessage, Type: TypeString},
		{Name: ColumnMeta, Type: TypeJSON},
		{Name: ColumnCreatedAt, Type: TypeTimestampTZ},
	}
}
