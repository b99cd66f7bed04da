package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logpile/logpile/pkg/errors"
)

func TestNewTableDefinitionDefaultColumns(t *testing.T) {
	def, err := NewTableDefinition("public", "logs", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "level", "message", "meta", "created_at"}, def.ColumnNames())
	assert.Equal(t, `"public"."logs"`, def.QualifiedName())
}

func TestNewTableDefinitionRejectsDuplicateNames(t *testing.T) {
	_, err := NewTableDefinition("public", "logs", []ColumnDefinition{
		{Name: "a", Type: TypeString},
		{Name: "a", Type: TypeInteger},
	})
	assert.True(t, errors.IsConfiguration(err))
}

func TestNewTableDefinitionRequiresTableName(t *testing.T) {
	_, err := NewTableDefinition("public", "", nil)
	assert.True(t, errors.IsConfiguration(err))
}

func TestCreateDDL(t *testing.T) {
	def, err := NewTableDefinition("public", "logs", nil)
	require.NoError(t, err)

	want := `CREATE TABLE IF NOT EXISTS "public"."logs" (
  "id" serial,
  "level" character varying,
  "message" character varying,
  "meta" json,
  "created_at" timestamp with time zone
)`
	assert.Equal(t, want, def.CreateDDL())
}

func TestCreateDDLRendersDefaults(t *testing.T) {
	def, err := NewTableDefinition("", "audit", []ColumnDefinition{
		{Name: "source", Type: TypeString, Default: "app"},
		{Name: "active", Type: TypeBoolean, Default: true},
		{Name: "weight", Type: TypeInteger, Default: 5},
	})
	require.NoError(t, err)

	ddl := def.CreateDDL()
	assert.Contains(t, ddl, `"source" character varying DEFAULT 'app'`)
	assert.Contains(t, ddl, `"active" boolean DEFAULT TRUE`)
	assert.Contains(t, ddl, `"weight" integer DEFAULT 5`)
	assert.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "audit"`)
}

func TestDataTypeSQLPassthrough(t *testing.T) {
	assert.Equal(t, "timestamp with time zone", TypeTimestampTZ.SQL())
	assert.Equal(t, "numeric(18,2)", DataType("NUMERIC(18,2)").SQL())
}

func TestColumnLookup(t *testing.T) {
	def, err := NewTableDefinition("public", "logs", nil)
	require.NoError(t, err)

	col, ok := def.Column("meta")
	require.True(t, ok)
	assert.Equal(t, TypeJSON, col.Type)

	_, ok = def.Column("missing")
	assert.False(t, ok)
}
