package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrateOneEntryPerColumnInOrder(t *testing.T) {
	columns := DefaultColumns()
	rec := Record{"message": "hi", "level": "info"}

	values := Hydrate(rec, columns, "")
	require.Len(t, values, len(columns))
	for i, cv := range values {
		assert.Equal(t, columns[i].Name, cv.Column.Name)
	}
}

func TestHydrateJSONColumn(t *testing.T) {
	columns := []ColumnDefinition{{Name: "meta", Type: TypeJSON}}

	cases := []struct {
		name string
		rec  Record
		want string
	}{
		{"missing value", Record{}, "null"},
		{"explicit nil", Record{"meta": nil}, "null"},
		{"nested object", Record{"meta": map[string]any{"a": []int{1, 2}}}, `{"a":[1,2]}`},
		{"array", Record{"meta": []string{"x"}}, `["x"]`},
		{"scalar", Record{"meta": 42}, "42"},
	}

	for _, tc := range cases {
		values := Hydrate(tc.rec, columns, "")
		require.Len(t, values, 1, tc.name)
		assert.Equal(t, tc.want, values[0].Arg, tc.name)
	}
}

func TestHydrateJSONColumnUnserializableValue(t *testing.T) {
	columns := []ColumnDefinition{{Name: "meta", Type: TypeJSON}}
	values := Hydrate(Record{"meta": make(chan int)}, columns, "")
	assert.Equal(t, "null", values[0].Arg)
}

func TestHydrateTimestampIgnoresCallerValue(t *testing.T) {
	columns := []ColumnDefinition{{Name: "created_at", Type: TypeTimestampTZ}}

	values := Hydrate(Record{"created_at": "2001-01-01"}, columns, "")
	require.Len(t, values, 1)
	assert.Equal(t, "now()", values[0].Expr)
	assert.Nil(t, values[0].Arg)
}

func TestHydrateTimestampTimezoneVerbatim(t *testing.T) {
	columns := []ColumnDefinition{
		{Name: "created_at", Type: TypeTimestampTZ},
		{Name: "updated_at", Type: TypeTimestamp},
	}

	values := Hydrate(Record{}, columns, "utc+2")
	assert.Equal(t, "now() AT TIME ZONE 'utc+2'", values[0].Expr)
	assert.Equal(t, "now() AT TIME ZONE 'utc+2'", values[1].Expr)

	values = Hydrate(Record{}, columns, "")
	assert.NotContains(t, values[0].Expr, "AT TIME ZONE")
}

func TestHydrateAppliesColumnDefault(t *testing.T) {
	columns := []ColumnDefinition{
		{Name: "source", Type: TypeString, Default: "app"},
		{Name: "message", Type: TypeString},
	}

	values := Hydrate(Record{"message": "hi"}, columns, "")
	assert.Equal(t, "app", values[0].Arg)
	assert.Equal(t, "hi", values[1].Arg)

	values = Hydrate(Record{"source": "worker", "message": "hi"}, columns, "")
	assert.Equal(t, "worker", values[0].Arg)
}
