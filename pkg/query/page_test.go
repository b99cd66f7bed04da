package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	rows := []Row{{"id": 1}, {"id": 2}}
	page := NewPage(rows, 5, 0, 12)

	assert.Equal(t, 2, page.RowCount)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, int64(12), page.Total)
}

func TestNewPageDefensiveDefaults(t *testing.T) {
	page := NewPage(nil, 10, -3, 0)

	assert.NotNil(t, page.Rows)
	assert.Equal(t, 0, page.RowCount)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, int64(0), page.Total)
}
