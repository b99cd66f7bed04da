package persistence

import (
	"context"
	"database/sql"

	"github.com/logpile/logpile/pkg/schema"
)

// SchemaRepository owns table creation
type SchemaRepository struct {
	db *sql.DB
}

// NewSchemaRepository creates a new SchemaRepository
func NewSchemaRepository(db *sql.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// EnsureTable issues the idempotent creation statement for the table
// through one borrowed connection, released on every path. The database
// error is passed through unmodified; the caller decides fatality.
func (r *SchemaRepository) EnsureTable(ctx context.Context, def *schema.TableDefinition) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	_, err = conn.ExecContext(ctx, def.CreateDDL())
	return err
}
