package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/logpile/logpile/pkg/query"
	"github.com/logpile/logpile/pkg/schema"
)

// LogRepository handles the write path: hydrated inserts and retention
// deletes against the log table.
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Insert hydrates the record against the declared columns and issues one
// INSERT through a borrowed connection, released on success and failure
// alike. Serial columns are left out of the column list; the database
// assigns those.
func (r *LogRepository) Insert(ctx context.Context, def *schema.TableDefinition, rec schema.Record, timezone string) error {
	builder := query.Insert(def.QualifiedName())
	for _, cv := range schema.Hydrate(rec, def.Columns, timezone) {
		if cv.Column.Type == schema.TypeSerial {
			continue
		}
		if cv.Expr != "" {
			builder.Expr(cv.Column.Name, cv.Expr)
			continue
		}
		builder.Value(cv.Column.Name, cv.Arg)
	}
	q := builder.Build()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	_, err = conn.ExecContext(ctx, q.SQL, q.Params...)
	return err
}

// PruneBefore deletes rows whose timestamp column is older than the
// given interval (e.g. "30 days"). Returns the number of rows removed.
func (r *LogRepository) PruneBefore(ctx context.Context, def *schema.TableDefinition, column string, interval string) (int64, error) {
	q := query.Delete(def.QualifiedName()).
		Where(fmt.Sprintf("%s < now() - ?::interval", query.QuoteIdent(column)), interval).
		Build()

	result, err := r.db.ExecContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
