package persistence

import (
	"context"
	"database/sql"

	"github.com/logpile/logpile/pkg/query"
	"github.com/logpile/logpile/pkg/schema"
)

// QueryRepository handles the read path: filtered, ordered, optionally
// paginated selects over the log table.
type QueryRepository struct {
	db *sql.DB
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(db *sql.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// Find executes a declarative read request. Unpaginated requests return
// the plain row set and issue no count statement. Paginated requests
// run the select and its companion count on one dedicated connection,
// released once on every path, and return the assembled page.
func (r *QueryRepository) Find(ctx context.Context, def *schema.TableDefinition, req query.Request) ([]query.Row, *query.Page, error) {
	selectQ, countQ, err := query.BuildSelect(req, def.QualifiedName(), def.ColumnNames())
	if err != nil {
		return nil, nil, err
	}

	if countQ == nil {
		rows, err := r.db.QueryContext(ctx, selectQ.SQL, selectQ.Params...)
		if err != nil {
			return nil, nil, err
		}
		defer rows.Close()

		results, err := query.ScanRows(rows)
		if err != nil {
			return nil, nil, err
		}
		return results, nil, nil
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, selectQ.SQL, selectQ.Params...)
	if err != nil {
		return nil, nil, err
	}
	results, err := query.ScanRows(rows)
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	total, err := r.count(ctx, conn, *countQ)
	if err != nil {
		return nil, nil, err
	}

	page := query.NewPage(results, req.Limit, req.Page, total)
	return results, page, nil
}

// count runs the companion aggregate on the already-borrowed connection.
// A count query that yields no rows at all defaults to 0.
func (r *QueryRepository) count(ctx context.Context, conn *sql.Conn, q query.QueryResult) (int64, error) {
	rows, err := conn.QueryContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var total int64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, err
		}
	}
	return total, rows.Err()
}
