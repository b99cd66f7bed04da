package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/logpile/logpile/pkg/errors"
)

// QueryType represents the type of SQL statement being built
type QueryType string

const (
	QueryTypeSelect QueryType = "SELECT"
	QueryTypeCount  QueryType = "COUNT"
	QueryTypeInsert QueryType = "INSERT"
	QueryTypeDelete QueryType = "DELETE"
)

// QueryResult represents the built SQL statement and its parameters
type QueryResult struct {
	SQL    string
	Params []interface{}
}

// Builder assembles a single parameterized SQL statement. Clauses are
// collected with ? placeholders and renumbered to $n once at Build.
type Builder struct {
	queryType    QueryType
	table        string // already quoted and schema-qualified
	fields       []string
	whereClauses []string
	params       []interface{}
	orderBy      []string
	limit        *int
	offset       *int

	insertCols []string
	insertVals []string
	insertArgs []interface{}
}

// From creates a new SELECT builder against a quoted table name
func From(table string) *Builder {
	return &Builder{
		queryType:    QueryTypeSelect,
		table:        table,
		fields:       make([]string, 0),
		whereClauses: make([]string, 0),
		params:       make([]interface{}, 0),
	}
}

// CountFrom creates a builder for a single-aggregate COUNT statement
func CountFrom(table string) *Builder {
	return &Builder{
		queryType:    QueryTypeCount,
		table:        table,
		whereClauses: make([]string, 0),
		params:       make([]interface{}, 0),
	}
}

// Insert creates a new INSERT builder
func Insert(table string) *Builder {
	return &Builder{
		queryType: QueryTypeInsert,
		table:     table,
	}
}

// Delete creates a new DELETE builder
func Delete(table string) *Builder {
	return &Builder{
		queryType:    QueryTypeDelete,
		table:        table,
		whereClauses: make([]string, 0),
		params:       make([]interface{}, 0),
	}
}

// Select specifies which columns to project, by name
func (b *Builder) Select(fields []string) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}
	for _, field := range fields {
		b.fields = append(b.fields, QuoteIdent(field))
	}
	return b
}

// Where adds a WHERE condition with ? placeholders
func (b *Builder) Where(condition string, value ...interface{}) *Builder {
	b.whereClauses = append(b.whereClauses, condition)
	if len(value) > 0 {
		b.params = append(b.params, value...)
	}
	return b
}

// WhereRaw adds a raw WHERE condition with a parameter slice
func (b *Builder) WhereRaw(sql string, params []interface{}) *Builder {
	if sql != "" {
		b.whereClauses = append(b.whereClauses, sql)
		b.params = append(b.params, params...)
	}
	return b
}

// OrderBy appends an ORDER BY pair. The direction must already be
// normalized to ASC or DESC.
func (b *Builder) OrderBy(field string, direction string) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}
	b.orderBy = append(b.orderBy, fmt.Sprintf("%s %s", QuoteIdent(field), direction))
	return b
}

// Limit adds a LIMIT clause
func (b *Builder) Limit(n int) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}
	b.limit = &n
	return b
}

// Offset adds an OFFSET clause
func (b *Builder) Offset(n int) *Builder {
	if b.queryType != QueryTypeSelect {
		return b
	}
	b.offset = &n
	return b
}

// Value adds one parameterized column value to an INSERT
func (b *Builder) Value(column string, arg interface{}) *Builder {
	if b.queryType != QueryTypeInsert {
		return b
	}
	b.insertCols = append(b.insertCols, QuoteIdent(column))
	b.insertVals = append(b.insertVals, "?")
	b.insertArgs = append(b.insertArgs, arg)
	return b
}

// Expr adds one raw SQL expression column value to an INSERT. The
// expression is spliced verbatim; it must never carry caller input.
func (b *Builder) Expr(column string, expr string) *Builder {
	if b.queryType != QueryTypeInsert {
		return b
	}
	b.insertCols = append(b.insertCols, QuoteIdent(column))
	b.insertVals = append(b.insertVals, expr)
	return b
}

// Build constructs the final SQL statement with $n placeholders
func (b *Builder) Build() QueryResult {
	var sql string
	var params []interface{}

	switch b.queryType {
	case QueryTypeSelect:
		sql = b.buildSelect()
		params = b.params
	case QueryTypeCount:
		sql = b.buildCount()
		params = b.params
	case QueryTypeInsert:
		sql = b.buildInsert()
		params = b.insertArgs
	case QueryTypeDelete:
		sql = b.buildDelete()
		params = b.params
	}

	return QueryResult{
		SQL:    rebind(sql),
		Params: params,
	}
}

func (b *Builder) buildSelect() string {
	var parts []string

	fields := "*"
	if len(b.fields) > 0 {
		fields = strings.Join(b.fields, ", ")
	}
	parts = append(parts, fmt.Sprintf("SELECT %s FROM %s", fields, b.table))

	if len(b.whereClauses) > 0 {
		parts = append(parts, fmt.Sprintf("WHERE %s", strings.Join(b.whereClauses, " AND ")))
	}

	if len(b.orderBy) > 0 {
		parts = append(parts, fmt.Sprintf("ORDER BY %s", strings.Join(b.orderBy, ", ")))
	}

	if b.limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *b.limit))
	}
	if b.offset != nil {
		parts = append(parts, fmt.Sprintf("OFFSET %d", *b.offset))
	}

	return strings.Join(parts, " ")
}

func (b *Builder) buildCount() string {
	sql := fmt.Sprintf("SELECT COUNT(*) AS total FROM %s", b.table)
	if len(b.whereClauses) > 0 {
		sql += fmt.Sprintf(" WHERE %s", strings.Join(b.whereClauses, " AND "))
	}
	return sql
}

func (b *Builder) buildInsert() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		b.table,
		strings.Join(b.insertCols, ", "),
		strings.Join(b.insertVals, ", "))
}

func (b *Builder) buildDelete() string {
	sql := fmt.Sprintf("DELETE FROM %s", b.table)
	if len(b.whereClauses) > 0 {
		sql += fmt.Sprintf(" WHERE %s", strings.Join(b.whereClauses, " AND "))
	}
	return sql
}

// BuildSelect translates a declarative request into a parameterized SELECT
// and, when paginated, a companion COUNT sharing the same predicate. The
// count mirrors the filters only, never the projection, order or limit.
func BuildSelect(req Request, table string, columns []string) (QueryResult, *QueryResult, error) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	// Field projection: absent means every declared column
	fields := req.Fields
	if len(fields) == 0 {
		fields = columns
	} else {
		for _, f := range fields {
			if !known[f] {
				return QueryResult{}, nil, errors.NewValidationError(f, "unknown column in field projection")
			}
		}
	}

	builder := From(table).Select(fields)
	countBuilder := CountFrom(table)

	for _, clause := range req.Where {
		if !known[clause.Field] {
			return QueryResult{}, nil, errors.NewValidationError(clause.Field, "unknown column in filter")
		}
		condition, params, err := renderClause(clause)
		if err != nil {
			return QueryResult{}, nil, err
		}
		builder.WhereRaw(condition, params)
		countBuilder.WhereRaw(condition, params)
	}

	for _, order := range req.Order {
		if !known[order.Field] {
			return QueryResult{}, nil, errors.NewValidationError(order.Field, "unknown column in order")
		}
		direction, err := normalizeDirection(order.Direction)
		if err != nil {
			return QueryResult{}, nil, err
		}
		builder.OrderBy(order.Field, direction)
	}

	if !req.Paginated() {
		result := builder.Build()
		return result, nil, nil
	}

	builder.Limit(req.Limit).Offset(req.Offset())
	result := builder.Build()
	count := countBuilder.Build()
	return result, &count, nil
}

// renderClause converts one filter clause into a predicate fragment
func renderClause(clause FilterClause) (string, []interface{}, error) {
	column := QuoteIdent(clause.Field)

	if op, ok := sqlOperators[clause.Op]; ok {
		return fmt.Sprintf("%s %s ?", column, op), []interface{}{clause.Value}, nil
	}

	switch clause.Op {
	case OpIn:
		values, err := expandSlice(clause.Value)
		if err != nil || len(values) == 0 {
			return "", nil, errors.NewValidationError(clause.Field, "in operator requires a non-empty list value")
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		return fmt.Sprintf("%s IN (%s)", column, placeholders), values, nil

	case OpBetween, OpNotBetween:
		bounds, err := expandSlice(clause.Value)
		if err != nil || len(bounds) != 2 {
			return "", nil, errors.NewValidationError(clause.Field, "between operators require a two-element value")
		}
		keyword := "BETWEEN"
		if clause.Op == OpNotBetween {
			keyword = "NOT BETWEEN"
		}
		return fmt.Sprintf("%s %s ? AND ?", column, keyword), bounds, nil
	}

	return "", nil, errors.NewValidationError(clause.Field, fmt.Sprintf("unknown operator '%s'", clause.Op))
}

// normalizeDirection folds the direction to ASC/DESC, case-insensitively
func normalizeDirection(direction string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(direction)) {
	case "", "ASC":
		return "ASC", nil
	case "DESC":
		return "DESC", nil
	}
	return "", errors.NewValidationError("order", fmt.Sprintf("invalid sort direction '%s'", direction))
}

// expandSlice flattens a slice-typed value into []interface{}
func expandSlice(value interface{}) ([]interface{}, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("value is not a slice")
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// QuoteIdent double-quotes a SQL identifier
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// rebind renumbers ? placeholders into the $n form the postgres driver expects
func rebind(sql string) string {
	var out strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			fmt.Fprintf(&out, "$%d", n)
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
