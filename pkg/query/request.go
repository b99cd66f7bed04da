package query

// Op is a filter comparison operator
type Op string

const (
	OpEq         Op = "eq"
	OpNe         Op = "ne"
	OpGt         Op = "gt"
	OpGte        Op = "gte"
	OpLt         Op = "lt"
	OpLte        Op = "lte"
	OpLike       Op = "like"
	OpIn         Op = "in"
	OpBetween    Op = "between"
	OpNotBetween Op = "notBetween"
)

// sqlOperators maps scalar operators to their SQL form. In/between kinds
// are rendered separately because their arity differs.
var sqlOperators = map[Op]string{
	OpEq:   "=",
	OpNe:   "<>",
	OpGt:   ">",
	OpGte:  ">=",
	OpLt:   "<",
	OpLte:  "<=",
	OpLike: "LIKE",
}

// Valid reports whether the operator is recognized
func (o Op) Valid() bool {
	if _, ok := sqlOperators[o]; ok {
		return true
	}
	return o == OpIn || o == OpBetween || o == OpNotBetween
}

// FilterClause is a single predicate against one column.
// Between/NotBetween require a two-element slice value; In requires a slice;
// every other operator takes a single scalar.
type FilterClause struct {
	Field string `json:"field"`
	Op    Op     `json:"op"`
	Value any    `json:"value"`
}

// Order is one (column, direction) sort pair. Direction is normalized
// case-insensitively; "ASC" is assumed when empty.
type Order struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Request is a declarative read request against the log table.
//
// Where clauses are combined with AND only: there is no OR and no nesting.
// That is a deliberate limitation of the filter model, not an oversight.
type Request struct {
	Fields []string       `json:"fields,omitempty"`
	Where  []FilterClause `json:"where,omitempty"`
	Order  []Order        `json:"order,omitempty"`
	Limit  int            `json:"limit,omitempty"`
	Page   int            `json:"page,omitempty"`
}

// Paginated reports whether the request asks for a page result.
// Without a limit the query returns a plain row set and no count is issued.
func (r Request) Paginated() bool {
	return r.Limit > 0
}

// Offset computes the row offset for the requested page.
// Page is a zero-based page index; a negative page is treated as 0.
func (r Request) Offset() int {
	page := r.Page
	if page < 0 {
		page = 0
	}
	return r.Limit * page
}
