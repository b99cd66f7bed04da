package sink

import (
	"context"
	"database/sql"

	"github.com/logpile/logpile/internal/infrastructure/database"
	"github.com/logpile/logpile/internal/infrastructure/persistence"
	"github.com/logpile/logpile/pkg/errors"
	"github.com/logpile/logpile/pkg/events"
	"github.com/logpile/logpile/pkg/query"
	"github.com/logpile/logpile/pkg/schema"
	"github.com/robfig/cron/v3"
)

// Sink persists structured log records into a relational table and
// serves filtered, paginated reads over them.
//
// All database errors pass through unmodified to the nearest
// caller-visible channel: the returned error or the emitted event.
// Nothing is retried and nothing is logged by the sink itself.
type Sink struct {
	opts Options
	def  *schema.TableDefinition
	bus  *events.Bus

	db      *sql.DB
	conn    *database.Connection
	logs    *persistence.LogRepository
	reads   *persistence.QueryRepository
	sweeper *cron.Cron
	ownsDB  bool
}

// New validates the options, opens the pool, ensures the log table
// exists and starts the retention sweeper when configured. A missing
// connection string or a failed table creation fails construction; the
// sink never proceeds without its table.
func New(opts Options) (*Sink, error) {
	if opts.Silent {
		return newSilent(opts)
	}

	if opts.ConnString == "" {
		return nil, errors.NewConfigurationError("conn_string", "connection string is required")
	}

	def, err := schema.NewTableDefinition(opts.schemaName(), opts.tableName(), opts.Columns)
	if err != nil {
		return nil, err
	}

	conn, err := database.Open(database.Config{
		ConnString: opts.ConnString,
		MaxConns:   opts.MaxConns,
		SSLMode:    opts.SSLMode,
	})
	if err != nil {
		return nil, errors.NewConfigurationError("conn_string", err.Error())
	}

	s := &Sink{
		opts:   opts,
		def:    def,
		bus:    events.NewBus(),
		db:     conn.DB(),
		conn:   conn,
		logs:   persistence.NewLogRepository(conn.DB()),
		reads:  persistence.NewQueryRepository(conn.DB()),
		ownsDB: true,
	}

	if err := s.ensureTable(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}

	if err := s.startRetention(); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// NewWithDB builds a Sink over an existing pool. A Silent sink ignores
// the pool entirely, same as New; the pool is not closed by Close.
func NewWithDB(db *sql.DB, opts Options) (*Sink, error) {
	if opts.Silent {
		return newSilent(opts)
	}

	def, err := schema.NewTableDefinition(opts.schemaName(), opts.tableName(), opts.Columns)
	if err != nil {
		return nil, err
	}

	s := &Sink{
		opts:  opts,
		def:   def,
		bus:   events.NewBus(),
		db:    db,
		logs:  persistence.NewLogRepository(db),
		reads: persistence.NewQueryRepository(db),
	}

	if err := s.ensureTable(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

// newSilent constructs a sink that never touches a database
func newSilent(opts Options) (*Sink, error) {
	def, err := schema.NewTableDefinition(opts.schemaName(), opts.tableName(), opts.Columns)
	if err != nil {
		return nil, err
	}
	return &Sink{opts: opts, def: def, bus: events.NewBus()}, nil
}

func (s *Sink) ensureTable(ctx context.Context) error {
	repo := persistence.NewSchemaRepository(s.db)
	if err := repo.EnsureTable(ctx, s.def); err != nil {
		return errors.NewSchemaError(s.def.Name, err)
	}
	return nil
}

// Write persists one log record.
//
// Under a silent configuration it returns immediately with no database
// interaction and no event. Otherwise the record is hydrated and
// inserted through one pooled connection; success emits a "logged"
// event carrying the original record, failure emits an "error" event
// and returns a WriteError wrapping the database cause. The returned
// error is the exactly-once completion signal for the call.
func (s *Sink) Write(ctx context.Context, rec schema.Record) error {
	if s.opts.Silent {
		return nil
	}

	if err := s.logs.Insert(ctx, s.def, rec, s.opts.Timezone); err != nil {
		s.bus.Emit(events.Error, err)
		return errors.NewWriteError(s.def.Name, err)
	}

	s.bus.Emit(events.Logged, rec)
	return nil
}

// Query serves a declarative read request. Unpaginated requests return
// the plain rows and a nil page; paginated requests also return the
// assembled page with the filter-wide total.
func (s *Sink) Query(ctx context.Context, req query.Request) ([]query.Row, *query.Page, error) {
	if s.reads == nil {
		return nil, nil, errors.NewConfigurationError("silent", "sink was constructed without a database")
	}

	rows, page, err := s.reads.Find(ctx, s.def, req)
	if err != nil {
		if errors.IsValidation(err) {
			return nil, nil, err
		}
		return nil, nil, errors.NewReadError(s.def.Name, err)
	}
	return rows, page, nil
}

// Events exposes the sink's event bus for "logged"/"error" subscribers
func (s *Sink) Events() *events.Bus {
	return s.bus
}

// Table returns the immutable table definition
func (s *Sink) Table() *schema.TableDefinition {
	return s.def
}

// Level returns the advertised minimum log level
func (s *Sink) Level() string {
	return s.opts.level()
}

// Close stops the retention sweeper and, when the sink owns the pool,
// closes it.
func (s *Sink) Close() error {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}
	if s.ownsDB && s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
