package sink

import (
	"github.com/logpile/logpile/pkg/schema"
)

// Defaults applied when the corresponding option is zero
const (
	DefaultSchema            = "public"
	DefaultTable             = "logs"
	DefaultLevel             = "info"
	DefaultRetentionColumn   = schema.ColumnCreatedAt
	DefaultRetentionSchedule = "@hourly"
)

// Options configures a Sink.
type Options struct {
	// ConnString is the postgres connection string. Required unless
	// Silent is set.
	ConnString string
	// MaxConns bounds the shared connection pool
	MaxConns int
	// SSLMode overrides sslmode when the connection string omits it
	SSLMode string
	// Schema and Table name the target log table
	Schema string
	Table  string
	// Columns declares the table shape; empty selects the default
	// log columns
	Columns []schema.ColumnDefinition
	// Timezone, when set, qualifies timestamp expressions with
	// AT TIME ZONE. The string is spliced into the statement verbatim:
	// it is trusted configuration and must never carry caller input.
	Timezone string
	// Level is the minimum log level the sink advertises. Filtering on
	// it is the fronting leveled logger's job, not the sink's.
	Level string
	// Silent short-circuits every write to immediate success with no
	// database interaction at all.
	Silent bool
	// Retention enables the periodic sweep when Interval is set
	Retention RetentionOptions
}

// RetentionOptions configures the periodic deletion of expired rows
type RetentionOptions struct {
	// Interval is a postgres interval literal ("30 days", "12 hours").
	// Empty disables the sweeper.
	Interval string
	// Column is the timestamp column compared against; defaults to
	// created_at.
	Column string
	// Schedule is a cron spec; defaults to @hourly.
	Schedule string
}

func (o Options) schemaName() string {
	if o.Schema == "" {
		return DefaultSchema
	}
	return o.Schema
}

func (o Options) tableName() string {
	if o.Table == "" {
		return DefaultTable
	}
	return o.Table
}

func (o Options) level() string {
	if o.Level == "" {
		return DefaultLevel
	}
	return o.Level
}
