package sink

import (
	"context"
	"log"

	"github.com/logpile/logpile/pkg/errors"
	"github.com/robfig/cron/v3"
)

// startRetention schedules the periodic sweep of expired rows when an
// interval is configured. The sweep is operational plumbing, so unlike
// the write path it does log its own failures.
func (s *Sink) startRetention() error {
	interval := s.opts.Retention.Interval
	if interval == "" {
		return nil
	}

	column := s.opts.Retention.Column
	if column == "" {
		column = DefaultRetentionColumn
	}
	if _, ok := s.def.Column(column); !ok {
		return errors.NewConfigurationError("retention.column", "retention column is not declared on the table")
	}

	schedule := s.opts.Retention.Schedule
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}

	s.sweeper = cron.New()
	if _, err := s.sweeper.AddFunc(schedule, func() {
		removed, err := s.logs.PruneBefore(context.Background(), s.def, column, interval)
		if err != nil {
			log.Printf("retention sweep of %s failed: %v", s.def.Name, err)
			return
		}
		if removed > 0 {
			log.Printf("retention sweep removed %d rows from %s", removed, s.def.Name)
		}
	}); err != nil {
		return errors.NewConfigurationError("retention.schedule", err.Error())
	}

	s.sweeper.Start()
	return nil
}
