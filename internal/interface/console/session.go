package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alem-hub/gradebook/internal/application/command"
	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// SessionOptions switches the opt-in behaviours of one run.
type SessionOptions struct {
	Validator ValidatorOptions
	Report    query.ReportOptions
}

// Session runs one interactive grade report: ask for the student count,
// collect every student, then print the report.
type Session struct {
	validator *Validator
	collector *command.CollectStudentsHandler
	presenter *ReportPresenter
	opts      SessionOptions
	log       *logger.Logger
}

// NewSession wires a session reading from in and writing prompts and the
// report to out.
func NewSession(in io.Reader, out io.Writer, opts SessionOptions, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	validator := NewValidator(in, out, opts.Validator, log)
	return &Session{
		validator: validator,
		collector: command.NewCollectStudentsHandler(validator, out, log),
		presenter: NewReportPresenter(out),
		opts:      opts,
		log:       log.With(logger.Component("session")),
	}
}

// WithIDGenerator replaces the record ID source (tests use fixed IDs).
func (s *Session) WithIDGenerator(gen command.IDGenerator) *Session {
	s.collector.WithIDGenerator(gen)
	return s
}

// Run executes the session. Invalid input is re-prompted and never returned;
// end of input and context cancellation are.
func (s *Session) Run(ctx context.Context) error {
	started := time.Now()

	count, err := s.validator.PromptPositiveInteger(ctx)
	if err != nil {
		return fmt.Errorf("number of students: %w", err)
	}
	s.log.Info("session started", logger.StudentCount(count))

	records, err := s.collector.CollectAll(ctx, count)
	if err != nil {
		return fmt.Errorf("collect students: %w", err)
	}

	report, err := query.BuildReport(records, s.opts.Report)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if len(report.Failing.Collisions) > 0 {
		s.log.Warn("duplicate student names share one failing-count entry",
			logger.Strings("names", report.Failing.Collisions),
			logger.Int("total_failing", report.Failing.Total),
		)
	}

	if err := s.presenter.Render(report); err != nil {
		return err
	}

	s.log.Info("session finished",
		logger.StudentCount(len(records)),
		logger.FailingTotal(report.Failing.Total),
		logger.Float64("overall_average", report.OverallAverage),
		logger.Latency(time.Since(started)),
	)
	return nil
}
