// Package command contains write operations following CQRS pattern.
// Commands gather input and create domain entities.
package command

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLLECT STUDENTS COMMAND
// Prompts for every student's name and grades, in entry order.
// ══════════════════════════════════════════════════════════════════════════════

// Prompter is the input side the collector needs. The console Validator
// implements it; invalid input is handled (re-prompted) inside the Prompter,
// so only end of input or cancellation comes back as an error.
type Prompter interface {
	PromptName(ctx context.Context) (string, error)
	PromptGradeInRange(ctx context.Context, subject student.Subject) (student.Grade, error)
}

// IDGenerator produces record identifiers.
type IDGenerator func() string

// NewUUID is the default IDGenerator.
func NewUUID() string {
	return uuid.New().String()
}

// CollectStudentsHandler collects student records.
type CollectStudentsHandler struct {
	prompter Prompter
	out      io.Writer
	newID    IDGenerator
	log      *logger.Logger
}

// NewCollectStudentsHandler creates a new handler. Section headers
// ("Enter details for student N:") are written to out.
func NewCollectStudentsHandler(prompter Prompter, out io.Writer, log *logger.Logger) *CollectStudentsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CollectStudentsHandler{
		prompter: prompter,
		out:      out,
		newID:    NewUUID,
		log:      log.With(logger.Component("collector")),
	}
}

// WithIDGenerator replaces the record ID source.
func (h *CollectStudentsHandler) WithIDGenerator(gen IDGenerator) *CollectStudentsHandler {
	if gen != nil {
		h.newID = gen
	}
	return h
}

// CollectStudent prompts for a name, then the English and Math grades.
func (h *CollectStudentsHandler) CollectStudent(ctx context.Context) (*student.Record, error) {
	name, err := h.prompter.PromptName(ctx)
	if err != nil {
		return nil, fmt.Errorf("student name: %w", err)
	}

	grades := make(map[student.Subject]student.Grade, len(student.Subjects()))
	for _, subject := range student.Subjects() {
		g, err := h.prompter.PromptGradeInRange(ctx, subject)
		if err != nil {
			return nil, fmt.Errorf("%s grade: %w", subject, err)
		}
		grades[subject] = g
	}

	rec, err := student.NewRecord(student.NewRecordParams{
		ID:      h.newID(),
		Name:    name,
		English: grades[student.SubjectEnglish],
		Math:    grades[student.SubjectMath],
	})
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	h.log.Debug("student collected",
		logger.RecordID(rec.ID()),
		logger.StudentName(rec.Name()),
		logger.Float64("english", rec.English().Float64()),
		logger.Float64("math", rec.Math().Float64()),
	)

	return rec, nil
}

// CollectAll collects count students, announcing each one first.
// Records are returned in entry order.
func (h *CollectStudentsHandler) CollectAll(ctx context.Context, count int) ([]*student.Record, error) {
	if err := student.ValidateCount(count); err != nil {
		return nil, shared.WrapError("command", "CollectAll", shared.ErrValueOutOfRange,
			"cannot collect students", err)
	}

	// count is user input and may be huge; grow as students arrive.
	var records []*student.Record
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		if _, err := fmt.Fprintf(h.out, "Enter details for student %d:\n", i); err != nil {
			return records, fmt.Errorf("write header: %w", err)
		}

		rec, err := h.CollectStudent(ctx)
		if err != nil {
			h.log.Debug("collection stopped", logger.StudentIndex(i), logger.Err(err))
			return records, fmt.Errorf("student %d: %w", i, err)
		}
		h.log.Debug("student added", logger.StudentIndex(i), logger.RecordID(rec.ID()))
		records = append(records, rec)
	}

	h.log.Info("students collected", logger.StudentCount(len(records)))
	return records, nil
}
