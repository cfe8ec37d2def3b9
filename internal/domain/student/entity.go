// Package student contains the grade record domain model.
// This is the core of the business logic - there are no external dependencies here.
package student

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alem-hub/gradebook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONSTANTS
// ══════════════════════════════════════════════════════════════════════════════

const (
	// FailingGrade - a grade at or below this value is failing.
	FailingGrade Grade = 55

	// GradeLowerBound and GradeUpperBound are exclusive.
	GradeLowerBound Grade = 1
	GradeUpperBound Grade = 101

	// MinStudents - a report needs at least one student.
	MinStudents = 1
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Subject is one of the two graded subjects.
type Subject string

const (
	SubjectEnglish Subject = "English"
	SubjectMath    Subject = "Math"
)

// Subjects returns all subjects in report order.
func Subjects() []Subject {
	return []Subject{SubjectEnglish, SubjectMath}
}

// IsValid reports whether s is a known subject.
func (s Subject) IsValid() bool {
	return s == SubjectEnglish || s == SubjectMath
}

// String returns the subject label.
func (s Subject) String() string {
	return string(s)
}

// Grade is a subject grade.
type Grade float64

// IsValid checks 1 < g < 101.
func (g Grade) IsValid() bool {
	return g > GradeLowerBound && g < GradeUpperBound
}

// IsFailing reports whether the grade is at or below FailingGrade.
func (g Grade) IsFailing() bool {
	return g <= FailingGrade
}

// Float64 returns the underlying value.
func (g Grade) Float64() float64 {
	return float64(g)
}

// String renders the grade in its shortest exact decimal form.
// Integral values keep a trailing ".0" so 90 prints as "90.0".
func (g Grade) String() string {
	return FormatDecimal(float64(g))
}

// NewGrade creates a Grade with range validation.
func NewGrade(v float64) (Grade, error) {
	g := Grade(v)
	if !g.IsValid() {
		return 0, shared.WrapError("student", "NewGrade", shared.ErrGradeOutOfRange,
			"invalid grade", fmt.Errorf("got %v", v))
	}
	return g, nil
}

// FormatDecimal formats v with the fewest digits that round-trip and
// always shows a fractional part.
func FormatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record is one student's name plus English and Math grades.
// Records are immutable once created.
type Record struct {
	id      string
	name    string
	english Grade
	math    Grade
}

// NewRecordParams contains the parameters for creating a record.
type NewRecordParams struct {
	ID      string
	Name    string
	English Grade
	Math    Grade
}

// NewRecord creates a record, validating both grades.
// The name is stored verbatim: empty and duplicate names are allowed.
func NewRecord(params NewRecordParams) (*Record, error) {
	if params.ID == "" {
		return nil, shared.ErrMissingRecordID
	}
	if !params.English.IsValid() {
		return nil, shared.WrapError("student", "NewRecord", shared.ErrGradeOutOfRange,
			"invalid English grade", fmt.Errorf("got %v", float64(params.English)))
	}
	if !params.Math.IsValid() {
		return nil, shared.WrapError("student", "NewRecord", shared.ErrGradeOutOfRange,
			"invalid Math grade", fmt.Errorf("got %v", float64(params.Math)))
	}

	return &Record{
		id:      params.ID,
		name:    params.Name,
		english: params.English,
		math:    params.Math,
	}, nil
}

// ID returns the synthetic record identifier.
func (r *Record) ID() string { return r.id }

// Name returns the student name as entered.
func (r *Record) Name() string { return r.name }

// English returns the English grade.
func (r *Record) English() Grade { return r.english }

// Math returns the Math grade.
func (r *Record) Math() Grade { return r.math }

// GradeFor returns the grade for the given subject.
func (r *Record) GradeFor(subject Subject) (Grade, error) {
	switch subject {
	case SubjectEnglish:
		return r.english, nil
	case SubjectMath:
		return r.math, nil
	default:
		return 0, shared.ErrInvalidSubject
	}
}

// BestGrade returns the higher of the two grades.
// On a tie the Math grade is returned, which is the same value.
func (r *Record) BestGrade() Grade {
	if r.english > r.math {
		return r.english
	}
	return r.math
}

// Average returns the arithmetic mean of the two grades.
func (r *Record) Average() float64 {
	return (float64(r.english) + float64(r.math)) / float64(len(Subjects()))
}

// FailingCount returns how many of the two grades are failing (0-2).
func (r *Record) FailingCount() int {
	count := 0
	if r.english.IsFailing() {
		count++
	}
	if r.math.IsFailing() {
		count++
	}
	return count
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT COUNT
// ══════════════════════════════════════════════════════════════════════════════

// ValidateCount checks that a report covers at least MinStudents.
func ValidateCount(n int) error {
	if n < MinStudents {
		return shared.ErrStudentCountTooLow
	}
	return nil
}
