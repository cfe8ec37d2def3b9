// Package student contains the grade record domain model.
//
// The package defines:
//
//   - Entities: Record (one student's name and two subject grades)
//   - Value Objects: Grade, Subject
//   - Constants: FailingGrade, GradeLowerBound, GradeUpperBound, MinStudents
//
// # Architecture
//
//  1. Zero external dependencies - standard library plus the shared domain package
//  2. Records are immutable: fields are only reachable through accessors
//  3. Validation lives in the value objects (Grade.IsValid, ValidateCount)
//
// # Grades
//
// A grade is accepted only when it lies strictly between 1 and 101, so both
// 1 and 101 are rejected. A grade at or below 55 is failing:
//
//	g, err := NewGrade(55)      // ok
//	g.IsFailing()               // true
//	_, err = NewGrade(101)      // errors.Is(err, shared.ErrValueOutOfRange)
//
// # Records
//
// The caller supplies the identifier, the domain never generates one:
//
//	rec, err := NewRecord(NewRecordParams{
//	    ID:      uuid.New().String(),
//	    Name:    "Aru",
//	    English: 90,
//	    Math:    40,
//	})
//	rec.BestGrade()    // 90
//	rec.Average()      // 65
//	rec.FailingCount() // 1
//
// Names are not validated. Empty names and duplicates are both allowed.
package student
