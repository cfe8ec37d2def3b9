// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
package query

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBJECT AVERAGES
// ══════════════════════════════════════════════════════════════════════════════

// SubjectAverage is one subject's mean grade.
type SubjectAverage struct {
	Subject student.Subject
	Average float64
}

// SubjectAverages holds the per-subject means in report order (English, Math).
type SubjectAverages []SubjectAverage

// ComputeSubjectAverages sums each subject over all records and divides by
// the number of records. An empty list is an error, not a division by zero.
func ComputeSubjectAverages(records []*student.Record) (SubjectAverages, error) {
	if len(records) == 0 {
		return nil, shared.ErrNoStudents
	}

	subjects := student.Subjects()
	out := make(SubjectAverages, 0, len(subjects))
	for _, subject := range subjects {
		values := make(stats.Float64Data, 0, len(records))
		for _, r := range records {
			g, err := r.GradeFor(subject)
			if err != nil {
				return nil, err
			}
			values = append(values, g.Float64())
		}

		mean, err := stats.Mean(values)
		if err != nil {
			return nil, fmt.Errorf("%s average: %w", subject, err)
		}
		out = append(out, SubjectAverage{Subject: subject, Average: mean})
	}

	return out, nil
}

// ComputeOverallAverage returns the mean of the subject averages.
func ComputeOverallAverage(avgs SubjectAverages) float64 {
	if len(avgs) == 0 {
		return 0
	}
	values := make(stats.Float64Data, 0, len(avgs))
	for _, sa := range avgs {
		values = append(values, sa.Average)
	}
	// stats.Mean only fails on empty input, ruled out above.
	mean, _ := stats.Mean(values)
	return mean
}

// ══════════════════════════════════════════════════════════════════════════════
// FAILING COUNTS
// ══════════════════════════════════════════════════════════════════════════════

// FailingEntry is the failing-grade count reported under one key.
type FailingEntry struct {
	Key   string
	Count int
}

// FailingCounts is an insertion-ordered key -> count mapping plus the total
// over every record.
//
// Keyed by name (the default), a later record with the same name replaces the
// earlier count but keeps the earlier position, while Total still includes
// both. Collisions lists each name that was overwritten.
type FailingCounts struct {
	Entries    []FailingEntry
	Total      int
	Collisions []string
}

// FailingCountOptions tweaks how records are keyed.
type FailingCountOptions struct {
	// KeyByIndex keys entries as "name (#n)" with n the 1-based entry position.
	KeyByIndex bool
}

// IndexedKey is the key used when FailingCountOptions.KeyByIndex is set.
func IndexedKey(name string, index int) string {
	return fmt.Sprintf("%s (#%d)", name, index)
}

// ComputeFailingCounts counts grades at or below student.FailingGrade.
func ComputeFailingCounts(records []*student.Record, opts FailingCountOptions) FailingCounts {
	var result FailingCounts
	position := make(map[string]int, len(records))
	collided := make(map[string]bool)

	for i, r := range records {
		key := r.Name()
		if opts.KeyByIndex {
			key = IndexedKey(r.Name(), i+1)
		}

		count := r.FailingCount()
		if pos, ok := position[key]; ok {
			result.Entries[pos].Count = count
			if !collided[key] {
				collided[key] = true
				result.Collisions = append(result.Collisions, key)
			}
		} else {
			position[key] = len(result.Entries)
			result.Entries = append(result.Entries, FailingEntry{Key: key, Count: count})
		}
		result.Total += count
	}

	return result
}

// ══════════════════════════════════════════════════════════════════════════════
// FULL REPORT
// ══════════════════════════════════════════════════════════════════════════════

// StudentSummary is one line of the student section.
type StudentSummary struct {
	Name      string
	BestGrade student.Grade
	Average   float64
}

// Report is everything the console report prints.
type Report struct {
	Students        []StudentSummary
	SubjectAverages SubjectAverages
	OverallAverage  float64
	Failing         FailingCounts
}

// ReportOptions configures BuildReport.
type ReportOptions struct {
	Failing FailingCountOptions
}

// BuildReport computes every section of the report. It does not modify records.
func BuildReport(records []*student.Record, opts ReportOptions) (*Report, error) {
	avgs, err := ComputeSubjectAverages(records)
	if err != nil {
		return nil, err
	}

	summaries := make([]StudentSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, StudentSummary{
			Name:      r.Name(),
			BestGrade: r.BestGrade(),
			Average:   r.Average(),
		})
	}

	return &Report{
		Students:        summaries,
		SubjectAverages: avgs,
		OverallAverage:  ComputeOverallAverage(avgs),
		Failing:         ComputeFailingCounts(records, opts.Failing),
	}, nil
}
