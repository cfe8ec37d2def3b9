package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPORT PRESENTER
// Formats the grade report: student lines, subject averages, overall
// average, failing counts, failing total. Formatting only, no arithmetic.
// ══════════════════════════════════════════════════════════════════════════════

// ReportPresenter writes a query.Report as plain text.
type ReportPresenter struct {
	out io.Writer
}

// NewReportPresenter creates a presenter writing to out.
func NewReportPresenter(out io.Writer) *ReportPresenter {
	return &ReportPresenter{out: out}
}

// Render writes the formatted report.
func (p *ReportPresenter) Render(report *query.Report) error {
	if _, err := io.WriteString(p.out, p.Format(report)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Format returns the report text. Every line ends with a newline.
func (p *ReportPresenter) Format(report *query.Report) string {
	var sb strings.Builder

	p.formatStudents(&sb, report.Students)
	p.formatSubjectAverages(&sb, report.SubjectAverages)

	fmt.Fprintf(&sb, "\nOverall average grade across all subjects: %.2f\n", report.OverallAverage)

	p.formatFailing(&sb, report.Failing)

	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// SECTIONS
// ─────────────────────────────────────────────────────────────────────────────

func (p *ReportPresenter) formatStudents(sb *strings.Builder, students []query.StudentSummary) {
	sb.WriteString("\nStudent Information: \n")
	for _, s := range students {
		fmt.Fprintf(sb, "\nStudent: %s, Best Grade: %s, Average Grade: %s\n",
			s.Name, s.BestGrade, student.FormatDecimal(s.Average))
	}
}

func (p *ReportPresenter) formatSubjectAverages(sb *strings.Builder, avgs query.SubjectAverages) {
	sb.WriteString("\nAverage grades per subject:\n")
	for _, sa := range avgs {
		fmt.Fprintf(sb, "%s: %.2f\n", sa.Subject, sa.Average)
	}
}

func (p *ReportPresenter) formatFailing(sb *strings.Builder, failing query.FailingCounts) {
	sb.WriteString("\nFailing grades per student:\n")
	for _, e := range failing.Entries {
		fmt.Fprintf(sb, "%s: %d failing grade(s)\n", e.Key, e.Count)
	}
	fmt.Fprintf(sb, "\nTotal number of failing grades across all students: %d\n", failing.Total)
}
