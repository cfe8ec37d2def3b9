package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

func TestReportPresenter_Format(t *testing.T) {
	report := &query.Report{
		Students: []query.StudentSummary{
			{Name: "A", BestGrade: 90, Average: 65},
			{Name: "B", BestGrade: 60, Average: 55},
		},
		SubjectAverages: query.SubjectAverages{
			{Subject: student.SubjectEnglish, Average: 70},
			{Subject: student.SubjectMath, Average: 50},
		},
		OverallAverage: 60,
		Failing: query.FailingCounts{
			Entries: []query.FailingEntry{{Key: "A", Count: 1}, {Key: "B", Count: 1}},
			Total:   2,
		},
	}

	expected := "\nStudent Information: \n" +
		"\nStudent: A, Best Grade: 90.0, Average Grade: 65.0\n" +
		"\nStudent: B, Best Grade: 60.0, Average Grade: 55.0\n" +
		"\nAverage grades per subject:\n" +
		"English: 70.00\n" +
		"Math: 50.00\n" +
		"\nOverall average grade across all subjects: 60.00\n" +
		"\nFailing grades per student:\n" +
		"A: 1 failing grade(s)\n" +
		"B: 1 failing grade(s)\n" +
		"\nTotal number of failing grades across all students: 2\n"

	p := NewReportPresenter(nil)
	assert.Equal(t, expected, p.Format(report))

	var buf bytes.Buffer
	require.NoError(t, NewReportPresenter(&buf).Render(report))
	assert.Equal(t, expected, buf.String())
}

func TestReportPresenter_Rounding(t *testing.T) {
	report := &query.Report{
		Students: []query.StudentSummary{
			{Name: "C", BestGrade: 66.7, Average: 50.05},
		},
		SubjectAverages: query.SubjectAverages{
			{Subject: student.SubjectEnglish, Average: 100.0 / 3},
			{Subject: student.SubjectMath, Average: 66.665},
		},
		OverallAverage: 49.999,
	}

	out := NewReportPresenter(nil).Format(report)
	assert.Contains(t, out, "Best Grade: 66.7, Average Grade: 50.05\n")
	assert.Contains(t, out, "English: 33.33\n")
	assert.Contains(t, out, "Overall average grade across all subjects: 50.00\n")
	assert.Contains(t, out, "Total number of failing grades across all students: 0\n")
}
