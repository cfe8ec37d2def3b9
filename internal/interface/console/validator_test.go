package console

import (
	"bytes"
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
)

func newTestValidator(input string, opts ValidatorOptions) (*Validator, *bytes.Buffer) {
	var out bytes.Buffer
	return NewValidator(strings.NewReader(input), &out, opts, nil), &out
}

func TestPromptNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		asInteger bool
		want      float64
		wantErr   error
	}{
		{name: "float", input: "72.5\n", want: 72.5},
		{name: "float from integer text", input: "80\n", want: 80},
		{name: "surrounding spaces", input: "  64 \n", want: 64},
		{name: "windows line ending", input: "3\r\n", asInteger: true, want: 3},
		{name: "integer", input: "12\n", asInteger: true, want: 12},
		{name: "integer rejects fraction", input: "2.5\n", asInteger: true, wantErr: shared.ErrConversion},
		{name: "text", input: "abc\n", wantErr: shared.ErrConversion},
		{name: "underscore separators rejected", input: "1_0\n", wantErr: shared.ErrConversion},
		{name: "integer underscore separators rejected", input: "1_0\n", asInteger: true, wantErr: shared.ErrConversion},
		{name: "empty line", input: "\n", wantErr: shared.ErrConversion},
		{name: "last line without newline", input: "41", want: 41},
		{name: "no input", input: "", wantErr: shared.ErrEndOfInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, out := newTestValidator(tt.input, ValidatorOptions{})

			got, err := v.PromptNumber(context.Background(), "Value: ", tt.asInteger)
			assert.Equal(t, "Value: ", out.String())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptGradeInRange_RetriesWithMergedHint(t *testing.T) {
	v, out := newTestValidator("abc\n1\n101\n0\n55\n", ValidatorOptions{})

	g, err := v.PromptGradeInRange(context.Background(), student.SubjectEnglish)
	require.NoError(t, err)
	assert.Equal(t, student.Grade(55), g)

	expected := strings.Repeat("Enter English grade: Expected a number\n", 4) + "Enter English grade: "
	assert.Equal(t, expected, out.String())
}

func TestPromptGradeInRange_MathPrompt(t *testing.T) {
	v, out := newTestValidator("100.5\n", ValidatorOptions{})

	g, err := v.PromptGradeInRange(context.Background(), student.SubjectMath)
	require.NoError(t, err)
	assert.Equal(t, student.Grade(100.5), g)
	assert.Equal(t, "Enter Math grade: ", out.String())
}

func TestPromptGradeInRange_DistinctRangeMessage(t *testing.T) {
	v, out := newTestValidator("abc\n150\n70\n", ValidatorOptions{DistinctRangeMessage: true})

	_, err := v.PromptGradeInRange(context.Background(), student.SubjectMath)
	require.NoError(t, err)

	assert.Equal(t,
		"Enter Math grade: Expected a number\n"+
			"Enter Math grade: Expected a number between 1 and 101 (exclusive)\n"+
			"Enter Math grade: ",
		out.String())
}

func TestPromptGradeInRange_EndOfInput(t *testing.T) {
	v, _ := newTestValidator("nope\n", ValidatorOptions{})

	_, err := v.PromptGradeInRange(context.Background(), student.SubjectEnglish)
	assert.ErrorIs(t, err, shared.ErrEndOfInput)
}

func TestPromptGradeInRange_UnknownSubject(t *testing.T) {
	v, out := newTestValidator("50\n", ValidatorOptions{})

	_, err := v.PromptGradeInRange(context.Background(), "History")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Empty(t, out.String())
}

func TestPromptPositiveInteger(t *testing.T) {
	v, out := newTestValidator("zero\n0\n-4\n1.5\n3\n", ValidatorOptions{})

	n, err := v.PromptPositiveInteger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	expected := strings.Repeat("Enter the number of students: Expected a positive integer\n", 4) +
		"Enter the number of students: "
	assert.Equal(t, expected, out.String())
}

func TestPromptPositiveInteger_LargestInt(t *testing.T) {
	tests := []int{math.MaxInt, math.MaxInt - 1, math.MaxInt - 511}

	for _, want := range tests {
		v, out := newTestValidator(strconv.Itoa(want)+"\n5\n", ValidatorOptions{})

		n, err := v.PromptPositiveInteger(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, n)
		assert.Equal(t, "Enter the number of students: ", out.String())
	}
}

func TestPromptPositiveInteger_BeyondIntIsRejected(t *testing.T) {
	v, out := newTestValidator("99999999999999999999\n2\n", ValidatorOptions{})

	n, err := v.PromptPositiveInteger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t,
		"Enter the number of students: Expected a positive integer\nEnter the number of students: ",
		out.String())
}

func TestPromptGradeInRange_UnderscoreSeparatorRejected(t *testing.T) {
	v, out := newTestValidator("7_0\n70\n", ValidatorOptions{})

	g, err := v.PromptGradeInRange(context.Background(), student.SubjectEnglish)
	require.NoError(t, err)
	assert.Equal(t, student.Grade(70), g)
	assert.Equal(t, "Enter English grade: Expected a number\nEnter English grade: ", out.String())
}

func TestPromptPositiveInteger_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, out := newTestValidator("3\n", ValidatorOptions{})
	_, err := v.PromptPositiveInteger(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestPromptName_StripsOneTerminator(t *testing.T) {
	v, _ := newTestValidator("Aru\r\r\nBek\n\nlast\r", ValidatorOptions{})

	var names []string
	for i := 0; i < 4; i++ {
		name, err := v.PromptName(context.Background())
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"Aru\r", "Bek", "", "last"}, names)
}

func TestPromptName(t *testing.T) {
	v, out := newTestValidator("  Aru Bek \n\n", ValidatorOptions{})

	name, err := v.PromptName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "  Aru Bek ", name)

	empty, err := v.PromptName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	_, err = v.PromptName(context.Background())
	assert.ErrorIs(t, err, shared.ErrEndOfInput)

	assert.Equal(t, strings.Repeat("Enter student name: ", 3), out.String())
}
