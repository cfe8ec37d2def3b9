// Package console is the interactive terminal interface: it prompts for input,
// re-prompts on invalid values, and prints the grade report.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/domain/student"
	"github.com/alem-hub/gradebook/pkg/logger"
	"github.com/alem-hub/gradebook/pkg/retry"
)

// Prompts and hints. Existing scripts match these byte for byte.
const (
	PromptStudentCount = "Enter the number of students: "
	PromptStudentName  = "Enter student name: "
	promptGradeFormat  = "Enter %s grade: "

	HintExpectedNumber          = "Expected a number"
	HintExpectedPositiveInteger = "Expected a positive integer"
	HintGradeOutOfRange         = "Expected a number between 1 and 101 (exclusive)"
)

// ValidatorOptions configures a Validator.
type ValidatorOptions struct {
	// DistinctRangeMessage prints HintGradeOutOfRange for grades that parse
	// but fall outside the range, instead of HintExpectedNumber.
	DistinctRangeMessage bool
}

// Validator reads lines from the input and keeps asking until the value is
// acceptable. It implements command.Prompter.
type Validator struct {
	in   *bufio.Reader
	out  io.Writer
	opts ValidatorOptions
	log  *logger.Logger
}

// NewValidator creates a Validator reading from in and prompting on out.
func NewValidator(in io.Reader, out io.Writer, opts ValidatorOptions, log *logger.Logger) *Validator {
	if log == nil {
		log = logger.Nop()
	}
	return &Validator{
		in:   bufio.NewReader(in),
		out:  out,
		opts: opts,
		log:  log.With(logger.Component("validator")),
	}
}

// readLine returns the next line without its terminator ("\n" or "\r\n").
// A final line with no trailing newline still counts; after that the input
// is exhausted.
func (v *Validator) readLine() (string, error) {
	line, err := v.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return trimTerminator(line), nil
			}
			return "", shared.ErrEndOfInput
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return trimTerminator(line), nil
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

func (v *Validator) write(s string) error {
	if _, err := io.WriteString(v.out, s); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	return nil
}

// ask writes message and returns the answer with surrounding whitespace
// removed.
func (v *Validator) ask(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := v.write(message); err != nil {
		return "", err
	}

	line, err := v.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptNumber writes message, reads one line and parses it as an integer
// (asInteger) or a float. Surrounding whitespace is ignored. Text that does
// not parse yields an error of kind shared.ErrConversion; nothing is retried
// here.
func (v *Validator) PromptNumber(ctx context.Context, message string, asInteger bool) (float64, error) {
	if asInteger {
		n, err := v.PromptInteger(ctx, message)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}

	text, err := v.ask(ctx, message)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, shared.WrapError("console", "PromptNumber", shared.ErrConversion,
			"expected a number", err)
	}
	return f, nil
}

// PromptInteger is PromptNumber for integers, without going through float64.
// Values that do not fit an int are conversion errors.
func (v *Validator) PromptInteger(ctx context.Context, message string) (int, error) {
	text, err := v.ask(ctx, message)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, shared.WrapError("console", "PromptInteger", shared.ErrConversion,
			"expected an integer", err)
	}
	return n, nil
}

// PromptGradeInRange asks for a subject grade until one strictly between 1
// and 101 is entered. Unparseable and out-of-range input print the same
// hint unless ValidatorOptions.DistinctRangeMessage is set.
func (v *Validator) PromptGradeInRange(ctx context.Context, subject student.Subject) (student.Grade, error) {
	if !subject.IsValid() {
		return 0, shared.ErrInvalidSubject
	}
	message := fmt.Sprintf(promptGradeFormat, subject)

	onRetry := func(attempt int, err error) {
		hint := HintExpectedNumber
		if v.opts.DistinctRangeMessage && errors.Is(err, shared.ErrValueOutOfRange) {
			hint = HintGradeOutOfRange
		}
		v.hint(hint, attempt, err, logger.Subject(subject.String()))
	}

	return retry.DoWithData(ctx, func(ctx context.Context) (student.Grade, error) {
		value, err := v.PromptNumber(ctx, message, false)
		if err != nil {
			return 0, classify(err)
		}
		grade, err := student.NewGrade(value)
		if err != nil {
			return 0, classify(err)
		}
		return grade, nil
	}, retry.PromptOptions(onRetry)...)
}

// PromptPositiveInteger asks for the number of students until an integer
// of at least 1 is entered.
func (v *Validator) PromptPositiveInteger(ctx context.Context) (int, error) {
	onRetry := func(attempt int, err error) {
		v.hint(HintExpectedPositiveInteger, attempt, err)
	}

	return retry.DoWithData(ctx, func(ctx context.Context) (int, error) {
		n, err := v.PromptInteger(ctx, PromptStudentCount)
		if err != nil {
			return 0, classify(err)
		}
		if err := student.ValidateCount(n); err != nil {
			return 0, classify(err)
		}
		return n, nil
	}, retry.PromptOptions(onRetry)...)
}

// classify marks rejected input for another prompt; anything else (end of
// input, write failures, cancellation) ends the loop.
func classify(err error) error {
	if shared.IsValidation(err) {
		return retry.Retryable(err)
	}
	return retry.Permanent(err)
}

// PromptName reads a student name. Any text is accepted, including an
// empty line.
func (v *Validator) PromptName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := v.write(PromptStudentName); err != nil {
		return "", err
	}
	return v.readLine()
}

func (v *Validator) hint(text string, attempt int, err error, fields ...logger.Field) {
	if werr := v.write(text + "\n"); werr != nil {
		v.log.Error("failed to write hint", logger.Err(werr))
	}
	v.log.Debug("input rejected", append(fields, logger.Attempt(attempt), logger.Err(err))...)
}
