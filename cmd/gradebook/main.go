// Package main is the entry point of the gradebook CLI.
//
// gradebook asks for a number of students, collects each student's name and
// English/Math grades from stdin, and prints a report: best and average grade
// per student, average per subject, overall average and failing grade counts.
//
// Only prompts and the report go to stdout. Logs go to stderr (or nowhere,
// LOG_OUTPUT=discard) so scripted runs can compare stdout byte for byte.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/alem-hub/gradebook/config"
	"github.com/alem-hub/gradebook/internal/application/query"
	"github.com/alem-hub/gradebook/internal/domain/shared"
	"github.com/alem-hub/gradebook/internal/interface/console"
	"github.com/alem-hub/gradebook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg).WithRunID(uuid.New().String())
	ctx = logger.WithContext(ctx, log)

	log.Debug("starting gradebook",
		logger.String("version", cfg.App.Version),
		logger.String("env", string(cfg.App.Environment)),
		logger.String("env_file", cfg.App.EnvFile),
		logger.Strings("features", cfg.Features.EnabledFeatures()),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. SESSION
	// ─────────────────────────────────────────────────────────────────────────
	session := console.NewSession(stdin, stdout, sessionOptions(cfg), log)

	if err := session.Run(ctx); err != nil {
		if shared.IsEndOfInput(err) {
			log.Warn("input ended before the report was complete", logger.Err(err))
		} else if !errors.Is(err, context.Canceled) {
			log.Error("session failed", logger.Err(err))
		}
		return err
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger builds the logger from the observability config.
func setupLogger(cfg *config.Config) *logger.Logger {
	var output io.Writer = os.Stderr
	if strings.EqualFold(cfg.Observability.LogOutput, "discard") {
		output = io.Discard
	}

	return logger.New(logger.Options{
		Output:    output,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		Format:    logger.ParseFormat(cfg.Observability.LogFormat),
		AddCaller: cfg.IsDevelopment(),
	}).With(logger.String("app", cfg.App.Name))
}

// sessionOptions maps feature flags onto the session.
func sessionOptions(cfg *config.Config) console.SessionOptions {
	return console.SessionOptions{
		Validator: console.ValidatorOptions{
			DistinctRangeMessage: cfg.Features.IsEnabled(config.FeaturePromptDistinctRangeMessage),
		},
		Report: query.ReportOptions{
			Failing: query.FailingCountOptions{
				KeyByIndex: cfg.Features.IsEnabled(config.FeatureReportKeyFailingByIndex),
			},
		},
	}
}
