package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	brandpdf "github.com/alnah/go-brandpdf"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWritePDF     = errors.New("failed to write PDF file")
)

// stampFormat is the batch timestamp layout (YYYYMMDD-HHmm). One stamp is
// computed at batch start and shared by every output, so a batch produces
// a cohesive, sortable set.
const stampFormat = "20060102-1504"

// Generator is the interface the batch driver needs from the service.
type Generator interface {
	Generate(ctx context.Context, input brandpdf.Input) (*brandpdf.Result, error)
}

// batchService is the full service surface run owns for one batch.
type batchService interface {
	Generator
	Close() error
}

// Compile-time interface implementation check.
var _ batchService = (*brandpdf.Service)(nil)

// newService builds the generation service for one batch. Tests swap it to
// drive run without a browser.
var newService = func(brand brandpdf.BrandConfig, opts ...brandpdf.Option) (batchService, error) {
	return brandpdf.New(brand, opts...)
}

// BatchResult accumulates per-file outcomes across one invocation.
type BatchResult struct {
	TotalFiles int
	Succeeded  int
	Failed     int
}

// runBatch processes files strictly one at a time. The page-rendering
// service spawns its own browser per invocation, so sequential processing
// trades throughput for predictable resource usage. One file's failure
// never aborts the batch.
func runBatch(ctx context.Context, svc Generator, files []string, flags *cliFlags, stamp string, logger zerolog.Logger) BatchResult {
	result := BatchResult{TotalFiles: len(files)}

	for _, inputPath := range files {
		if ctx.Err() != nil {
			result.Failed += result.TotalFiles - result.Succeeded - result.Failed
			logger.Error().Err(ctx.Err()).Msg("batch canceled")
			break
		}

		start := time.Now()
		if err := processFile(ctx, svc, inputPath, flags, stamp); err != nil {
			result.Failed++
			logger.Error().Err(err).Str("file", inputPath).Msg("conversion failed")
			continue
		}
		result.Succeeded++
		logger.Info().Str("file", inputPath).Dur("took", time.Since(start)).Msg("converted")
	}

	return result
}

// processFile runs the pipeline for one file and writes its outputs.
// No partial PDF is ever written: the file appears only after the whole
// rendering step succeeded.
func processFile(ctx context.Context, svc Generator, inputPath string, flags *cliFlags, stamp string) error {
	content, err := os.ReadFile(inputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	result, err := svc.Generate(ctx, brandpdf.Input{
		Markdown: string(content),
		HTMLOnly: false,
	})
	if err != nil {
		return err
	}

	outPath := outputPath(inputPath, flags.output, stamp, "pdf")
	if err := writeOutput(outPath, result.PDF); err != nil {
		return err
	}

	if flags.html {
		htmlPath := strings.TrimSuffix(outPath, ".pdf") + ".html"
		if err := writeOutput(htmlPath, []byte(result.HTML)); err != nil {
			return err
		}
	}

	return nil
}

// writeOutput writes an artifact, creating the output directory if needed.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWritePDF, err)
		}
	}
	// #nosec G306 -- output files are intended to be readable
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}
