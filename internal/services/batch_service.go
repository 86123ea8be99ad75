package services

import (
	"context"
	"fmt"
	"io"

	"hinglishgen/internal/models"
	"hinglishgen/internal/observability"
	"hinglishgen/internal/output"
	contextutils "hinglishgen/internal/utils"
)

// SampleGenerator produces one sample per call
type SampleGenerator interface {
	GenerateSample(ctx context.Context) (*models.Sample, error)
}

// BatchResult summarizes a completed batch
type BatchResult struct {
	Count int
	Path  string
	Bytes int64
}

// BatchService drives a generator N times and writes the samples as JSON Lines
type BatchService struct {
	generator SampleGenerator
	logger    *observability.Logger
}

// NewBatchServiceWithLogger creates a batch driver around generator
func NewBatchServiceWithLogger(generator SampleGenerator, logger *observability.Logger) *BatchService {
	return &BatchService{generator: generator, logger: logger}
}

// Run writes count samples to dest. The destination is checked for
// writability before the first sample is generated, and it only changes once
// every record has been written; on any failure the previous file (if any) is
// left untouched.
func (b *BatchService) Run(ctx context.Context, count int, dest string) (result *BatchResult, err error) {
	ctx, span := observability.TraceBatchFunction(ctx, "run",
		observability.AttributeCount(count),
		observability.AttributeOutputPath(dest),
	)
	defer observability.FinishSpan(span, &err)

	if err := validateCount(count); err != nil {
		return nil, err
	}

	f, err := output.Create(dest)
	if err != nil {
		return nil, err
	}
	defer f.Abort()

	n, err := b.Write(ctx, count, f)
	if err != nil {
		b.logger.Error(ctx, "Batch aborted, output discarded", err, map[string]interface{}{
			"written": n,
			"path":    dest,
		})
		return nil, err
	}

	if err := f.Commit(); err != nil {
		return nil, err
	}

	b.logger.Info(ctx, "Batch written", map[string]interface{}{
		"count": n,
		"path":  dest,
		"bytes": f.Written(),
	})
	return &BatchResult{Count: n, Path: dest, Bytes: f.Written()}, nil
}

// Write generates count samples and encodes them to w in generation order,
// returning how many records were written.
func (b *BatchService) Write(ctx context.Context, count int, w io.Writer) (int, error) {
	if err := validateCount(count); err != nil {
		return 0, err
	}

	enc := output.NewJSONLEncoder(w)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return enc.Lines(), contextutils.WrapErrorf(contextutils.ErrInternalError, "generation interrupted: %w", err)
		}
		sample, err := b.generator.GenerateSample(ctx)
		if err != nil {
			return enc.Lines(), err
		}
		if err := enc.Encode(sample); err != nil {
			if contextutils.IsError(err, contextutils.ErrEncodingFailed) {
				return enc.Lines(), err
			}
			return enc.Lines(), contextutils.WrapError(asOutputError(err), "failed to write record")
		}
	}
	return enc.Lines(), nil
}

func validateCount(count int) error {
	if count <= 0 {
		return contextutils.NewAppError(contextutils.ErrorCodeInvalidConfig, contextutils.SeverityFatal,
			"Sample count must be positive", fmt.Sprintf("got %d", count))
	}
	return nil
}

// asOutputError tags a plain writer error as an output failure
func asOutputError(err error) error {
	if _, ok := err.(*contextutils.AppError); ok {
		return err
	}
	return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeOutputWrite, contextutils.SeverityFatal,
		"Output could not be written", err.Error(), err)
}
