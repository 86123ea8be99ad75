package services

import (
	"context"

	"hinglishgen/internal/corpus"
	"hinglishgen/internal/models"
	"hinglishgen/internal/observability"
	contextutils "hinglishgen/internal/utils"
)

// GeneratorService produces labeled samples from the corpus tables. Draws are
// made in a fixed order per sample: frame, realization, then the noise trials.
// Changing that order changes the output for a given seed.
type GeneratorService struct {
	tables      *corpus.Tables
	rng         RandomSource
	instruction string
	noise       *NoiseInjector
	normalizer  *ScriptNormalizer
	metrics     *observability.GeneratorMetrics
	logger      *observability.Logger
}

// NewGeneratorServiceWithLogger creates a generator drawing from rng. metrics may be nil.
func NewGeneratorServiceWithLogger(tables *corpus.Tables, rng RandomSource, instruction string, metrics *observability.GeneratorMetrics, logger *observability.Logger) *GeneratorService {
	return &GeneratorService{
		tables:      tables,
		rng:         rng,
		instruction: instruction,
		noise:       NewNoiseInjector(tables.Noise, metrics),
		normalizer:  NewScriptNormalizer(tables),
		metrics:     metrics,
		logger:      logger,
	}
}

// GenerateSample builds one sample. It fails only when the tables are
// inconsistent, in which case nothing should be written.
func (s *GeneratorService) GenerateSample(ctx context.Context) (result *models.Sample, err error) {
	ctx, span := observability.TraceGeneratorFunction(ctx, "generate_sample")
	defer observability.FinishSpan(span, &err)

	if len(s.tables.Frames) == 0 {
		return nil, contextutils.WrapError(contextutils.ErrDataConsistency, "frame pool is empty")
	}
	frame := s.tables.Frames[s.rng.Intn(len(s.tables.Frames))]
	span.SetAttributes(observability.AttributeIntent(frame.Intent), observability.AttributeRealizationType(frame.Type))

	pool, err := s.tables.RealizationsFor(frame.Type)
	if err != nil {
		s.logger.Error(ctx, "No realizations for frame", err, map[string]interface{}{
			"intent": frame.Intent,
			"type":   frame.Type,
		})
		return nil, err
	}
	base := pool[s.rng.Intn(len(pool))]

	input := s.noise.Apply(ctx, s.rng, base)
	normalized := s.normalizer.Normalize(input)

	s.metrics.RecordSample(ctx, frame.Intent)
	s.logger.Debug(ctx, "Generated sample", map[string]interface{}{
		"intent": frame.Intent,
		"input":  input,
	})

	return models.NewSample(frame, input, s.instruction, normalized), nil
}
