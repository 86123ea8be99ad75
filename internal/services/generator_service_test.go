package services

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"hinglishgen/internal/config"
	"hinglishgen/internal/corpus"
	"hinglishgen/internal/models"
	"hinglishgen/internal/observability"
	contextutils "hinglishgen/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestGenerator(tables *corpus.Tables, rng RandomSource) *GeneratorService {
	return NewGeneratorServiceWithLogger(tables, rng, config.DefaultInstruction, nil, observability.NewNopLogger())
}

func TestGeneratorService_DrawOrder(t *testing.T) {
	rng := &scriptedRandom{
		t:      t,
		ints:   []int{2, 0, 1},
		floats: []float64{0.1, 0.5},
	}
	gen := newTestGenerator(corpus.Builtin(), rng)

	sample, err := gen.GenerateSample(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Intn(8)", "Intn(6)", "Float64", "Intn(3)", "Float64"}, rng.calls)
	assert.Equal(t, "bhai HDFC ka 1.25 lakh loan foreclosure charges batao", sample.Input)
	assert.Equal(t, "भाई HDFC का 1.25 lakh loan foreclosure charges batao", sample.Output.NormalizedText)
	assert.Equal(t, "query_charges", sample.Output.Intent)
	assert.Equal(t, models.Slots{{Name: "amount", Value: "1.25 lakh"}, {Name: "institution", Value: "HDFC"}}, sample.Output.Slots)
	assert.Equal(t, config.DefaultInstruction, sample.Instruction)
	assert.Equal(t, "hinglish", sample.Output.LanguageMix)
	assert.Equal(t, models.ScriptRules{Hindi: "devanagari", English: "latin"}, sample.Output.ScriptRules)
}

func TestGeneratorService_FrameSlotCorrespondence(t *testing.T) {
	tables := corpus.Builtin()
	gen := newTestGenerator(tables, rand.New(rand.NewSource(config.DefaultSeed)))

	for i := 0; i < 300; i++ {
		sample, err := gen.GenerateSample(context.Background())
		require.NoError(t, err)

		frame, ok := findFrame(tables, sample)
		require.True(t, ok, "sample %d does not match any frame: %+v", i, sample.Output)

		matched := false
		for _, base := range tables.Realizations[frame.Type] {
			if hasAffixes(sample.Input, base, tables.Noise) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "input %q is not a variant of a %s realization", sample.Input, frame.Type)
	}
}

func findFrame(tables *corpus.Tables, sample *models.Sample) (models.Frame, bool) {
	for _, f := range tables.Frames {
		if f.Intent == sample.Output.Intent && assert.ObjectsAreEqual(f.Slots, sample.Output.Slots) {
			return f, true
		}
	}
	return models.Frame{}, false
}

func TestGeneratorService_SlotsAreNotAliased(t *testing.T) {
	tables := corpus.Builtin()
	rng := &scriptedRandom{
		t:      t,
		ints:   []int{0, 0, 0, 1},
		floats: []float64{0.9, 0.9, 0.9, 0.9},
	}
	gen := newTestGenerator(tables, rng)

	first, err := gen.GenerateSample(context.Background())
	require.NoError(t, err)
	second, err := gen.GenerateSample(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.Output.Intent, second.Output.Intent)

	first.Output.Slots[0].Value = "changed"
	first.Output.Slots = first.Output.Slots[:1]

	assert.Equal(t, models.Slots{{Name: "time", Value: "कल सुबह"}, {Name: "task", Value: "call"}}, second.Output.Slots)
	assert.Equal(t, models.Slots{{Name: "time", Value: "कल सुबह"}, {Name: "task", Value: "call"}}, tables.Frames[0].Slots)
}

func TestGeneratorService_FrameWithoutSlotsYieldsEmptyMapping(t *testing.T) {
	tables := corpus.Builtin()
	tables.Frames = []models.Frame{{Intent: "greet", Type: "reminder"}}
	rng := &scriptedRandom{
		t:      t,
		ints:   []int{0, 0},
		floats: []float64{0.9, 0.9},
	}

	sample, err := newTestGenerator(tables, rng).GenerateSample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Slots{}, sample.Output.Slots)

	data, err := json.Marshal(sample)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"slots":{}`)
	assert.NotContains(t, string(data), "null")
}

func TestGeneratorService_DataConsistencyErrors(t *testing.T) {
	t.Run("missing realization pool", func(t *testing.T) {
		tables := corpus.Builtin()
		delete(tables.Realizations, "finance")
		rng := &scriptedRandom{t: t, ints: []int{2}}

		sample, err := newTestGenerator(tables, rng).GenerateSample(context.Background())
		require.Error(t, err)
		assert.Nil(t, sample)
		assert.Equal(t, contextutils.ErrorCodeDataConsistency, contextutils.GetErrorCode(err))
		assert.Contains(t, err.Error(), "finance")
	})

	t.Run("empty frame pool", func(t *testing.T) {
		tables := corpus.Builtin()
		tables.Frames = nil
		rng := &scriptedRandom{t: t}

		_, err := newTestGenerator(tables, rng).GenerateSample(context.Background())
		require.Error(t, err)
		assert.Equal(t, contextutils.ErrorCodeDataConsistency, contextutils.GetErrorCode(err))
		assert.Empty(t, rng.calls)
	})
}

func TestGeneratorService_RecordsSpansAndMetrics(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	observability.InitGlobalTracer()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := observability.NewGeneratorMetricsWithMeter(mp.Meter("test"))
	require.NoError(t, err)

	tables := corpus.Builtin()
	gen := NewGeneratorServiceWithLogger(tables, rand.New(rand.NewSource(1)), config.DefaultInstruction, metrics, observability.NewNopLogger())
	for i := 0; i < 10; i++ {
		_, err := gen.GenerateSample(context.Background())
		require.NoError(t, err)
	}

	tables.Realizations = map[string][]string{}
	_, err = gen.GenerateSample(context.Background())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 11)
	assert.Equal(t, "generator.generate_sample", spans[0].Name())
	assert.Equal(t, codes.Error, spans[10].Status().Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var generated int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "hinglishgen.samples.generated" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				generated += dp.Value
			}
		}
	}
	assert.Equal(t, int64(10), generated)
}
