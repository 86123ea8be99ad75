package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hinglishgen/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// run executes the CLI in an isolated working directory
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), append([]string{"--log-level", "error"}, args...),
		strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		config.ConfigFileEnv,
		"GENERATOR_COUNT", "GENERATOR_SEED", "GENERATOR_OUTPUT_PATH", "GENERATOR_TABLES_FILE",
		"LOGGING_LEVEL", "OPEN_TELEMETRY_ENABLE_TRACING", "OPEN_TELEMETRY_ENABLE_METRICS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Count(string(data), "\n")
}

func TestGenerate_WritesFileAndReports(t *testing.T) {
	dir := isolate(t)
	dest := filepath.Join(dir, "out.jsonl")

	res := run(t, "", "generate", "-o", dest, "-n", "12", "--seed", "7")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Generated 12 samples → "+dest+"\n", res.stdout)
	assert.Equal(t, 12, countLines(t, dest))
}

func TestGenerate_DefaultsToConfiguredPath(t *testing.T) {
	dir := isolate(t)

	res := run(t, "", "generate", "-n", "3")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, 3, countLines(t, filepath.Join(dir, config.DefaultOutputPath)))
}

func TestGenerate_SameSeedSameBytes(t *testing.T) {
	dir := isolate(t)
	a := filepath.Join(dir, "a.jsonl")
	b := filepath.Join(dir, "b.jsonl")

	require.Equal(t, 0, run(t, "", "generate", "-o", a, "-n", "50").code)
	require.Equal(t, 0, run(t, "", "generate", "-o", b, "-n", "50").code)

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestGenerate_ConfigSources(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv("GENERATOR_COUNT", "4")
		t.Setenv("GENERATOR_OUTPUT_PATH", filepath.Join(dir, "env.jsonl"))

		require.Equal(t, 0, run(t, "", "generate").code)
		assert.Equal(t, 4, countLines(t, filepath.Join(dir, "env.jsonl")))
	})

	t.Run("flag beats environment", func(t *testing.T) {
		dir := isolate(t)
		t.Setenv("GENERATOR_COUNT", "4")
		dest := filepath.Join(dir, "flag.jsonl")

		require.Equal(t, 0, run(t, "", "generate", "-n", "2", "-o", dest).code)
		assert.Equal(t, 2, countLines(t, dest))
	})

	t.Run("config file", func(t *testing.T) {
		dir := isolate(t)
		cfgPath := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("generator:\n  count: 6\n  output_path: from-file.jsonl\n"), 0o644))

		require.Equal(t, 0, run(t, "", "--config", cfgPath, "generate").code)
		assert.Equal(t, 6, countLines(t, filepath.Join(dir, "from-file.jsonl")))
	})

	t.Run("env file", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GENERATOR_COUNT=5\n"), 0o644))

		require.Equal(t, 0, run(t, "", "generate", "-o", "dotenv.jsonl").code)
		assert.Equal(t, 5, countLines(t, filepath.Join(dir, "dotenv.jsonl")))
	})
}

func TestGenerate_ErrorsAndExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"zero count", []string{"generate", "-n", "0"}, 2, "Count must be greater than 0"},
		{"negative count", []string{"generate", "-n", "-1"}, 2, "INVALID_CONFIG"},
		{"bad log level", []string{"--log-level", "loud", "generate"}, 2, "INVALID_CONFIG"},
		{"unknown flag", []string{"generate", "--bogus"}, 2, "INVALID_INPUT"},
		{"missing config file", []string{"--config", "nope.yaml", "generate"}, 2, "INVALID_CONFIG"},
		{"missing env file", []string{"--env-file", "nope.env", "generate"}, 2, "INVALID_CONFIG"},
		{"missing tables file", []string{"--tables", "nope.yaml", "generate"}, 2, "INVALID_CONFIG"},
		{"unwritable output", []string{"generate", "-o", filepath.Join("missing", "out.jsonl")}, 4, "OUTPUT_WRITE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			res := run(t, "", tt.args...)
			assert.Equal(t, tt.wantCode, res.code)
			assert.Contains(t, res.stderr, tt.wantErr)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestGenerate_MalformedEnvironmentValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"GENERATOR_COUNT", "ten"},
		{"GENERATOR_SEED", "abc"},
		{"OPEN_TELEMETRY_ENABLE_TRACING", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			dir := isolate(t)
			t.Setenv(tt.key, tt.value)
			dest := filepath.Join(dir, "out.jsonl")

			res := run(t, "", "generate", "-o", dest)
			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.stderr, "INVALID_CONFIG")
			assert.Contains(t, res.stderr, tt.key)
			assert.Empty(t, res.stdout)
			_, err := os.Stat(dest)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestGeneratorSettingsOnlyBlockGenerate(t *testing.T) {
	isolate(t)
	t.Setenv("GENERATOR_COUNT", "0")

	res := run(t, "", "normalize", "bhai")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "भाई\n", res.stdout)

	res = run(t, "", "tables", "dump")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "lexicon:")

	res = run(t, "", "generate")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "Count must be greater than 0")
}

func TestGenerate_SlotsKeepFrameOrder(t *testing.T) {
	dir := isolate(t)
	tablesPath := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(tablesPath, []byte(`
frames:
  - intent: set_reminder
    type: reminder
    slots:
      time: "कल सुबह"
      task: call
`), 0o644))
	dest := filepath.Join(dir, "out.jsonl")

	res := run(t, "", "--tables", tablesPath, "generate", "-o", dest, "-n", "3")
	require.Equal(t, 0, res.code, res.stderr)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		assert.Contains(t, line, `"slots":{"time":"कल सुबह","task":"call"}`)
	}
}

func TestGenerate_FrameWithoutSlotsIsRejected(t *testing.T) {
	dir := isolate(t)
	tablesPath := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(tablesPath, []byte("frames:\n  - {intent: greet, type: reminder}\n"), 0o644))
	dest := filepath.Join(dir, "out.jsonl")

	res := run(t, "", "--tables", tablesPath, "generate", "-o", dest, "-n", "1")
	assert.Equal(t, 3, res.code)
	assert.Contains(t, res.stderr, "has no slots")
	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerate_InconsistentTables(t *testing.T) {
	dir := isolate(t)
	tablesPath := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(tablesPath, []byte("realizations:\n  reminder: [\"kal subah call\"]\n"), 0o644))

	res := run(t, "", "--tables", tablesPath, "generate", "-n", "3")
	assert.Equal(t, 3, res.code)
	assert.Contains(t, res.stderr, "DATA_CONSISTENCY")
	_, err := os.Stat(filepath.Join(dir, config.DefaultOutputPath))
	assert.True(t, os.IsNotExist(err))
}

func TestNormalize(t *testing.T) {
	isolate(t)

	res := run(t, "", "normalize", "bhai.", "kal", "subah", "HDFC")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "भाई. कल सुबह HDFC\n", res.stdout)

	res = run(t, "haan bhai\n\nkal meeting…\n", "normalize")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "हाँ भाई\n\nकल meeting…\n", res.stdout)
}

func TestTablesDump_RoundTripsThroughTablesFlag(t *testing.T) {
	dir := isolate(t)
	tablesPath := filepath.Join(dir, "tables.yaml")

	res := run(t, "", "tables", "dump", "-o", tablesPath)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Wrote tables → "+tablesPath+"\n", res.stdout)

	stdoutDump := run(t, "", "tables", "dump")
	require.Equal(t, 0, stdoutDump.code)
	data, err := os.ReadFile(tablesPath)
	require.NoError(t, err)
	assert.Equal(t, string(data), stdoutDump.stdout)
	assert.Contains(t, stdoutDump.stdout, "lexicon:")

	builtin := filepath.Join(dir, "builtin.jsonl")
	fromFile := filepath.Join(dir, "from-file.jsonl")
	require.Equal(t, 0, run(t, "", "generate", "-o", builtin, "-n", "40").code)
	require.Equal(t, 0, run(t, "", "--tables", tablesPath, "generate", "-o", fromFile, "-n", "40").code)

	a, err := os.ReadFile(builtin)
	require.NoError(t, err)
	b, err := os.ReadFile(fromFile)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestVersion(t *testing.T) {
	res := run(t, "", "version")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "hinglishgen dev (commit dev, built unknown)\n", res.stdout)
}

func TestRoot_ShowsHelp(t *testing.T) {
	isolate(t)
	res := run(t, "")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "generate")
	assert.Contains(t, res.stdout, "normalize")
}
