package corpus

import (
	"bytes"
	"io"
	"os"

	"hinglishgen/internal/models"
	contextutils "hinglishgen/internal/utils"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// tablesFile is the on-disk form. Absent sections stay nil and fall back to
// the built-in tables.
type tablesFile struct {
	Lexicon      map[string]string   `yaml:"lexicon"`
	Frames       []models.Frame      `yaml:"frames"`
	Realizations map[string][]string `yaml:"realizations"`
	Noise        *NoiseProfile       `yaml:"noise"`
}

// Load returns the built-in tables, or the built-in tables overlaid with the
// YAML file at path when path is non-empty. The result is validated.
func Load(path string) (*Tables, error) {
	if path == "" {
		t := Builtin()
		return t, t.Validate()
	}
	return LoadFile(path)
}

// LoadFile reads a YAML tables file and overlays it on the built-in tables
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidConfig, contextutils.SeverityFatal,
			"Failed to read tables file", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML tables and overlays them on the built-in tables
func Parse(data []byte) (*Tables, error) {
	var file tablesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, contextutils.NewAppErrorWithCause(contextutils.ErrorCodeDataConsistency, contextutils.SeverityFatal,
			"Failed to parse tables file", err.Error(), err)
	}

	t := Builtin()
	if file.Lexicon != nil {
		t.Lexicon = make(map[string]string, len(file.Lexicon))
		for k, v := range file.Lexicon {
			t.Lexicon[FoldKey(k)] = norm.NFC.String(v)
		}
	}
	if file.Frames != nil {
		t.Frames = file.Frames
	}
	if file.Realizations != nil {
		t.Realizations = file.Realizations
	}
	if file.Noise != nil {
		t.Noise = *file.Noise
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Dump writes the tables as YAML in the same layout LoadFile accepts
func (t *Tables) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return contextutils.WrapError(err, "failed to encode tables")
	}
	return enc.Close()
}
