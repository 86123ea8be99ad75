// Package config handles generator configuration loading from YAML and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	contextutils "hinglishgen/internal/utils"
	"hinglishgen/internal/version"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the generator
type Config struct {
	// Generation run configuration
	Generator GeneratorConfig `json:"generator" yaml:"generator"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// OpenTelemetry Configuration
	OpenTelemetry OpenTelemetryConfig `json:"open_telemetry" yaml:"open_telemetry"`
}

// GeneratorConfig controls a single batch run
type GeneratorConfig struct {
	OutputPath string `json:"output_path" yaml:"output_path" validate:"required"`
	Count      int    `json:"count" yaml:"count" validate:"gt=0"`
	Seed       int64  `json:"seed" yaml:"seed"`
	// TablesFile optionally points at a YAML file replacing sections of the built-in corpus tables.
	TablesFile  string `json:"tables_file,omitempty" yaml:"tables_file,omitempty"`
	Instruction string `json:"instruction" yaml:"instruction" validate:"required"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

// OpenTelemetryConfig holds all OpenTelemetry-related configuration
type OpenTelemetryConfig struct {
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`               // Default: "localhost:4317"
	Protocol       string            `json:"protocol" yaml:"protocol"`               // "grpc" or "http", default: "grpc"
	Insecure       bool              `json:"insecure" yaml:"insecure"`               // Default: true (for localhost)
	Headers        map[string]string `json:"headers" yaml:"headers"`                 // For authenticated endpoints
	ServiceName    string            `json:"service_name" yaml:"service_name"`       // Default: "hinglishgen"
	ServiceVersion string            `json:"service_version" yaml:"service_version"` // From version package
	EnableTracing  bool              `json:"enable_tracing" yaml:"enable_tracing"`   // Default: false
	EnableMetrics  bool              `json:"enable_metrics" yaml:"enable_metrics"`   // Default: false
	EnableLogging  bool              `json:"enable_logging" yaml:"enable_logging"`   // Default: true (stderr)
	ExportLogs     bool              `json:"export_logs" yaml:"export_logs"`         // Also ship logs over OTLP/gRPC
	UseAutoSDK     bool              `json:"use_auto_sdk" yaml:"use_auto_sdk"`
	SamplingRate   float64           `json:"sampling_rate" yaml:"sampling_rate"` // Default: 1.0 (100%)
}

// Defaults returns the configuration used when no file or environment overrides exist
func Defaults() *Config {
	return &Config{
		Generator: GeneratorConfig{
			OutputPath:  DefaultOutputPath,
			Count:       DefaultSampleCount,
			Seed:        DefaultSeed,
			Instruction: DefaultInstruction,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
		OpenTelemetry: OpenTelemetryConfig{
			Endpoint:       DefaultOTLPEndpoint,
			Protocol:       "grpc",
			Insecure:       true,
			ServiceName:    DefaultServiceName,
			ServiceVersion: version.Version,
			EnableLogging:  true,
			SamplingRate:   1.0,
		},
	}
}

// NewConfig loads configuration from the file named by HINGLISHGEN_CONFIG_FILE (or
// ./config.yaml when present), then overrides with environment variables.
func NewConfig() (*Config, error) {
	return NewConfigFromFile("")
}

// NewConfigFromFile is NewConfig with an explicit file path. An empty path falls back
// to HINGLISHGEN_CONFIG_FILE and then to an optional ./config.yaml.
func NewConfigFromFile(path string) (*Config, error) {
	config, err := loadConfigWithOverrides(path)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidConfig, "failed to load config: %w", err)
	}

	// Override with environment variables
	if err := config.overrideFromEnv(); err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInvalidConfig, "failed to apply environment: %w", err)
	}

	return config, nil
}

// Validate checks the configuration before any output is touched
func (c *Config) Validate() error {
	return contextutils.ValidateStruct(c)
}

// ValidateShared checks only the sections every subcommand depends on. Commands
// that never generate samples use it so a bad generator setting does not block them.
func (c *Config) ValidateShared() error {
	if err := contextutils.ValidateStruct(&c.Logging); err != nil {
		return err
	}
	return contextutils.ValidateStruct(&c.OpenTelemetry)
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() error {
	return overrideStructFromEnvWithPrefix(c, "")
}

// overrideStructFromEnvWithPrefix recursively overrides struct fields with environment
// variables. A value that does not parse as the field's type is an error.
func overrideStructFromEnvWithPrefix(v interface{}, prefix string) error {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		yamlTag := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Convert yaml tag to environment variable name
		envKey := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
		if prefix != "" {
			envKey = prefix + "_" + envKey
		}

		if field.Kind() == reflect.Struct {
			if field.CanAddr() {
				if err := overrideStructFromEnvWithPrefix(field.Addr().Interface(), envKey); err != nil {
					return err
				}
			}
			continue
		}

		envVal := os.Getenv(envKey)
		if envVal == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(envVal)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			intVal, err := strconv.ParseInt(strings.TrimSpace(envVal), 10, field.Type().Bits())
			if err != nil {
				return fmt.Errorf("%s=%q is not an integer: %w", envKey, envVal, err)
			}
			field.SetInt(intVal)
		case reflect.Float32, reflect.Float64:
			floatVal, err := strconv.ParseFloat(strings.TrimSpace(envVal), field.Type().Bits())
			if err != nil {
				return fmt.Errorf("%s=%q is not a number: %w", envKey, envVal, err)
			}
			field.SetFloat(floatVal)
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strings.TrimSpace(envVal))
			if err != nil {
				return fmt.Errorf("%s=%q is not a boolean: %w", envKey, envVal, err)
			}
			field.SetBool(boolVal)
		}
	}
	return nil
}

// loadConfigWithOverrides resolves which file to read, if any
func loadConfigWithOverrides(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	if envPath := os.Getenv(ConfigFileEnv); envPath != "" {
		return loadConfigFromFile(envPath)
	}

	// The default file is optional
	config, err := loadConfigFromFile(DefaultConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return config, err
}

// loadConfigFromFile decodes a YAML file on top of the defaults
func loadConfigFromFile(path string) (*Config, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Defaults()
	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
