package config

// Generation defaults
const (
	DefaultOutputPath  = "train_v2.jsonl"
	DefaultSampleCount = 500
	DefaultSeed        = 42

	DefaultInstruction = "Extract intent and slots. Output strict JSON. " +
		"Also return normalized_text where Hindi is Devanagari and English is Latin."
)

// Record constants shared by every generated sample
const (
	LanguageMixHinglish = "hinglish"
	ScriptDevanagari    = "devanagari"
	ScriptLatin         = "latin"
)

// File and environment lookup
const (
	ConfigFileEnv     = "HINGLISHGEN_CONFIG_FILE"
	DefaultConfigFile = "config.yaml"
	DefaultEnvFile    = ".env"
)

// Observability defaults
const (
	DefaultLogLevel     = "info"
	DefaultServiceName  = "hinglishgen"
	DefaultOTLPEndpoint = "localhost:4317"
)
