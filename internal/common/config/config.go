// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App             AppConfig             `mapstructure:"app"`
	Server          ServerConfig          `mapstructure:"server"`
	CORS            CORSConfig            `mapstructure:"cors"`
	Validation      ValidationConfig      `mapstructure:"validation"`
	Confidence      ConfidenceConfig      `mapstructure:"confidence"`
	NLU             NLUConfig             `mapstructure:"nlu"`
	ProductMatching ProductMatchingConfig `mapstructure:"product_matching"`
	Session         SessionConfig         `mapstructure:"session"`
	Redis           RedisConfig           `mapstructure:"redis"`
	Logging         LoggingConfig         `mapstructure:"logging"`
	Paths           PathsConfig           `mapstructure:"paths"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Debug           bool   `mapstructure:"debug"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type CORSConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Origins []string `mapstructure:"origins"`
}

// --- Request Validation Limits ---
type ValidationConfig struct {
	MinTextLength int `mapstructure:"min_text_length"`
	MaxTextLength int `mapstructure:"max_text_length"`
	MaxBatchSize  int `mapstructure:"max_batch_size"`
}

// --- Confidence Filtering ---
type ConfidenceConfig struct {
	MinIntentConfidence float64 `mapstructure:"min_intent_confidence"`
	MinEntityConfidence float64 `mapstructure:"min_entity_confidence"`
	UncertainThreshold  float64 `mapstructure:"uncertain_threshold"`
}

// --- Classifier Tuning ---
type NLUConfig struct {
	UseSemanticFallback bool    `mapstructure:"use_semantic_fallback"`
	SemanticThreshold   float64 `mapstructure:"semantic_threshold"`
	SemanticWeight      float64 `mapstructure:"semantic_weight"`
}

type ProductMatchingConfig struct {
	FuzzyThreshold  float64 `mapstructure:"fuzzy_threshold"`
	MaxFuzzyResults int     `mapstructure:"max_fuzzy_results"`
}

// --- Session Store ---
type SessionConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxHistory int  `mapstructure:"max_history"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type PathsConfig struct {
	CatalogFile string `mapstructure:"catalog_file"`
}
