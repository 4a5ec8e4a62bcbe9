// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like NLU_REDIS_ADDRESS
	viper.SetEnvPrefix("NLU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setViperDefaults()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay (config.development.yaml etc.)
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from multiple possible locations (running from different directories)
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// setViperDefaults covers values whose zero value is meaningful (booleans
// cannot be defaulted after unmarshal).
func setViperDefaults() {
	viper.SetDefault("cors.enabled", true)
	viper.SetDefault("nlu.use_semantic_fallback", true)
	viper.SetDefault("session.enabled", true)
}

// Expand ${VAR} placeholders in string config values
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if val := os.Getenv("NLU_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("NLU_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
	if val := os.Getenv("NLU_CORS_ORIGINS"); val != "" {
		origins := strings.Split(val, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORS.Origins = origins
	}
	if val := os.Getenv("NLU_REDIS_ADDRESS"); val != "" {
		cfg.Redis.Address = val
	}
	if val := os.Getenv("NLU_REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("NLU_CATALOG_PATH"); val != "" {
		cfg.Paths.CatalogFile = val
	}
	if val := os.Getenv("NLU_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("NLU_SEMANTIC_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.NLU.SemanticThreshold = f
		}
	}
	if val := os.Getenv("NLU_SEMANTIC_WEIGHT"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.NLU.SemanticWeight = f
		}
	}
	if val := os.Getenv("NLU_MIN_INTENT_CONFIDENCE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Confidence.MinIntentConfidence = f
		}
	}
	if val := os.Getenv("NLU_MIN_ENTITY_CONFIDENCE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Confidence.MinEntityConfidence = f
		}
	}
	if val := os.Getenv("NLU_UNCERTAIN_THRESHOLD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Confidence.UncertainThreshold = f
		}
	}
	if val := os.Getenv("NLU_SESSION_TTL"); val != "" {
		if ttl, err := strconv.Atoi(val); err == nil {
			cfg.Session.TTLSeconds = ttl
		}
	}
	if val := os.Getenv("NLU_MAX_TEXT_LENGTH"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Validation.MaxTextLength = n
		}
	}
	if val := os.Getenv("NLU_MAX_BATCH_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Validation.MaxBatchSize = n
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	setViperDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "nlu-service"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if len(cfg.CORS.Origins) == 0 {
		cfg.CORS.Origins = []string{"*"}
	}

	// Validation limits
	if cfg.Validation.MinTextLength == 0 {
		cfg.Validation.MinTextLength = 1
	}
	if cfg.Validation.MaxTextLength == 0 {
		cfg.Validation.MaxTextLength = 5000
	}
	if cfg.Validation.MaxBatchSize == 0 {
		cfg.Validation.MaxBatchSize = 100
	}

	// Confidence thresholds
	if cfg.Confidence.MinIntentConfidence == 0 {
		cfg.Confidence.MinIntentConfidence = 0.3
	}
	if cfg.Confidence.MinEntityConfidence == 0 {
		cfg.Confidence.MinEntityConfidence = 0.4
	}
	if cfg.Confidence.UncertainThreshold == 0 {
		cfg.Confidence.UncertainThreshold = 0.6
	}

	// Classifier tuning
	if cfg.NLU.SemanticThreshold == 0 {
		cfg.NLU.SemanticThreshold = 0.5
	}
	if cfg.NLU.SemanticWeight == 0 {
		cfg.NLU.SemanticWeight = 0.8
	}

	// Product matching
	if cfg.ProductMatching.FuzzyThreshold == 0 {
		cfg.ProductMatching.FuzzyThreshold = 0.7
	}
	if cfg.ProductMatching.MaxFuzzyResults == 0 {
		cfg.ProductMatching.MaxFuzzyResults = 5
	}

	// Session store
	if cfg.Session.MaxHistory == 0 {
		cfg.Session.MaxHistory = 10
	}
	if cfg.Session.TTLSeconds == 0 {
		cfg.Session.TTLSeconds = 3600
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if cfg.Validation.MinTextLength < 1 {
		return fmt.Errorf("validation.min_text_length must be at least 1")
	}
	if cfg.Validation.MaxTextLength < cfg.Validation.MinTextLength {
		return fmt.Errorf("validation.max_text_length must be >= min_text_length")
	}

	if cfg.NLU.SemanticThreshold < 0 || cfg.NLU.SemanticThreshold > 1 {
		return fmt.Errorf("nlu.semantic_threshold must be in [0,1]")
	}
	if cfg.NLU.SemanticWeight < 0 || cfg.NLU.SemanticWeight > 1 {
		return fmt.Errorf("nlu.semantic_weight must be in [0,1]")
	}
	if cfg.ProductMatching.FuzzyThreshold < 0 || cfg.ProductMatching.FuzzyThreshold > 1 {
		return fmt.Errorf("product_matching.fuzzy_threshold must be in [0,1]")
	}

	if cfg.Session.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when sessions are enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// SessionTTL returns the session expiry as a duration.
func SessionTTL(cfg *Config) time.Duration {
	return time.Duration(cfg.Session.TTLSeconds) * time.Second
}
