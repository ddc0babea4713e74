package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/markdave123-py/docparser/internal/core/parsing_engine"
)

type Config struct {
	Port              string        `yaml:"port"`
	EnableFileServing bool          `yaml:"enable_file_serving"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	Workers           int           `yaml:"workers"`
	FailurePolicy     string        `yaml:"failure_policy"`
	MaxUploadBytes    int64         `yaml:"max_upload_bytes"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	TesseractPath     string        `yaml:"tesseract_path"`
	TessdataDir       string        `yaml:"tessdata_dir"`
	OCRLanguages      string        `yaml:"ocr_languages"`
	TempDir           string        `yaml:"temp_dir"`
	JWTSecret         string        `yaml:"jwt_secret"`
	CORSOrigins       []string      `yaml:"cors_origins"`
	AwsRegion         string        `yaml:"aws_region"`
	AwsAccessKey      string        `yaml:"aws_access_key"`
	AwsSecretKey      string        `yaml:"aws_secret_key"`
}

func defaults() *Config {
	return &Config{
		Port:           "8080",
		LogLevel:       "info",
		LogFormat:      "text",
		FailurePolicy:  string(parsing_engine.PolicyCollectAll),
		MaxUploadBytes: 64 << 20,
		RequestTimeout: 120 * time.Second,
		TesseractPath:  "tesseract",
		OCRLanguages:   "eng+fra",
		CORSOrigins:    []string{"http://localhost:5173", "http://localhost:8080"},
		AwsRegion:      "us-east-2",
	}
}

// LoadConfig reads .env (if present), then the YAML file named by
// PARSER_CONFIG_FILE, then the process environment. Later sources win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := getEnv("PARSER_CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	var errs []error
	cfg.Port = getEnv("PARSER_APP_PORT", cfg.Port)
	cfg.EnableFileServing = getEnvBool("ENABLE_FILE_SERVING", cfg.EnableFileServing, &errs)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Workers = getEnvInt("PARSER_WORKERS", cfg.Workers, &errs)
	cfg.FailurePolicy = getEnv("FAILURE_POLICY", cfg.FailurePolicy)
	cfg.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(cfg.MaxUploadBytes), &errs))
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout, &errs)
	cfg.TesseractPath = getEnv("TESSERACT_PATH", cfg.TesseractPath)
	cfg.TessdataDir = getEnv("TESSDATA_DIR", cfg.TessdataDir)
	cfg.OCRLanguages = getEnv("OCR_LANGUAGES", cfg.OCRLanguages)
	cfg.TempDir = getEnv("TEMP_DIR", cfg.TempDir)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	if v := getEnv("CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	cfg.AwsRegion = getEnv("AWS_REGION", cfg.AwsRegion)
	cfg.AwsAccessKey = getEnv("AWS_ACCESS_KEY", cfg.AwsAccessKey)
	cfg.AwsSecretKey = getEnv("AWS_SECRET_KEY", cfg.AwsSecretKey)

	if err := errors.Join(append(errs, cfg.Validate())...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PARSER_APP_PORT is empty"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("PARSER_WORKERS must be >= 0, got %d", c.Workers))
	}
	if _, err := parsing_engine.ParsePolicy(c.FailurePolicy); err != nil {
		errs = append(errs, err)
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	return errors.Join(errs...)
}

// EngineConfig maps the settings to the batch processor's knobs.
func (c *Config) EngineConfig() parsing_engine.EngineConfig {
	policy, _ := parsing_engine.ParsePolicy(c.FailurePolicy)
	return parsing_engine.EngineConfig{Workers: c.Workers, Policy: policy}
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int, errs *[]error) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s=%q is not an int", key, v))
		return def
	}
	return n
}

func getEnvBool(key string, def bool, errs *[]error) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s=%q is not a bool", key, v))
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s=%q is not a duration", key, v))
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
