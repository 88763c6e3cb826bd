package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. DESCRIBE_LOGGING_LEVEL.
const EnvPrefix = "DESCRIBE"

// Config represents the complete application configuration.
// It only covers ambient concerns; the dataset location is fixed by Paths.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level     string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format    string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output    string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=none stderr file both"`
	FilePath  string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
	AddSource bool   `yaml:"add_source" envconfig:"ADD_SOURCE"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName     string  `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment     string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter   string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stderr"`
	SampleRatio     float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
	MetricsTextfile string  `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// MetricsEnabled reports whether run metrics should be recorded
func (t TelemetryConfig) MetricsEnabled() bool {
	return t.MetricsTextfile != ""
}

// TracingEnabled reports whether spans should be exported
func (t TelemetryConfig) TracingEnabled() bool {
	return t.TraceExporter != "" && t.TraceExporter != "none"
}

// Default returns default configuration.
// Logging and telemetry are off so stdout carries nothing but the report.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "none",
			FilePath: "logs/describe.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "csvdescribe",
			Environment:   "production",
			TraceExporter: "none",
			SampleRatio:   1.0,
		},
	}
}

// Load loads configuration in order of increasing precedence:
// defaults, the YAML file next to the executable, the .env file next to the
// executable, then DESCRIBE_* environment variables.
func Load(paths *Paths) (*Config, error) {
	cfg := Default()

	if paths != nil && FileExists(paths.ConfigFile) {
		if err := loadFromFile(paths.ConfigFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if paths != nil && FileExists(paths.EnvFile) {
		// godotenv never overrides variables already present in the environment
		if err := godotenv.Load(paths.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", paths.EnvFile, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg; keys absent from the file keep
// their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report YAML key names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
