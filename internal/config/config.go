package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve without a host zoneinfo

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable (ENERGY_INPUT_DIR, ...)
const EnvPrefix = "ENERGY"

// ConfigFileEnv names the variable that points at an explicit config file
const ConfigFileEnv = "ENERGY_CONFIG_FILE"

// Config represents the complete application configuration
type Config struct {
	Input         InputConfig         `yaml:"input" envconfig:"INPUT"`
	Output        OutputConfig        `yaml:"output" envconfig:"OUTPUT"`
	Aggregation   AggregationConfig   `yaml:"aggregation" envconfig:"AGGREGATION"`
	Report        ReportConfig        `yaml:"report" envconfig:"REPORT"`
	Logging       LoggingConfig       `yaml:"logging" envconfig:"LOGGING"`
	Observability ObservabilityConfig `yaml:"observability" envconfig:"OBSERVABILITY"`
}

// InputConfig describes where input tables live and which columns matter
type InputConfig struct {
	Dir              string   `yaml:"dir" envconfig:"DIR" validate:"required"`
	Extensions       []string `yaml:"extensions" envconfig:"EXTENSIONS" validate:"required,min=1,dive,startswith=."`
	TimestampColumn  string   `yaml:"timestamp_column" envconfig:"TIMESTAMP_COLUMN" validate:"required"`
	ValueColumn      string   `yaml:"value_column" envconfig:"VALUE_COLUMN" validate:"required,nefield=TimestampColumn"`
	TimestampLayouts []string `yaml:"timestamp_layouts" envconfig:"TIMESTAMP_LAYOUTS" validate:"required,min=1,dive,required"`
	TimeZone         string   `yaml:"timezone" envconfig:"TIMEZONE" validate:"required"`
}

// OutputConfig names the output directory and every artifact written to it
type OutputConfig struct {
	Dir             string `yaml:"dir" envconfig:"DIR" validate:"required"`
	CleanedFile     string `yaml:"cleaned_file" envconfig:"CLEANED_FILE" validate:"required"`
	SummaryFile     string `yaml:"summary_file" envconfig:"SUMMARY_FILE" validate:"required"`
	ReportFile      string `yaml:"report_file" envconfig:"REPORT_FILE" validate:"required"`
	LogFile         string `yaml:"log_file" envconfig:"LOG_FILE" validate:"required"`
	WorkbookFile    string `yaml:"workbook_file" envconfig:"WORKBOOK_FILE" validate:"required_if=WorkbookEnabled true"`
	WorkbookEnabled bool   `yaml:"workbook_enabled" envconfig:"WORKBOOK_ENABLED"`
	ChartsEnabled   bool   `yaml:"charts_enabled" envconfig:"CHARTS_ENABLED"`
	ChartsDir       string `yaml:"charts_dir" envconfig:"CHARTS_DIR"`
}

// AggregationConfig controls grouping and time-bucket rollups
type AggregationConfig struct {
	GroupBy      string   `yaml:"group_by" envconfig:"GROUP_BY" validate:"oneof=source season"`
	BucketWidths []string `yaml:"bucket_widths" envconfig:"BUCKET_WIDTHS" validate:"dive,oneof=hourly daily weekly monthly"`
	Statistics   []string `yaml:"statistics" envconfig:"STATISTICS" validate:"dive,oneof=sum mean max"`
}

// ReportConfig controls labels used in the generated artifacts
type ReportConfig struct {
	Title      string `yaml:"title" envconfig:"TITLE" validate:"required"`
	Unit       string `yaml:"unit" envconfig:"UNIT"`
	GroupLabel string `yaml:"group_label" envconfig:"GROUP_LABEL" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// ObservabilityConfig toggles the metrics textfile and the span dump.
// Relative file names are placed in Dir, never in the output directory.
type ObservabilityConfig struct {
	Dir            string `yaml:"dir" envconfig:"DIR"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE" validate:"required_if=MetricsEnabled true"`
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceFile      string `yaml:"trace_file" envconfig:"TRACE_FILE" validate:"required_if=TracingEnabled true"`
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME"`
}

// Load loads configuration from defaults, the config file (if any) and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file. An empty path skips the file.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	// Load from config file if exists
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment overrides; no default tags so unset variables leave the
	// file and default values alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// normalize trims list entries and lower-cases extensions
func (c *Config) normalize() {
	for i, ext := range c.Input.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Input.Extensions[i] = ext
	}
	for i, w := range c.Aggregation.BucketWidths {
		c.Aggregation.BucketWidths[i] = strings.ToLower(strings.TrimSpace(w))
	}
	for i, s := range c.Aggregation.Statistics {
		c.Aggregation.Statistics[i] = strings.ToLower(strings.TrimSpace(s))
	}
	c.Aggregation.GroupBy = strings.ToLower(strings.TrimSpace(c.Aggregation.GroupBy))
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
}

// Validate checks struct constraints and values that need parsing
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if _, err := time.LoadLocation(c.Input.TimeZone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Input.TimeZone, err)
	}

	return nil
}

// Location returns the timezone timestamps without an offset are read in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Input.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	// Check for config file in common locations
	locations := []string{
		"energyreport.yaml",
		"configs/energyreport.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:             "data",
			Extensions:      []string{".csv", ".xlsx"},
			TimestampColumn: "Timestamp",
			ValueColumn:     "Energy_kwh",
			TimestampLayouts: []string{
				"2006-01-02 15:04:05",
				"2006-01-02 15:04",
				time.RFC3339,
				"2006-01-02T15:04:05",
				"2006-01-02",
				"01/02/2006 15:04",
				"01/02/2006",
			},
			TimeZone: "UTC",
		},
		Output: OutputConfig{
			Dir:             "output",
			CleanedFile:     "cleaned_energy_data.csv",
			SummaryFile:     "building_summary.csv",
			ReportFile:      "summary.txt",
			LogFile:         "processing_log.txt",
			WorkbookFile:    "energy_summary.xlsx",
			WorkbookEnabled: true,
			ChartsEnabled:   true,
			ChartsDir:       "charts",
		},
		Aggregation: AggregationConfig{
			GroupBy:      "source",
			BucketWidths: []string{"daily", "weekly"},
			Statistics:   []string{"sum", "mean"},
		},
		Report: ReportConfig{
			Title:      "Executive Energy Summary Report",
			Unit:       "kWh",
			GroupLabel: "Building",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/energyreport.log",
		},
		Observability: ObservabilityConfig{
			Dir:            "telemetry",
			MetricsEnabled: true,
			MetricsFile:    "pipeline_metrics.prom",
			TracingEnabled: false,
			TraceFile:      "trace.json",
			ServiceName:    "energyreport",
		},
	}
}
