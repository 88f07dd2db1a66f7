package contract

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gridcarbon/schema"
)

// Default values for configuration.
const (
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultFetchTimeout = 2 * time.Minute
	DefaultRetries      = 3
	MaxRetries          = 10
	DefaultCacheTTL     = 7 * 24 * time.Hour
)

// DefaultWorkers runs all monthly requests at once.
const DefaultWorkers = 12

// MaxWorkers is the number of monthly windows in a year.
const MaxWorkers = 12

// Valid year range for ISO-8601 formatting.
const (
	MinYear = 1
	MaxYear = 9999
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// BandsRawInput holds intensity band overrides from the YAML config file.
type BandsRawInput struct {
	VeryLow  *float64 `mapstructure:"very_low"`
	Low      *float64 `mapstructure:"low"`
	Moderate *float64 `mapstructure:"moderate"`
	High     *float64 `mapstructure:"high"`
}

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	Year         int
	BaseURL      string
	HTTPTimeout  time.Duration
	FetchTimeout time.Duration
	Retries      int
	Workers      int
	Output       schema.OutputMode
	OutputFile   string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Bands schema.IntensityBands

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	YearStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Year             int    `mapstructure:"year"`
	BaseURL          string `mapstructure:"base-url"`
	HTTPTimeout      string `mapstructure:"http-timeout"`
	FetchTimeout     string `mapstructure:"fetch-timeout"`
	Retries          int    `mapstructure:"retries"`
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Intensity bands from config file ---
	Bands BandsRawInput `mapstructure:"bands"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithYear creates a copy of the Config for another target year.
func (c *Config) CloneWithYear(year int) *Config {
	clone := c.Clone()
	clone.Year = year
	return clone
}

// Params returns the settings that shape a run, for recording alongside its results.
func (c *Config) Params() map[string]any {
	return map[string]any{
		"year":     c.Year,
		"base_url": c.BaseURL,
		"workers":  c.Workers,
		"retries":  c.Retries,
		"bands":    c.Bands,
	}
}

// DefaultYear returns the most recent complete calendar year.
func DefaultYear(now time.Time) int {
	return now.Year() - 1
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processYear(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := processTimeouts(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processBands(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = parseBackend(input.CacheBackend)
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = parseBackend(input.HistoryBackend)
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// parseBackend normalizes a backend name, treating an empty value as none.
func parseBackend(s string) schema.DatabaseBackend {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return schema.NoneBackend
	}
	return schema.DatabaseBackend(s)
}

// validateSimpleInputs processes and validates the scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Base URL Validation ---
	base := strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")
	if base == "" {
		base = schema.DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base-url '%s'. must be an absolute http(s) URL", input.BaseURL)
	}
	cfg.BaseURL = base

	// --- 2. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Retries Validation ---
	if input.Retries < 0 || input.Retries > MaxRetries {
		return fmt.Errorf("retries must be between 0 and %d (received %d)", MaxRetries, input.Retries)
	}
	cfg.Retries = input.Retries

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processYear resolves the target year from the positional argument, the year key,
// or the most recent complete year, in that order.
func processYear(cfg *Config, input *ConfigRawInput, now time.Time) error {
	year := input.Year
	if s := strings.TrimSpace(input.YearStr); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid year '%s': %w", input.YearStr, err)
		}
		year = parsed
	}
	if year == 0 {
		year = DefaultYear(now)
	}
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year must be between %d and %d (received %d)", MinYear, MaxYear, year)
	}
	cfg.Year = year
	return nil
}

// processTimeouts parses the duration settings.
func processTimeouts(cfg *Config, input *ConfigRawInput) error {
	var err error
	if cfg.HTTPTimeout, err = parsePositiveDuration("http-timeout", input.HTTPTimeout, DefaultHTTPTimeout); err != nil {
		return err
	}
	if cfg.FetchTimeout, err = parsePositiveDuration("fetch-timeout", input.FetchTimeout, DefaultFetchTimeout); err != nil {
		return err
	}
	if cfg.CacheTTL, err = parsePositiveDuration("cache-ttl", input.CacheTTL, DefaultCacheTTL); err != nil {
		return err
	}
	return nil
}

func parsePositiveDuration(name, s string, fallback time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", name, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive (received %s)", name, s)
	}
	return d, nil
}

// processBands applies config file overrides on top of the default bands.
func processBands(cfg *Config, input *ConfigRawInput) error {
	bands := schema.DefaultBands
	if input.Bands.VeryLow != nil {
		bands.VeryLow = *input.Bands.VeryLow
	}
	if input.Bands.Low != nil {
		bands.Low = *input.Bands.Low
	}
	if input.Bands.Moderate != nil {
		bands.Moderate = *input.Bands.Moderate
	}
	if input.Bands.High != nil {
		bands.High = *input.Bands.High
	}
	if err := bands.Validate(); err != nil {
		return fmt.Errorf("invalid bands: %w", err)
	}
	cfg.Bands = bands
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
