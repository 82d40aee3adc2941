package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/eramap/internal/config"
	"github.com/agentstation/eramap/pkg/constants"
	"github.com/agentstation/eramap/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Document source
	APIURL    string
	Page      string
	Variant   string
	Timeout   time.Duration
	InputPath string

	// Reconciliation inputs
	ReferencePath string
	OverridesPath string

	// Outputs
	OutputPath string
	ReportPath string

	// Plausible AD year window
	WindowMin int
	WindowMax int

	// Logging configuration. LogLevel is set only by --log-level; EnvLogLevel
	// carries LOG_LEVEL and ranks below -v/-q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (ERAMAP_ prefixed)
// 3. .env files
// 4. Config file (~/.eramap.yaml or ./.eramap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(constants.DefaultConfigName)
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	return &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		APIURL:    config.StringOr("api_url", constants.DefaultAPIURL),
		Page:      config.StringOr("page", constants.DefaultPage),
		Variant:   config.StringOr("variant", constants.DefaultVariant),
		Timeout:   config.DurationOr("timeout", constants.DefaultHTTPTimeout),
		InputPath: viper.GetString("input_path"),

		ReferencePath: config.StringOr("reference_path", constants.DefaultReferencePath),
		OverridesPath: viper.GetString("overrides_path"),

		OutputPath: config.StringOr("output_path", constants.DefaultOutputPath),
		ReportPath: viper.GetString("report_path"),

		WindowMin: config.IntOr("window_min", constants.MinYearAD),
		WindowMax: config.IntOr("window_max", constants.MaxYearAD),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed global flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ApplyConfigFile reads an explicitly named config file and applies its
// settings. Settings whose flag was set on the command line (changed
// reports true) keep the flag value.
func (c *Config) ApplyConfigFile(path string, changed func(flag string) bool) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.WrapResource("read", "config", path, err)
	}
	c.ConfigFile = viper.ConfigFileUsed()

	str := func(flag, key string, dst *string) {
		if !changed(flag) && viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}
	str("api-url", "api_url", &c.APIURL)
	str("page", "page", &c.Page)
	str("variant", "variant", &c.Variant)
	str("input", "input_path", &c.InputPath)
	str("", "reference_path", &c.ReferencePath)
	str("", "overrides_path", &c.OverridesPath)
	str("", "output_path", &c.OutputPath)
	str("", "report_path", &c.ReportPath)
	if !changed("format") && viper.IsSet("format") {
		c.Format = viper.GetString("format")
	}
	if !changed("timeout") {
		c.Timeout = config.DurationOr("timeout", c.Timeout)
	}
	if !changed("window-min") {
		c.WindowMin = config.IntOr("window_min", c.WindowMin)
	}
	if !changed("window-max") {
		c.WindowMax = config.IntOr("window_max", c.WindowMax)
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files. godotenv never
// overwrites a set variable, so .env.local is loaded first to win over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
