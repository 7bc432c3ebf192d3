package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/fieldscope/pkg/constants"
)

// envPrefix namespaces the dataset settings in the environment.
const envPrefix = "FIELDSCOPE"

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

	// Dataset configuration
	SearchData      string
	StandardsData   string
	UseSample       bool
	FallbackEnabled bool
	HTTPTimeout     time.Duration
	AutoReload      bool
	ReloadInterval  time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	logLevelFromFlag bool
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (FIELDSCOPE_*, LOG_*)
// 3. .env files
// 4. Config file (~/.fieldscope.yaml or ./.fieldscope.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv(envPrefix + "_CONFIG"))
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("search_data", constants.DefaultSearchData)
	v.SetDefault("standards_data", constants.DefaultStandardsData)
	v.SetDefault("fallback", true)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("reload_interval", constants.DefaultReloadInterval)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".fieldscope")
	}

	// A missing config file is fine; a broken one is not
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && configFile != "" {
			return nil, err
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		SearchData:      v.GetString("search_data"),
		StandardsData:   v.GetString("standards_data"),
		UseSample:       v.GetBool("sample"),
		FallbackEnabled: v.GetBool("fallback"),
		HTTPTimeout:     v.GetDuration("http_timeout"),
		AutoReload:      v.GetBool("auto_reload"),
		ReloadInterval:  v.GetDuration("reload_interval"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// Overrides carries dataset flag values that were set on the command line.
type Overrides struct {
	SearchData    *string
	StandardsData *string
	UseSample     *bool
	NoFallback    *bool
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string, o Overrides) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		c.logLevelFromFlag = true
	}
	if o.SearchData != nil {
		c.SearchData = *o.SearchData
	}
	if o.StandardsData != nil {
		c.StandardsData = *o.StandardsData
	}
	if o.UseSample != nil {
		c.UseSample = *o.UseSample
	}
	if o.NoFallback != nil && *o.NoFallback {
		c.FallbackEnabled = false
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// godotenv never overrides variables that are already set, so the
	// first file to define a key wins: .env.local before .env
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
