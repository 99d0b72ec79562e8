package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/endpointctl/pkg/registry"
)

// DefaultEndpointsDir is the directory searched for endpoint config files
// when none is configured.
const DefaultEndpointsDir = "connectors-endpoints"

// DefaultRegistryURL is the registry backend consulted when none is
// configured.
const DefaultRegistryURL = "http://localhost:5000"

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

	// Registry configuration
	RegistryURL    string
	RegistryAPIKey string
	RequestTimeout time.Duration

	// Endpoint config store
	EndpointsDir string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra, applied via UpdateFromFlags)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.endpointctl.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	viper.SetDefault("registry_url", DefaultRegistryURL)
	viper.SetDefault("endpoints_dir", DefaultEndpointsDir)
	viper.SetDefault("request_timeout", registry.DefaultTimeout)

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".endpointctl")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		RegistryURL:    viper.GetString("registry_url"),
		RegistryAPIKey: viper.GetString("registry_api_key"),
		RequestTimeout: viper.GetDuration("request_timeout"),

		EndpointsDir: viper.GetString("endpoints_dir"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.RequestTimeout <= 0 {
		config.RequestTimeout = registry.DefaultTimeout
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, registryURL, endpointsDir string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if registryURL != "" {
		c.RegistryURL = registryURL
	}
	if endpointsDir != "" {
		c.EndpointsDir = endpointsDir
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
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
