// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Security SecurityConfig `mapstructure:"security"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Printing PrintingConfig `mapstructure:"printing"`
	Update   UpdateConfig   `mapstructure:"update"`
	App      AppConfig      `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DefaultAllowedOrigins are the local POS front end origins accepted when
// none are configured
var DefaultAllowedOrigins = []string{
	"http://localhost:1420",
	"http://127.0.0.1:1420",
	"tauri://localhost",
	"http://tauri.localhost",
	"https://tauri.localhost",
}

// Origins returns the configured browser origins, or DefaultAllowedOrigins
func (s *SecurityConfig) Origins() []string {
	if len(s.AllowedOrigins) > 0 {
		return s.AllowedOrigins
	}
	return DefaultAllowedOrigins
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// PrintingConfig represents printer backend configuration
type PrintingConfig struct {
	// Backend overrides the OS family used to pick a backend. Empty means runtime.GOOS.
	Backend                string        `mapstructure:"backend"`
	AllowSyntheticPrinters bool          `mapstructure:"allow_synthetic_printers"`
	DocumentLabel          string        `mapstructure:"document_label"`
	SelfTestLabel          string        `mapstructure:"self_test_label"`
	OperationTimeout       time.Duration `mapstructure:"operation_timeout"`
	Spooler                SpoolerConfig `mapstructure:"spooler"`
	Shell                  ShellConfig   `mapstructure:"shell"`
}

// SpoolerConfig configures the Windows spooler backend
type SpoolerConfig struct {
	EnumCommand string   `mapstructure:"enum_command"`
	EnumArgs    []string `mapstructure:"enum_args"`
}

// ShellConfig configures the CUPS command-line backend
type ShellConfig struct {
	StatusCommand string   `mapstructure:"status_command"`
	StatusArgs    []string `mapstructure:"status_args"`
	PrintCommand  string   `mapstructure:"print_command"`
	TempDir       string   `mapstructure:"temp_dir"`
}

// UpdateConfig represents the update poller configuration
type UpdateConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Endpoint       string        `mapstructure:"endpoint"`
	Interval       time.Duration `mapstructure:"interval"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	InstallDir     string        `mapstructure:"install_dir"`
	StagingDir     string        `mapstructure:"staging_dir"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

var (
	validEnvironments = []string{"development", "staging", "production", "test"}
	validLevels       = []string{"debug", "info", "warn", "error", "fatal"}
)

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../../internal/config")

	return load(v)
}

// LoadFile loads configuration from an explicit file path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// Environment variable support
	v.SetEnvPrefix("PRINT_BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// A missing config file is fine, defaults and env cover everything
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Synthetic printers are a development aid only
	if config.IsProduction() {
		config.Printing.AllowSyntheticPrinters = false
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "17420")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")

	// Security defaults
	v.SetDefault("security.allowed_origins", DefaultAllowedOrigins)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 20)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 14)
	v.SetDefault("logging.compress", true)

	// Printing defaults
	v.SetDefault("printing.backend", "")
	v.SetDefault("printing.allow_synthetic_printers", false)
	v.SetDefault("printing.document_label", "POS Receipt")
	v.SetDefault("printing.self_test_label", "POS Test Print")
	v.SetDefault("printing.operation_timeout", "30s")
	v.SetDefault("printing.spooler.enum_command", "powershell")
	v.SetDefault("printing.spooler.enum_args", []string{
		"-NoProfile", "-NonInteractive", "-Command",
		"Get-Printer | Select-Object -ExpandProperty Name",
	})
	v.SetDefault("printing.shell.status_command", "lpstat")
	v.SetDefault("printing.shell.status_args", []string{"-p"})
	v.SetDefault("printing.shell.print_command", "lp")
	v.SetDefault("printing.shell.temp_dir", "")

	// Update defaults
	v.SetDefault("update.enabled", false)
	v.SetDefault("update.endpoint", "")
	v.SetDefault("update.interval", "600s")
	v.SetDefault("update.request_timeout", "5m")
	v.SetDefault("update.install_dir", "./updates")
	v.SetDefault("update.staging_dir", "")

	// App defaults
	v.SetDefault("app.name", "print-bridge")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if config.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if config.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	if config.App.Version == "" {
		return fmt.Errorf("app.version is required")
	}

	if !slices.Contains(validEnvironments, config.App.Environment) {
		return fmt.Errorf("app.environment must be one of: %v", validEnvironments)
	}
	if !slices.Contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	if config.Printing.OperationTimeout <= 0 {
		return fmt.Errorf("printing.operation_timeout must be positive")
	}
	if config.Printing.Shell.StatusCommand == "" || config.Printing.Shell.PrintCommand == "" {
		return fmt.Errorf("printing.shell commands are required")
	}

	if config.Update.Enabled {
		if config.Update.Endpoint == "" {
			return fmt.Errorf("update.endpoint is required when updates are enabled")
		}
		if config.Update.Interval <= 0 {
			return fmt.Errorf("update.interval must be positive")
		}
		if config.Update.InstallDir == "" {
			return fmt.Errorf("update.install_dir is required when updates are enabled")
		}
	}

	return nil
}

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// BackendOS returns the OS family used to select the printer backend
func (c *Config) BackendOS() string {
	if c.Printing.Backend != "" {
		return c.Printing.Backend
	}
	return runtime.GOOS
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment checks if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsDebugEnabled checks if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.App.Debug || c.IsDevelopment()
}
