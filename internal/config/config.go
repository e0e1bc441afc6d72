// Package config loads service configuration from an optional YAML file,
// CATALOG_ prefixed environment variables and built-in defaults, in
// increasing order of precedence: defaults < file < environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. CATALOG_DATABASE_DSN.
	EnvPrefix = "CATALOG"
	// PathEnv names the config file when no --config flag is given.
	PathEnv = "CATALOG_CONFIG"

	DriverPostgres = "postgres"
	DriverSpanner  = "spanner"
)

// Config is the root configuration.
type Config struct {
	ServiceName string           `mapstructure:"service_name"`
	HTTP        HTTPConfig       `mapstructure:"http"`
	GRPC        GRPCConfig       `mapstructure:"grpc"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Spanner     SpannerConfig    `mapstructure:"spanner"`
	Pagination  PaginationConfig `mapstructure:"pagination"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Metrics     MetricsConfig    `mapstructure:"metrics"`
	Import      ImportConfig     `mapstructure:"import"`
}

type HTTPConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns host:port for net.Listen.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type GRPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

func (c GRPCConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig selects the store and tunes the SQL connection pool.
type DatabaseConfig struct {
	// Driver is postgres or spanner
	Driver             string        `mapstructure:"driver"`
	DSN                string        `mapstructure:"dsn"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	LogLevel           string        `mapstructure:"log_level"`
}

// SpannerConfig is used when Database.Driver is spanner.
type SpannerConfig struct {
	// Database is the full path projects/P/instances/I/databases/D
	Database      string `mapstructure:"database"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

type PaginationConfig struct {
	DefaultSize int `mapstructure:"default_size"`
	MaxSize     int `mapstructure:"max_size"`
}

// LoggerConfig drives zap and lumberjack. An empty FilePath logs to the console only.
type LoggerConfig struct {
	Mode       string `mapstructure:"mode"`
	Level      string `mapstructure:"level"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type ImportConfig struct {
	BatchSize int `mapstructure:"batch_size"`
}

// ResolvePath returns flagValue, or the CATALOG_CONFIG environment variable when it is empty.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(PathEnv)
}

// Load reads the configuration. An empty path skips the file; a path that
// cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required for the postgres driver"))
		}
	case DriverSpanner:
		if c.Spanner.Database == "" {
			errs = append(errs, errors.New("spanner.database is required for the spanner driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid http.port: %d", c.HTTP.Port))
	}
	for _, origin := range c.HTTP.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("invalid http.cors_origins entry %q: want * or an http(s) origin", origin))
		}
	}
	if c.GRPC.Enabled && (c.GRPC.Port <= 0 || c.GRPC.Port > 65535) {
		errs = append(errs, fmt.Errorf("invalid grpc.port: %d", c.GRPC.Port))
	}
	if c.Pagination.DefaultSize <= 0 {
		errs = append(errs, fmt.Errorf("pagination.default_size must be positive, got %d", c.Pagination.DefaultSize))
	}
	if c.Pagination.MaxSize < c.Pagination.DefaultSize {
		errs = append(errs, fmt.Errorf("pagination.max_size %d is below default_size %d",
			c.Pagination.MaxSize, c.Pagination.DefaultSize))
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "catalog-service")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.cors_origins", []string{"*"})

	v.SetDefault("grpc.enabled", true)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 9090)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.slow_query_threshold", 200*time.Millisecond)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("spanner.database", "")
	v.SetDefault("spanner.migrations_dir", "migrations/spanner")

	v.SetDefault("pagination.default_size", 20)
	v.SetDefault("pagination.max_size", 100)

	v.SetDefault("logger.mode", "production")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("import.batch_size", 500)
}
