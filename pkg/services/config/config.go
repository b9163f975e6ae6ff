package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "STATEMENT_ATLAS"

const (
	SourceReference = "reference"
	SourceFile      = "file"
	SourceSQL       = "sql"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Source   SourceConfig   `mapstructure:"source"`
	Database DatabaseConfig `mapstructure:"database"`
	Accounts AccountsConfig `mapstructure:"accounts"`
	CashFlow CashFlowConfig `mapstructure:"cashflow"`
	Export   ExportConfig   `mapstructure:"export"`
	Server   ServerConfig   `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SourceConfig struct {
	Kind string `mapstructure:"kind"`
	File string `mapstructure:"file"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type AccountsConfig struct {
	ChartPath string `mapstructure:"chart_path"`
}

type CashFlowConfig struct {
	// BeginningCash is the opening cash balance of the reported period
	BeginningCash float64 `mapstructure:"beginning_cash"`
}

type ExportConfig struct {
	S3   S3Config   `mapstructure:"s3"`
	AMQP AMQPConfig `mapstructure:"amqp"`
}

type S3Config struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

type AMQPConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads the configuration file at path, if any, on top of the defaults.
// Every key can be overridden with a STATEMENT_ATLAS_ prefixed environment
// variable, e.g. STATEMENT_ATLAS_CASHFLOW_BEGINNING_CASH.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("source.kind", SourceReference)
	v.SetDefault("source.file", "")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "statement-atlas.db")
	v.SetDefault("accounts.chart_path", "")
	v.SetDefault("cashflow.beginning_cash", 400000.0)
	v.SetDefault("export.s3.region", "")
	v.SetDefault("export.s3.bucket", "")
	v.SetDefault("export.s3.prefix", "statements")
	v.SetDefault("export.amqp.url", "")
	v.SetDefault("export.amqp.exchange", "statements")
	v.SetDefault("export.amqp.routing_key", "statement.generated")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
}

func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceReference:
	case SourceFile:
		if c.Source.File == "" {
			return fmt.Errorf("source.file is required for the %q source", SourceFile)
		}
	case SourceSQL:
		if c.Database.Driver == "" || c.Database.DSN == "" {
			return fmt.Errorf("database.driver and database.dsn are required for the %q source", SourceSQL)
		}
	default:
		return fmt.Errorf("unsupported source kind %q", c.Source.Kind)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
