package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the fraud detection service.
type Config struct {
	GRPCPort            string        `env:"GRPC_PORT" envDefault:"9090"`
	HTTPPort            string        `env:"HTTP_PORT" envDefault:"8090"`
	Environment         string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`
	StageDelay          time.Duration `env:"STAGE_DELAY" envDefault:"500ms"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"30s"`
	ForceStopTimeout    time.Duration `env:"FORCE_STOP_TIMEOUT" envDefault:"5s"`
	Reflection          bool          `env:"GRPC_REFLECTION" envDefault:"false"`
	TLSCertFile         string        `env:"GRPC_TLS_CERT_FILE"`
	TLSKeyFile          string        `env:"GRPC_TLS_KEY_FILE"`
	OTLPEndpoint        string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure        bool          `env:"OTEL_INSECURE" envDefault:"true"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// TLSEnabled reports whether both TLS files are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// TracingEnabled reports whether an OTLP endpoint is configured.
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}
