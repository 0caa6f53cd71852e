package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// the verification providers, cache freshness, and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"1m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"urlcheck" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// Checker controls cached result freshness.
	Checker struct {
		// FreshThreshold is the age below which a cached result is served as-is
		FreshThreshold time.Duration `env:"CHECKER_FRESH_THRESHOLD" env-default:"1h" yaml:"freshThreshold"`
		// TTLThreshold is the age at which a cached result stops being served at all.
		// Results older than FreshThreshold but younger than this are served stale
		// while a background recheck runs.
		TTLThreshold time.Duration `env:"CHECKER_TTL_THRESHOLD" env-default:"24h" yaml:"ttlThreshold"`
	} `yaml:"checker"`

	// SafeBrowsing configures the threat-list lookup provider.
	SafeBrowsing struct {
		// APIKey is the Google Safe Browsing API credential. Empty disables the signal.
		APIKey string `env:"SAFE_BROWSING_API_KEY" yaml:"apiKey"`
		// Endpoint overrides the lookup URL. Empty selects the public API.
		Endpoint string `env:"SAFE_BROWSING_ENDPOINT" yaml:"endpoint"`
		// Timeout bounds a single lookup attempt
		Timeout time.Duration `env:"SAFE_BROWSING_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"safeBrowsing"`

	// CertCheck configures the TLS certificate inspection.
	CertCheck struct {
		// Timeout bounds the TCP connect plus TLS handshake
		Timeout time.Duration `env:"CERT_CHECK_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"certCheck"`

	// Opinion configures the AI opinion provider.
	Opinion struct {
		// APIKey is the Groq API credential. Empty disables the signal.
		APIKey string `env:"OPINION_API_KEY" yaml:"apiKey"`
		// Endpoint overrides the chat completions URL. Empty selects the public API.
		Endpoint string `env:"OPINION_ENDPOINT" yaml:"endpoint"`
		// Model is the completion model identifier. Empty selects the provider default.
		Model string `env:"OPINION_MODEL" yaml:"model"`
		// Timeout bounds a single completion attempt
		Timeout time.Duration `env:"OPINION_TIMEOUT" env-default:"30s" yaml:"timeout"`
	} `yaml:"opinion"`

	// JWT contains the RS256 key material for API authentication.
	JWT struct {
		// PrivateKey is the PEM-encoded RSA private key used to sign tokens (jwt subcommand only)
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
		// PublicKey is the PEM-encoded RSA public key used to verify tokens. Empty disables auth.
		PublicKey string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if cfg.Checker.FreshThreshold > cfg.Checker.TTLThreshold {
		return nil, fmt.Errorf("checker fresh threshold (%s) must not exceed ttl threshold (%s)",
			cfg.Checker.FreshThreshold, cfg.Checker.TTLThreshold)
	}

	return &cfg, nil
}
