package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"http_server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Security   SecurityConfig   `mapstructure:"security" validate:"required"`
	Credential CredentialConfig `mapstructure:"credential" validate:"required"`
	Razorpay   RazorpayConfig   `mapstructure:"razorpay"`
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	FailureRedirect   string        `mapstructure:"failure_redirect"`
	SuccessRedirect   string        `mapstructure:"success_redirect"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"required,min=1m"`
	Source          string        `mapstructure:"source"`
}

type SecurityConfig struct {
	AccessTokenSecret  string        `mapstructure:"access_token_secret" validate:"required,min=32"`
	RefreshTokenSecret string        `mapstructure:"refresh_token_secret" validate:"required,min=32"`
	AccessTokenTTL     time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL    time.Duration `mapstructure:"refresh_token_ttl"`
	BCryptCost         int           `mapstructure:"bcrypt_cost"`
}

// CredentialConfig holds the server-side secret for QR credential tokens.
// The secret participates in every issued token's hash; rotating it
// invalidates all tokens in circulation.
type CredentialConfig struct {
	QRSecret string `mapstructure:"qr_secret" validate:"required"`
}

type RazorpayConfig struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
	BaseURL   string `mapstructure:"base_url"`
}

// GatewayConfig carries the alternate gateway's merchant credentials and
// the four raw key materials plus signature secret for GatewayCipher.
type GatewayConfig struct {
	Endpoint         string        `mapstructure:"endpoint"`
	MerchantID       string        `mapstructure:"merchant_id"`
	MerchantPassword string        `mapstructure:"merchant_password"`
	RequestKey       string        `mapstructure:"request_key"`
	RequestSalt      string        `mapstructure:"request_salt"`
	ResponseKey      string        `mapstructure:"response_key"`
	ResponseSalt     string        `mapstructure:"response_salt"`
	ResponseHashKey  string        `mapstructure:"response_hash_key"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config purely from environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			FailureRedirect:   getEnv("PAYMENT_FAILURE_REDIRECT", "/payment/failure"),
			SuccessRedirect:   getEnv("PAYMENT_SUCCESS_REDIRECT", "/payment/success"),
		},
		Database: DatabaseConfig{
			Source:          getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
		},
		Security: SecurityConfig{
			AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
			RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
			AccessTokenTTL:     15 * time.Minute,
			RefreshTokenTTL:    7 * 24 * time.Hour,
			BCryptCost:         getEnvAsInt("BCRYPT_COST", 10),
		},
		Credential: CredentialConfig{
			QRSecret: getEnv("QR_SECRET", ""),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			BaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		},
		Gateway: GatewayConfig{
			Endpoint:         getEnv("GATEWAY_ENDPOINT", ""),
			MerchantID:       getEnv("GATEWAY_MERCHANT_ID", ""),
			MerchantPassword: getEnv("GATEWAY_MERCHANT_PASSWORD", ""),
			RequestKey:       getEnv("GATEWAY_REQUEST_KEY", ""),
			RequestSalt:      getEnv("GATEWAY_REQUEST_SALT", ""),
			ResponseKey:      getEnv("GATEWAY_RESPONSE_KEY", ""),
			ResponseSalt:     getEnv("GATEWAY_RESPONSE_SALT", ""),
			ResponseHashKey:  getEnv("GATEWAY_RESPONSE_HASH_KEY", ""),
			Timeout:          30 * time.Second,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@anwesha.live"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Credential.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("credential config: %v", err))
	}

	if err := c.Gateway.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("gateway config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.AccessTokenSecret) < 32 {
		return errors.New("access token secret must be at least 32 characters")
	}
	if len(c.RefreshTokenSecret) < 32 {
		return errors.New("refresh token secret must be at least 32 characters")
	}
	return nil
}

// Validate fails startup when the QR secret is missing: operating with an
// undefined key would silently issue unverifiable credentials.
func (c *CredentialConfig) Validate() error {
	if c.QRSecret == "" {
		return errors.New("qr_secret is required")
	}
	return nil
}

// Validate requires the full key set when the gateway is enabled at all.
// A half-configured cipher must abort startup rather than encrypt with
// empty key material.
func (c *GatewayConfig) Validate() error {
	if c.Endpoint == "" {
		return nil
	}
	missing := []string{}
	for name, v := range map[string]string{
		"merchant_id":       c.MerchantID,
		"merchant_password": c.MerchantPassword,
		"request_key":       c.RequestKey,
		"request_salt":      c.RequestSalt,
		"response_key":      c.ResponseKey,
		"response_salt":     c.ResponseSalt,
		"response_hash_key": c.ResponseHashKey,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("gateway enabled but missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
