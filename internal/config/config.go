// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP API listens on (e.g. :5000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN. The server refuses to start without it.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// AutoMigrate applies embedded migrations at server startup.
	AutoMigrate bool `mapstructure:"AUTO_MIGRATE"`
	// CORSOrigins is a comma-separated list of allowed browser origins.
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
	// LogLevel is the zap level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Ledger (optional). Both account and key must be set for real delivery; otherwise audit references are simulated.
	HederaAccountID  string `mapstructure:"HEDERA_ACCOUNT_ID"`
	HederaPrivateKey string `mapstructure:"HEDERA_PRIVATE_KEY"`
	// OperatorID and OperatorKey are accepted as aliases for the Hedera account and key.
	OperatorID  string `mapstructure:"OPERATOR_ID"`
	OperatorKey string `mapstructure:"OPERATOR_KEY"`
	// HederaTopicID selects topic delivery; when empty a file holding the digest is created instead.
	HederaTopicID string `mapstructure:"HEDERA_TOPIC_ID"`
	// LedgerNetwork is the ledger network name (testnet, previewnet, mainnet).
	LedgerNetwork string `mapstructure:"NETWORK"`

	// AI scoring (optional). Without URL and key the extended heuristic is used.
	AIScoringURL   string `mapstructure:"WATSONX_URL"`
	AIScoringKey   string `mapstructure:"WATSONX_API_KEY"`
	AIScoringModel string `mapstructure:"WATSON_MODEL"`

	// Workflow automation (optional). Without URL and key the rule engine is used.
	WorkflowURL string `mapstructure:"ORCHESTRATE_URL"`
	WorkflowKey string `mapstructure:"ORCHESTRATE_API_KEY"`
	// WorkflowPolicyFile is an optional Rego file replacing the built-in workflow rules.
	WorkflowPolicyFile string `mapstructure:"WORKFLOW_POLICY_FILE"`
	// WorkflowRateLimit caps outbound workflow calls per second.
	WorkflowRateLimit int `mapstructure:"WORKFLOW_RATE_LIMIT"`

	// Advisory mail (optional). Without SMTP_HOST and MAIL_FROM advisories are logged instead of sent.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	// GmailAppPassword is accepted as an alias for SMTP_PASSWORD.
	GmailAppPassword string `mapstructure:"GMAIL_APP_PASSWORD"`
	// MailFrom is the From header, e.g. "WellMind HR <hr@example.com>".
	MailFrom string `mapstructure:"MAIL_FROM"`

	// Care chat (optional). CHAT_BASE_URL is any OpenAI-compatible endpoint.
	ChatAPIKey string `mapstructure:"CHAT_API_KEY"`
	// GeminiAPIKey is accepted as an alias for CHAT_API_KEY.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	ChatModel    string `mapstructure:"CHAT_MODEL"`
	ChatBaseURL  string `mapstructure:"CHAT_BASE_URL"`

	// ExternalTimeout bounds every ledger, workflow and AI scoring call (e.g. "10s").
	ExternalTimeout string `mapstructure:"EXTERNAL_TIMEOUT"`

	// HRPassword enables bearer-token auth on HR routes when set.
	HRPassword string `mapstructure:"HR_PASSWORD"`
	// JWTPrivateKey is the PEM-encoded private key (RSA or ECDSA) or path to file; required when HR auth is enabled.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key or path to file; used with JWT_PRIVATE_KEY.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`
	JWTAudience  string `mapstructure:"JWT_AUDIENCE"`
	// JWTAccessTTL is the HR token lifetime (e.g. "8h").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// NotifySchedule is the cron spec for the high-risk sweep; empty disables the schedule.
	NotifySchedule string `mapstructure:"NOTIFY_SCHEDULE"`
	// NotifyCooldown is the minimum time between two notifications for one employee (e.g. "24h").
	NotifyCooldown string `mapstructure:"NOTIFY_COOLDOWN"`

	// RateLimitRPS and RateLimitBurst bound POST requests per client IP.
	RateLimitRPS   int `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int `mapstructure:"RATE_LIMIT_BURST"`

	// OTLPEndpoint is the OpenTelemetry collector endpoint; empty installs no-op providers.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// Events (optional). When Kafka brokers are set, submission events are published to Kafka.
	// KafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EventsTopic is the Kafka topic for submission events.
	EventsTopic string `mapstructure:"TELEMETRY_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the events worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the events worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HEDERA_ACCOUNT_ID", "")
	v.SetDefault("HEDERA_PRIVATE_KEY", "")
	v.SetDefault("OPERATOR_ID", "")
	v.SetDefault("OPERATOR_KEY", "")
	v.SetDefault("HEDERA_TOPIC_ID", "")
	v.SetDefault("NETWORK", "testnet")
	v.SetDefault("WATSONX_URL", "")
	v.SetDefault("WATSONX_API_KEY", "")
	v.SetDefault("WATSON_MODEL", "wellmind-burnout-detector")
	v.SetDefault("ORCHESTRATE_URL", "")
	v.SetDefault("ORCHESTRATE_API_KEY", "")
	v.SetDefault("WORKFLOW_POLICY_FILE", "")
	v.SetDefault("WORKFLOW_RATE_LIMIT", 5)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("GMAIL_APP_PASSWORD", "")
	v.SetDefault("MAIL_FROM", "")
	v.SetDefault("CHAT_API_KEY", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("CHAT_MODEL", "gemini-2.5-flash")
	v.SetDefault("CHAT_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("EXTERNAL_TIMEOUT", "10s")
	v.SetDefault("HR_PASSWORD", "")
	v.SetDefault("JWT_PRIVATE_KEY", "")
	v.SetDefault("JWT_PUBLIC_KEY", "")
	v.SetDefault("JWT_ISSUER", "wellmind-auth")
	v.SetDefault("JWT_AUDIENCE", "wellmind-hr")
	v.SetDefault("JWT_ACCESS_TTL", "8h")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("NOTIFY_SCHEDULE", "@every 1h")
	v.SetDefault("NOTIFY_COOLDOWN", "24h")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("TELEMETRY_KAFKA_TOPIC", "wellmind-events")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("KAFKA_GROUP_ID", "wellmind-events-worker")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.HederaAccountID == "" {
		cfg.HederaAccountID = cfg.OperatorID
	}
	if cfg.HederaPrivateKey == "" {
		cfg.HederaPrivateKey = cfg.OperatorKey
	}
	if cfg.SMTPPassword == "" {
		cfg.SMTPPassword = cfg.GmailAppPassword
	}
	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = 587
	}
	if cfg.ChatAPIKey == "" {
		cfg.ChatAPIKey = cfg.GeminiAPIKey
	}
	cfg.LedgerNetwork = strings.ToLower(strings.TrimSpace(cfg.LedgerNetwork))
	if cfg.LedgerNetwork == "" {
		cfg.LedgerNetwork = "testnet"
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	if cfg.HRAuthEnabled() && (cfg.JWTPrivateKey == "" || cfg.JWTPublicKey == "") {
		return nil, errors.New("config: JWT_PRIVATE_KEY and JWT_PUBLIC_KEY must be set when HR_PASSWORD is set")
	}

	if cfg.WorkflowRateLimit <= 0 {
		cfg.WorkflowRateLimit = 5
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 10
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = cfg.RateLimitRPS
	}

	return &cfg, nil
}

// LedgerEnabled reports whether ledger credentials are configured.
func (c *Config) LedgerEnabled() bool {
	return c != nil && c.HederaAccountID != "" && c.HederaPrivateKey != ""
}

// AIScoringEnabled reports whether the AI scoring service is configured.
func (c *Config) AIScoringEnabled() bool {
	return c != nil && c.AIScoringURL != "" && c.AIScoringKey != ""
}

// WorkflowEnabled reports whether the workflow automation service is configured.
func (c *Config) WorkflowEnabled() bool {
	return c != nil && c.WorkflowURL != "" && c.WorkflowKey != ""
}

// MailEnabled reports whether advisories are delivered over SMTP.
func (c *Config) MailEnabled() bool {
	return c != nil && c.SMTPHost != "" && c.MailFrom != ""
}

// ChatEnabled reports whether the care chat assistant is configured.
func (c *Config) ChatEnabled() bool {
	return c != nil && c.ChatAPIKey != ""
}

// HRAuthEnabled reports whether HR routes require a bearer token.
func (c *Config) HRAuthEnabled() bool {
	return c != nil && c.HRPassword != ""
}

// ExternalTimeoutDuration parses ExternalTimeout. Returns 10s if unset or invalid.
func (c *Config) ExternalTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ExternalTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 8h if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return 8 * time.Hour
	}
	return d
}

// NotifyCooldownDuration parses NotifyCooldown. Returns 24h if unset or invalid.
func (c *Config) NotifyCooldownDuration() time.Duration {
	d, err := time.ParseDuration(c.NotifyCooldown)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if event publishing is enabled (non-empty list) and to create the producer.
func (c *Config) KafkaBrokersList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.KafkaBrokers)
}

// CORSOriginsList returns the allowed CORS origins.
func (c *Config) CORSOriginsList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.CORSOrigins)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
