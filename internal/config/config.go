package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	LLM      LLMConfig
	Notubiz  NotubizConfig
	Polls    PollsConfig
	Social   SocialConfig
	Email    EmailConfig
	Election ElectionConfig
	Embed    EmbedConfig
}

// EmbedConfig holds settings for the background embed worker in the API
// server. A zero PollInterval disables the worker.
type EmbedConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
}

// ElectionConfig points at the election YAML file the CLI works from.
type ElectionConfig struct {
	ConfigPath string `mapstructure:"config_path"`
	DataDir    string `mapstructure:"data_dir"`
}

// EmailConfig holds email delivery settings for unmatched-name reports.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	ReportTo    []string `mapstructure:"report_to"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds settings for a single LLM provider.
type ProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds text generation and embedding settings.
type LLMConfig struct {
	Primary     ProviderConfig  `mapstructure:"primary"`
	Secondary   ProviderConfig  `mapstructure:"secondary"`
	Embedding   ProviderConfig  `mapstructure:"embedding"`
	RetryDelays []time.Duration `mapstructure:"retry_delays"`
}

// SecondaryConfig returns the fallback generator config, or nil if not configured.
func (l *LLMConfig) SecondaryConfig() *ProviderConfig {
	if l.Secondary.Provider != "" {
		return &l.Secondary
	}
	return nil
}

// NotubizConfig holds council information system settings.
type NotubizConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	OrganisationID int           `mapstructure:"organisation_id"`
	Version        string        `mapstructure:"version"`
	RequestDelay   time.Duration `mapstructure:"request_delay"`
	TimeoutSecs    int           `mapstructure:"timeout_secs"`
}

// PollsConfig holds poll scraper settings.
type PollsConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	RequestDelay time.Duration `mapstructure:"request_delay"`
	TimeoutSecs  int           `mapstructure:"timeout_secs"`
}

// SocialConfig holds Bluesky and Brave Search settings.
type SocialConfig struct {
	BlueskyURL   string        `mapstructure:"bluesky_url"`
	BlueskyDelay time.Duration `mapstructure:"bluesky_delay"`
	BraveURL     string        `mapstructure:"brave_url"`
	BraveAPIKey  string        `mapstructure:"brave_api_key"`
	BraveDelay   time.Duration `mapstructure:"brave_delay"`
	TimeoutSecs  int           `mapstructure:"timeout_secs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// SearchRPM caps POST /search requests per minute across all clients;
	// every search costs an embedding and a generation call.
	SearchRPM int `mapstructure:"search_rpm"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for program PDFs.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the VIBECHECK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VIBECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.search_rpm", 30)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "vibecheck")
	v.SetDefault("db.password", "vibecheck_secret")
	v.SetDefault("db.name", "vibecheck")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "vibecheck-programs")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// LLM defaults
	v.SetDefault("llm.primary.provider", "claude")
	v.SetDefault("llm.primary.api_key", "")
	v.SetDefault("llm.primary.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("llm.primary.max_tokens", 2048)
	v.SetDefault("llm.primary.timeout_secs", 120)
	v.SetDefault("llm.secondary.provider", "")
	v.SetDefault("llm.secondary.api_key", "")
	v.SetDefault("llm.secondary.default_model", "")
	v.SetDefault("llm.secondary.max_tokens", 2048)
	v.SetDefault("llm.secondary.timeout_secs", 120)
	v.SetDefault("llm.embedding.provider", "openai")
	v.SetDefault("llm.embedding.api_key", "")
	v.SetDefault("llm.embedding.default_model", "text-embedding-3-small")
	v.SetDefault("llm.embedding.timeout_secs", 60)
	v.SetDefault("llm.retry_delays", "0s,2s,5s,10s")

	// Notubiz defaults (Amsterdam)
	v.SetDefault("notubiz.base_url", "https://api.notubiz.nl")
	v.SetDefault("notubiz.organisation_id", 281)
	v.SetDefault("notubiz.version", "1.10.8")
	v.SetDefault("notubiz.request_delay", "300ms")
	v.SetDefault("notubiz.timeout_secs", 30)

	// Embed worker defaults
	v.SetDefault("embed.poll_interval", "0s")
	v.SetDefault("embed.batch_size", 50)

	// Polls defaults
	v.SetDefault("polls.user_agent", "VibeCheck/1.0 (+https://vibecheck.amsterdam)")
	v.SetDefault("polls.request_delay", "1s")
	v.SetDefault("polls.timeout_secs", 30)

	// Social defaults
	v.SetDefault("social.bluesky_url", "https://public.api.bsky.app/xrpc")
	v.SetDefault("social.bluesky_delay", "300ms")
	v.SetDefault("social.brave_url", "https://api.search.brave.com/res/v1/web/search")
	v.SetDefault("social.brave_api_key", "")
	v.SetDefault("social.brave_delay", "1s")
	v.SetDefault("social.timeout_secs", 30)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "noreply@vibecheck.amsterdam")
	v.SetDefault("email.from_name", "VibeCheck")
	v.SetDefault("email.report_to", "")

	// Election defaults
	v.SetDefault("election.config_path", "config/amsterdam-2026.yaml")
	v.SetDefault("election.data_dir", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "VIBECHECK_SERVER_PORT",
		"server.read_timeout":         "VIBECHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "VIBECHECK_SERVER_WRITE_TIMEOUT",
		"server.environment":          "VIBECHECK_SERVER_ENVIRONMENT",
		"server.search_rpm":           "VIBECHECK_SERVER_SEARCH_RPM",
		"db.host":                     "VIBECHECK_DB_HOST",
		"db.port":                     "VIBECHECK_DB_PORT",
		"db.user":                     "VIBECHECK_DB_USER",
		"db.password":                 "VIBECHECK_DB_PASSWORD",
		"db.name":                     "VIBECHECK_DB_NAME",
		"db.sslmode":                  "VIBECHECK_DB_SSLMODE",
		"db.max_open":                 "VIBECHECK_DB_MAX_OPEN",
		"db.max_idle":                 "VIBECHECK_DB_MAX_IDLE",
		"s3.region":                   "VIBECHECK_S3_REGION",
		"s3.bucket":                   "VIBECHECK_S3_BUCKET",
		"s3.endpoint":                 "VIBECHECK_S3_ENDPOINT",
		"s3.access_key":               "VIBECHECK_S3_ACCESS_KEY",
		"s3.secret_key":               "VIBECHECK_S3_SECRET_KEY",
		"log.level":                   "VIBECHECK_LOG_LEVEL",
		"log.format":                  "VIBECHECK_LOG_FORMAT",
		"cors.allowed_origins":        "VIBECHECK_CORS_ALLOWED_ORIGINS",
		"llm.primary.provider":        "VIBECHECK_LLM_PRIMARY_PROVIDER",
		"llm.primary.api_key":         "VIBECHECK_LLM_PRIMARY_API_KEY",
		"llm.primary.default_model":   "VIBECHECK_LLM_PRIMARY_DEFAULT_MODEL",
		"llm.primary.max_tokens":      "VIBECHECK_LLM_PRIMARY_MAX_TOKENS",
		"llm.primary.timeout_secs":    "VIBECHECK_LLM_PRIMARY_TIMEOUT_SECS",
		"llm.secondary.provider":      "VIBECHECK_LLM_SECONDARY_PROVIDER",
		"llm.secondary.api_key":       "VIBECHECK_LLM_SECONDARY_API_KEY",
		"llm.secondary.default_model": "VIBECHECK_LLM_SECONDARY_DEFAULT_MODEL",
		"llm.secondary.max_tokens":    "VIBECHECK_LLM_SECONDARY_MAX_TOKENS",
		"llm.secondary.timeout_secs":  "VIBECHECK_LLM_SECONDARY_TIMEOUT_SECS",
		"llm.embedding.provider":      "VIBECHECK_LLM_EMBEDDING_PROVIDER",
		"llm.embedding.api_key":       "VIBECHECK_LLM_EMBEDDING_API_KEY",
		"llm.embedding.default_model": "VIBECHECK_LLM_EMBEDDING_DEFAULT_MODEL",
		"llm.embedding.timeout_secs":  "VIBECHECK_LLM_EMBEDDING_TIMEOUT_SECS",
		"llm.retry_delays":            "VIBECHECK_LLM_RETRY_DELAYS",
		"notubiz.base_url":            "VIBECHECK_NOTUBIZ_BASE_URL",
		"notubiz.organisation_id":     "VIBECHECK_NOTUBIZ_ORGANISATION_ID",
		"notubiz.version":             "VIBECHECK_NOTUBIZ_VERSION",
		"notubiz.request_delay":       "VIBECHECK_NOTUBIZ_REQUEST_DELAY",
		"notubiz.timeout_secs":        "VIBECHECK_NOTUBIZ_TIMEOUT_SECS",
		"polls.user_agent":            "VIBECHECK_POLLS_USER_AGENT",
		"polls.request_delay":         "VIBECHECK_POLLS_REQUEST_DELAY",
		"polls.timeout_secs":          "VIBECHECK_POLLS_TIMEOUT_SECS",
		"social.bluesky_url":          "VIBECHECK_SOCIAL_BLUESKY_URL",
		"social.bluesky_delay":        "VIBECHECK_SOCIAL_BLUESKY_DELAY",
		"social.brave_url":            "VIBECHECK_SOCIAL_BRAVE_URL",
		"social.brave_api_key":        "VIBECHECK_SOCIAL_BRAVE_API_KEY",
		"social.brave_delay":          "VIBECHECK_SOCIAL_BRAVE_DELAY",
		"social.timeout_secs":         "VIBECHECK_SOCIAL_TIMEOUT_SECS",
		"email.provider":              "VIBECHECK_EMAIL_PROVIDER",
		"email.region":                "VIBECHECK_EMAIL_REGION",
		"email.from_address":          "VIBECHECK_EMAIL_FROM_ADDRESS",
		"email.from_name":             "VIBECHECK_EMAIL_FROM_NAME",
		"email.report_to":             "VIBECHECK_EMAIL_REPORT_TO",
		"election.config_path":        "VIBECHECK_ELECTION_CONFIG_PATH",
		"election.data_dir":           "VIBECHECK_ELECTION_DATA_DIR",
		"embed.poll_interval":         "VIBECHECK_EMBED_POLL_INTERVAL",
		"embed.batch_size":            "VIBECHECK_EMBED_BATCH_SIZE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VIBECHECK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VIBECHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		SearchRPM:    v.GetInt("server.search_rpm"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	retryDelays, err := parseDurations(v.GetString("llm.retry_delays"))
	if err != nil {
		return nil, fmt.Errorf("config: llm.retry_delays: %w", err)
	}
	cfg.LLM = LLMConfig{
		Primary:     providerConfig(v, "llm.primary"),
		Secondary:   providerConfig(v, "llm.secondary"),
		Embedding:   providerConfig(v, "llm.embedding"),
		RetryDelays: retryDelays,
	}

	cfg.Notubiz = NotubizConfig{
		BaseURL:        v.GetString("notubiz.base_url"),
		OrganisationID: v.GetInt("notubiz.organisation_id"),
		Version:        v.GetString("notubiz.version"),
		RequestDelay:   v.GetDuration("notubiz.request_delay"),
		TimeoutSecs:    v.GetInt("notubiz.timeout_secs"),
	}
	cfg.Polls = PollsConfig{
		UserAgent:    v.GetString("polls.user_agent"),
		RequestDelay: v.GetDuration("polls.request_delay"),
		TimeoutSecs:  v.GetInt("polls.timeout_secs"),
	}
	cfg.Social = SocialConfig{
		BlueskyURL:   v.GetString("social.bluesky_url"),
		BlueskyDelay: v.GetDuration("social.bluesky_delay"),
		BraveURL:     v.GetString("social.brave_url"),
		BraveAPIKey:  v.GetString("social.brave_api_key"),
		BraveDelay:   v.GetDuration("social.brave_delay"),
		TimeoutSecs:  v.GetInt("social.timeout_secs"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ReportTo:    splitList(v.GetString("email.report_to")),
	}

	cfg.Election = ElectionConfig{
		ConfigPath: v.GetString("election.config_path"),
		DataDir:    v.GetString("election.data_dir"),
	}

	cfg.Embed = EmbedConfig{
		PollInterval: v.GetDuration("embed.poll_interval"),
		BatchSize:    v.GetInt("embed.batch_size"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) ProviderConfig {
	return ProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       v.GetString(prefix + ".api_key"),
		DefaultModel: v.GetString(prefix + ".default_model"),
		MaxTokens:    v.GetInt(prefix + ".max_tokens"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated string, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDurations(s string) ([]time.Duration, error) {
	var out []time.Duration
	for _, item := range splitList(s) {
		d, err := time.ParseDuration(item)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
