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
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Extractor ExtractorConfig
	Registry  RegistryConfig
	Recon     ReconConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
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

// JWTConfig holds JWT validation settings for the API.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for source document storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractorConfig holds settings for the upstream document extraction service.
type ExtractorConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// RegistryConfig holds settings for the GST verification API.
type RegistryConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ReconConfig holds the reconciliation tolerance policy.
type ReconConfig struct {
	AmountTolerance float64 `mapstructure:"amount_tolerance"`
	UdyamSuffixLen  int     `mapstructure:"udyam_suffix_len"`
	HSNPrefixLen    int     `mapstructure:"hsn_prefix_len"`
}

// Load reads configuration from environment variables with the PARAKH_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PARAKH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "parakh")
	v.SetDefault("db.password", "parakh_secret")
	v.SetDefault("db.name", "parakh_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "parakh")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "parakh-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Extractor defaults
	v.SetDefault("extractor.base_url", "http://localhost:8000")
	v.SetDefault("extractor.timeout_secs", 60)

	// Registry defaults
	v.SetDefault("registry.base_url", "https://appyflow.in")
	v.SetDefault("registry.api_key", "")
	v.SetDefault("registry.timeout_secs", 5)

	// Reconciliation policy defaults
	v.SetDefault("recon.amount_tolerance", 0.05)
	v.SetDefault("recon.udyam_suffix_len", 5)
	v.SetDefault("recon.hsn_prefix_len", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "PARAKH_SERVER_PORT",
		"server.read_timeout":    "PARAKH_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "PARAKH_SERVER_WRITE_TIMEOUT",
		"server.environment":     "PARAKH_SERVER_ENVIRONMENT",
		"db.host":                "PARAKH_DB_HOST",
		"db.port":                "PARAKH_DB_PORT",
		"db.user":                "PARAKH_DB_USER",
		"db.password":            "PARAKH_DB_PASSWORD",
		"db.name":                "PARAKH_DB_NAME",
		"db.sslmode":             "PARAKH_DB_SSLMODE",
		"db.max_open":            "PARAKH_DB_MAX_OPEN",
		"db.max_idle":            "PARAKH_DB_MAX_IDLE",
		"jwt.secret":             "PARAKH_JWT_SECRET",
		"jwt.issuer":             "PARAKH_JWT_ISSUER",
		"s3.region":              "PARAKH_S3_REGION",
		"s3.bucket":              "PARAKH_S3_BUCKET",
		"s3.endpoint":            "PARAKH_S3_ENDPOINT",
		"s3.access_key":          "PARAKH_S3_ACCESS_KEY",
		"s3.secret_key":          "PARAKH_S3_SECRET_KEY",
		"s3.max_file_size_mb":    "PARAKH_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":      "PARAKH_S3_PRESIGN_EXPIRY",
		"log.level":              "PARAKH_LOG_LEVEL",
		"log.format":             "PARAKH_LOG_FORMAT",
		"cors.allowed_origins":   "PARAKH_CORS_ALLOWED_ORIGINS",
		"extractor.base_url":     "PARAKH_EXTRACTOR_BASE_URL",
		"extractor.timeout_secs": "PARAKH_EXTRACTOR_TIMEOUT_SECS",
		"registry.base_url":      "PARAKH_REGISTRY_BASE_URL",
		"registry.api_key":       "PARAKH_REGISTRY_API_KEY",
		"registry.timeout_secs":  "PARAKH_REGISTRY_TIMEOUT_SECS",
		"recon.amount_tolerance": "PARAKH_RECON_AMOUNT_TOLERANCE",
		"recon.udyam_suffix_len": "PARAKH_RECON_UDYAM_SUFFIX_LEN",
		"recon.hsn_prefix_len":   "PARAKH_RECON_HSN_PREFIX_LEN",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PARAKH_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PARAKH_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Extractor = ExtractorConfig{
		BaseURL:     v.GetString("extractor.base_url"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
	}
	cfg.Registry = RegistryConfig{
		BaseURL:     v.GetString("registry.base_url"),
		APIKey:      v.GetString("registry.api_key"),
		TimeoutSecs: v.GetInt("registry.timeout_secs"),
	}
	cfg.Recon = ReconConfig{
		AmountTolerance: v.GetFloat64("recon.amount_tolerance"),
		UdyamSuffixLen:  v.GetInt("recon.udyam_suffix_len"),
		HSNPrefixLen:    v.GetInt("recon.hsn_prefix_len"),
	}

	return cfg, nil
}
