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
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Ingest IngestConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IngestConfig holds NF-e import settings.
type IngestConfig struct {
	// CandidateLimit bounds the catalog items loaded for name matching. Items
	// beyond the bound are never considered.
	CandidateLimit    int     `mapstructure:"candidate_limit"`
	SuggestNames      bool    `mapstructure:"suggest_names"`
	BarcodeConfidence float64 `mapstructure:"barcode_confidence"`
	NameConfidence    float64 `mapstructure:"name_confidence"`
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

// JWTConfig holds the settings used to verify access tokens issued by the
// identity service.
type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the NFEINTAKE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NFEINTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "nfeintake")
	v.SetDefault("db.password", "nfeintake_secret")
	v.SetDefault("db.name", "nfeintake_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "nfeintake")
	v.SetDefault("jwt.audience", "")

	// S3 defaults
	v.SetDefault("s3.region", "sa-east-1")
	v.SetDefault("s3.bucket", "nfeintake-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 5)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Ingest defaults
	v.SetDefault("ingest.candidate_limit", 500)
	v.SetDefault("ingest.suggest_names", true)
	v.SetDefault("ingest.barcode_confidence", 1.0)
	v.SetDefault("ingest.name_confidence", 0.8)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "NFEINTAKE_SERVER_PORT",
		"server.read_timeout":       "NFEINTAKE_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "NFEINTAKE_SERVER_WRITE_TIMEOUT",
		"server.environment":        "NFEINTAKE_SERVER_ENVIRONMENT",
		"db.host":                   "NFEINTAKE_DB_HOST",
		"db.port":                   "NFEINTAKE_DB_PORT",
		"db.user":                   "NFEINTAKE_DB_USER",
		"db.password":               "NFEINTAKE_DB_PASSWORD",
		"db.name":                   "NFEINTAKE_DB_NAME",
		"db.sslmode":                "NFEINTAKE_DB_SSLMODE",
		"db.max_open":               "NFEINTAKE_DB_MAX_OPEN",
		"db.max_idle":               "NFEINTAKE_DB_MAX_IDLE",
		"jwt.secret":                "NFEINTAKE_JWT_SECRET",
		"jwt.issuer":                "NFEINTAKE_JWT_ISSUER",
		"jwt.audience":              "NFEINTAKE_JWT_AUDIENCE",
		"s3.region":                 "NFEINTAKE_S3_REGION",
		"s3.bucket":                 "NFEINTAKE_S3_BUCKET",
		"s3.endpoint":               "NFEINTAKE_S3_ENDPOINT",
		"s3.access_key":             "NFEINTAKE_S3_ACCESS_KEY",
		"s3.secret_key":             "NFEINTAKE_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "NFEINTAKE_S3_MAX_FILE_SIZE_MB",
		"log.level":                 "NFEINTAKE_LOG_LEVEL",
		"log.format":                "NFEINTAKE_LOG_FORMAT",
		"cors.allowed_origins":      "NFEINTAKE_CORS_ALLOWED_ORIGINS",
		"ingest.candidate_limit":    "NFEINTAKE_INGEST_CANDIDATE_LIMIT",
		"ingest.suggest_names":      "NFEINTAKE_INGEST_SUGGEST_NAMES",
		"ingest.barcode_confidence": "NFEINTAKE_INGEST_BARCODE_CONFIDENCE",
		"ingest.name_confidence":    "NFEINTAKE_INGEST_NAME_CONFIDENCE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if NFEINTAKE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("NFEINTAKE_SERVER_PORT") == "" {
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
		Secret:   v.GetString("jwt.secret"),
		Issuer:   v.GetString("jwt.issuer"),
		Audience: v.GetString("jwt.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
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

	cfg.Ingest = IngestConfig{
		CandidateLimit:    v.GetInt("ingest.candidate_limit"),
		SuggestNames:      v.GetBool("ingest.suggest_names"),
		BarcodeConfidence: v.GetFloat64("ingest.barcode_confidence"),
		NameConfidence:    v.GetFloat64("ingest.name_confidence"),
	}
	if cfg.Ingest.CandidateLimit <= 0 {
		return nil, fmt.Errorf("ingest.candidate_limit must be positive, got %d", cfg.Ingest.CandidateLimit)
	}

	return cfg, nil
}
