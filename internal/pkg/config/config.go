package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muhafiz/muhafiz-api/internal/pkg/env"
)

const (
	MediaDriverLocal = "local"
	MediaDriverS3    = "s3"
)

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"https://muhafizfrontenduserpanelfinal.vercel.app",
}

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	AppEnv string
	Host   string
	Port   string

	DatabaseDSN string
	JWTSecret   string

	AllowedOrigins []string

	ZoneServiceURL      string
	SafeRouteServiceURL string
	ProxyTimeout        time.Duration

	Media          MediaConfig
	MaxUploadBytes int

	MetricsUser     string
	MetricsPassword string
	OpenAPIFile     string
}

type MediaConfig struct {
	Driver    string
	UploadDir string
	S3        S3Config
}

// S3Config mirrors the S3 settings used for object storage backends.
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string
}

// Load reads the configuration from the environment (.env first, then OS).
func Load() (*Config, error) {
	env.SetupEnvFile()
	return FromEnv()
}

// FromEnv builds the configuration from already loaded variables. Missing
// required values are reported together.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:              env.GetEnv("APP_ENV", "prod"),
		Host:                env.GetEnv("APP_HOST", "0.0.0.0"),
		Port:                env.GetEnv("APP_PORT", ""),
		DatabaseDSN:         databaseDSN(),
		JWTSecret:           env.GetEnv("JWT_SECRET", ""),
		AllowedOrigins:      ParseOrigins(env.GetEnv("CORS_ALLOWED_ORIGINS", strings.Join(defaultAllowedOrigins, ","))),
		ZoneServiceURL:      env.GetEnv("ZONE_SERVICE_URL", "http://localhost:5001/get-zone-data"),
		SafeRouteServiceURL: env.GetEnv("SAFE_ROUTE_SERVICE_URL", "http://localhost:5001/safe-route"),
		Media: MediaConfig{
			Driver:    strings.ToLower(env.GetEnv("MEDIA_STORAGE", MediaDriverLocal)),
			UploadDir: env.GetEnv("UPLOAD_DIR", "uploads"),
			S3: S3Config{
				AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
				Region:          env.GetEnv("S3_REGION", "us-east-1"),
				BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
				EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
				PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
			},
		},
		MetricsUser:     env.GetEnv("METRICS_USER", ""),
		MetricsPassword: env.GetEnv("METRICS_PASSWORD", ""),
		OpenAPIFile:     env.GetEnv("OPENAPI_FILE", "docs/openapi.yml"),
	}

	timeout, err := time.ParseDuration(env.GetEnv("PROXY_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROXY_TIMEOUT: %w", err)
	}
	cfg.ProxyTimeout = timeout

	maxMB, err := strconv.Atoi(env.GetEnv("MAX_UPLOAD_MB", "100"))
	if err != nil || maxMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", env.GetEnv("MAX_UPLOAD_MB", ""))
	}
	cfg.MaxUploadBytes = maxMB * 1024 * 1024

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the required settings are present.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseDSN == "" {
		missing = append(missing, "DB_DSN (or DB_NAME)")
	}
	if c.Port == "" {
		missing = append(missing, "APP_PORT")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch c.Media.Driver {
	case MediaDriverLocal:
	case MediaDriverS3:
		if c.Media.S3.AccessKeyID == "" {
			return errors.New("S3_ACCESS_KEY_ID is required when MEDIA_STORAGE=s3")
		}
		if c.Media.S3.SecretAccessKey == "" {
			return errors.New("S3_SECRET_ACCESS_KEY is required when MEDIA_STORAGE=s3")
		}
		if c.Media.S3.BucketName == "" {
			return errors.New("S3_BUCKET_NAME is required when MEDIA_STORAGE=s3")
		}
	default:
		return fmt.Errorf("unknown MEDIA_STORAGE %q", c.Media.Driver)
	}
	return nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// ParseOrigins splits a comma separated allow-list. Trailing slashes are
// dropped because browsers never send them in the Origin header.
func ParseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// databaseDSN prefers DB_DSN and otherwise assembles a MySQL DSN from the
// individual DB_* variables.
func databaseDSN() string {
	if dsn := env.GetEnv("DB_DSN", ""); dsn != "" {
		return dsn
	}
	name := env.GetEnv("DB_NAME", "")
	if name == "" {
		return ""
	}
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		name,
	)
}
