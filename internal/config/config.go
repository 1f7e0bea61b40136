package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverRedis    = "redis"
)

// Config is the fully resolved process configuration.
type Config struct {
	AppEnv          string
	LogLevel        string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	Store           StoreConfig
	Klippy          KlippyConfig
	Cloudinary      CloudinaryConfig
}

type StoreConfig struct {
	Driver        string
	MongoURL      string
	DBName        string
	PostgresDSN   string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type KlippyConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CloudinaryConfig holds media library credentials. The media routes are
// disabled when CloudName is empty.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// APIBaseURL overrides the Cloudinary API host, e.g. for a local stub.
	APIBaseURL string
	Timeout    time.Duration
}

// Enabled reports whether enough credentials are present to call Cloudinary
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "")
	v.SetDefault("http_addr", ":8001")
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("cors_origins", "*")

	v.SetDefault("store_driver", StoreDriverMongo)
	v.SetDefault("mongo_url", "mongodb://localhost:27017")
	v.SetDefault("db_name", "design_studio")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("sqlite_path", "status.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("klippy_base_url", "https://api.klippy.ai/v1")
	v.SetDefault("klippy_api_key", "")
	v.SetDefault("klippy_timeout", "10s")

	v.SetDefault("cloudinary_cloud_name", "")
	v.SetDefault("cloudinary_api_key", "")
	v.SetDefault("cloudinary_api_secret", "")
	v.SetDefault("cloudinary_api_url", "")
	v.SetDefault("cloudinary_timeout", "30s")
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("env file read '%s': %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:          v.GetString("app_env"),
		LogLevel:        v.GetString("log_level"),
		HTTPAddr:        v.GetString("http_addr"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		CORSOrigins:     SplitOrigins(v.GetString("cors_origins")),
		Store: StoreConfig{
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
			MongoURL:      v.GetString("mongo_url"),
			DBName:        v.GetString("db_name"),
			PostgresDSN:   v.GetString("postgres_dsn"),
			SQLitePath:    v.GetString("sqlite_path"),
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
		},
		Klippy: KlippyConfig{
			BaseURL: strings.TrimRight(v.GetString("klippy_base_url"), "/"),
			APIKey:  v.GetString("klippy_api_key"),
			Timeout: v.GetDuration("klippy_timeout"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName:  strings.TrimSpace(v.GetString("cloudinary_cloud_name")),
			APIKey:     v.GetString("cloudinary_api_key"),
			APISecret:  v.GetString("cloudinary_api_secret"),
			APIBaseURL: strings.TrimRight(v.GetString("cloudinary_api_url"), "/"),
			Timeout:    v.GetDuration("cloudinary_timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Store.MongoURL == "" || c.Store.DBName == "" {
			return errors.New("config: MONGO_URL and DB_NAME are required for the mongo store")
		}
	case StoreDriverPostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("config: POSTGRES_DSN is required for the postgres store")
		}
	case StoreDriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH is required for the sqlite store")
		}
	case StoreDriverRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("config: REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Klippy.Timeout <= 0 {
		return errors.New("config: KLIPPY_TIMEOUT must be positive")
	}
	if c.Cloudinary.Enabled() && (c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "") {
		return errors.New("config: CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required with CLOUDINARY_CLOUD_NAME")
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("config: CORS_ORIGINS must not be empty")
	}
	return nil
}

// SplitOrigins turns a comma separated allow-list into a slice, dropping blanks.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
