package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Monitor    MonitorConfig
	Redis      RedisConfig
	NATS       NATSConfig
	S3         S3Config
	CloudWatch CloudWatchConfig
	Security   SecurityConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type MonitorConfig struct {
	LayerHeight       float64
	MaxExpectedHeight float64
	UpdateCadence     int
	EarlyLayers       int
	LayerInterval     int
	AlertTTL          time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	TTL          time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type NATSConfig struct {
	Enabled bool
	URL     string
}

type S3Config struct {
	Enabled         bool
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	KeyPrefix       string
	URLMode         string
	PresignedTTL    time.Duration
}

type CloudWatchConfig struct {
	Enabled         bool
	Namespace       string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	LogGroupName    string
	LogStreamName   string
}

type SecurityConfig struct {
	AllowedOrigins []string
	AuthEnabled    bool
	AuthToken      string
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	layerHeight, err := strconv.ParseFloat(getEnv("MONITOR_LAYER_HEIGHT", "0.2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_LAYER_HEIGHT: %w", err)
	}
	if layerHeight <= 0 {
		return nil, fmt.Errorf("MONITOR_LAYER_HEIGHT must be positive")
	}

	maxHeight, err := strconv.ParseFloat(getEnv("MONITOR_MAX_EXPECTED_HEIGHT", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_MAX_EXPECTED_HEIGHT: %w", err)
	}

	updateCadence, err := strconv.Atoi(getEnv("MONITOR_UPDATE_CADENCE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_UPDATE_CADENCE: %w", err)
	}
	if updateCadence <= 0 {
		return nil, fmt.Errorf("MONITOR_UPDATE_CADENCE must be positive")
	}

	earlyLayers, err := strconv.Atoi(getEnv("MONITOR_EARLY_LAYERS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_EARLY_LAYERS: %w", err)
	}
	if earlyLayers < 0 {
		return nil, fmt.Errorf("MONITOR_EARLY_LAYERS must not be negative")
	}

	layerInterval, err := strconv.Atoi(getEnv("MONITOR_LAYER_INTERVAL", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_LAYER_INTERVAL: %w", err)
	}
	if layerInterval <= 0 {
		return nil, fmt.Errorf("MONITOR_LAYER_INTERVAL must be positive")
	}

	alertTTL, err := time.ParseDuration(getEnv("MONITOR_ALERT_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONITOR_ALERT_TTL: %w", err)
	}
	if alertTTL <= 0 {
		return nil, fmt.Errorf("MONITOR_ALERT_TTL must be positive")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnv("REDIS_TTL", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	presignedTTL, err := time.ParseDuration(getEnv("S3_PRESIGNED_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid S3_PRESIGNED_TTL: %w", err)
	}

	rateLimitRPS, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	rateLimitBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:         getEnvBool("DB_ENABLED", true),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "fada"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 10 * time.Minute,
		},
		Monitor: MonitorConfig{
			LayerHeight:       layerHeight,
			MaxExpectedHeight: maxHeight,
			UpdateCadence:     updateCadence,
			EarlyLayers:       earlyLayers,
			LayerInterval:     layerInterval,
			AlertTTL:          alertTTL,
		},
		Redis: RedisConfig{
			Enabled:      getEnvBool("REDIS_ENABLED", true),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           redisDB,
			TTL:          redisTTL,
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		NATS: NATSConfig{
			Enabled: getEnvBool("NATS_ENABLED", false),
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
		},
		S3: S3Config{
			Enabled:         getEnvBool("S3_ENABLED", false),
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    getEnvBool("S3_USE_PATH_STYLE", true),
			KeyPrefix:       getEnv("S3_KEY_PREFIX", "reports"),
			URLMode:         getEnv("S3_URL_MODE", "presigned"),
			PresignedTTL:    presignedTTL,
		},
		CloudWatch: CloudWatchConfig{
			Enabled:         getEnvBool("CLOUDWATCH_ENABLED", false),
			Namespace:       getEnv("CLOUDWATCH_NAMESPACE", "FADA/Detections"),
			Region:          getEnv("CLOUDWATCH_REGION", "us-east-1"),
			Endpoint:        getEnv("CLOUDWATCH_ENDPOINT", ""),
			AccessKeyID:     getEnv("CLOUDWATCH_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("CLOUDWATCH_SECRET_ACCESS_KEY", ""),
			LogGroupName:    getEnv("CLOUDWATCH_LOG_GROUP", "/fada/alerts"),
			LogStreamName:   getEnv("CLOUDWATCH_LOG_STREAM", "evaluator"),
		},
		Security: SecurityConfig{
			AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")),
			AuthEnabled:    getEnvBool("AUTH_ENABLED", false),
			AuthToken:      getEnv("AUTH_BEARER_TOKEN", ""),
			RateLimitRPS:   rateLimitRPS,
			RateLimitBurst: rateLimitBurst,
		},
	}

	if cfg.Security.AuthEnabled && cfg.Security.AuthToken == "" {
		return nil, fmt.Errorf("AUTH_BEARER_TOKEN is required when AUTH_ENABLED=true")
	}

	if cfg.S3.Enabled && cfg.S3.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required when S3_ENABLED=true")
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func splitCSV(raw string) []string {
	items := make([]string, 0)
	current := ""

	for _, r := range raw {
		if r == ',' {
			if current != "" {
				items = append(items, current)
				current = ""
			}
			continue
		}
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			current += string(r)
		}
	}

	if current != "" {
		items = append(items, current)
	}

	return items
}
