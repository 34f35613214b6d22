package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	HTTPAddr    string
	LogLevel    string
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Auth        AuthConfig
	Storage     StorageConfig
	HTTP        HTTPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig 查詢快取與權限快照的設定
type CacheConfig struct {
	Backend       string // memory | redis | none
	TTL           time.Duration
	PermissionTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type StorageConfig struct {
	Backend   string // s3 | memory
	Endpoint  string
	Region    string
	PublicURL string
}

type HTTPConfig struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

var AppConfig *Config

func LoadConfig() *Config {
	env := getEnv("GO_ENV", "development")

	// production 直接讀系統環境變數
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	}

	AppConfig = &Config{
		Environment: env,
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database:    GetDatabaseConfig(),
		Redis:       GetRedisConfig(),
		Cache:       GetCacheConfig(),
		Auth:        GetAuthConfig(),
		Storage:     GetStorageConfig(),
		HTTP:        GetHTTPConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Environment: "test",
		HTTPAddr:    ":0",
		LogLevel:    "debug",
		Database:    *testConfig,
		Redis:       testRedisConfig,
		Cache: CacheConfig{
			Backend:       "memory",
			TTL:           5 * time.Minute,
			PermissionTTL: 5 * time.Minute,
		},
		Auth: AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
		},
		Storage: StorageConfig{
			Backend:   "memory",
			PublicURL: "http://storage.test",
		},
		HTTP: HTTPConfig{
			CORSOrigins:    []string{"*"},
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetCacheConfig() CacheConfig {
	return CacheConfig{
		Backend:       strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		TTL:           getDuration("CACHE_TTL", 5*time.Minute),
		PermissionTTL: getDuration("PERMISSION_CACHE_TTL", 5*time.Minute),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", "change-me"),
		TokenTTL:  getDuration("JWT_TTL", 24*time.Hour),
	}
}

func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:   strings.ToLower(getEnv("STORAGE_BACKEND", "memory")),
		Endpoint:  getEnv("S3_ENDPOINT", ""),
		Region:    getEnv("S3_REGION", "auto"),
		PublicURL: strings.TrimRight(getEnv("S3_PUBLIC_URL", ""), "/"),
	}
}

func GetHTTPConfig() HTTPConfig {
	origins := []string{}
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		panic(err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))
	if err != nil {
		panic(err)
	}

	return HTTPConfig{
		CORSOrigins:    origins,
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
