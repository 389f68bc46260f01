package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, service URLs), security settings
// - default: Values common across all environments (timezone, timeout, lock TTL), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Lock     LockConfig
	Booking  BookingConfig
	Services ServicesConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" required:"true"`
	Password    string `envconfig:"DB_PASSWORD" required:"true"`
	DBName      string `envconfig:"DB_NAME" required:"true"`
	SSLMode     string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone    string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns    int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Backend "memory" keeps locks in-process and is only safe for a single replica.
type LockConfig struct {
	Backend string        `envconfig:"LOCK_BACKEND" default:"redis"`
	TTL     time.Duration `envconfig:"LOCK_TTL" default:"30s"`
}

type BookingConfig struct {
	SyncInterval    time.Duration `envconfig:"SYNC_INTERVAL" default:"0s"`
	SyncConcurrency int           `envconfig:"SYNC_CONCURRENCY" default:"4"`
	SyncOnStartup   bool          `envconfig:"SYNC_ON_STARTUP" default:"true"`
}

type ServicesConfig struct {
	VendorServiceURL string        `envconfig:"VENDOR_SERVICE_URL" required:"true"`
	VendorTimeout    time.Duration `envconfig:"VENDOR_TIMEOUT" default:"5s"`
	AIServiceURL     string        `envconfig:"AI_SERVICE_URL" required:"true"`
	AITimeout        time.Duration `envconfig:"AI_TIMEOUT" default:"5s"`
	AIRatePerSec     float64       `envconfig:"AI_RATE_PER_SEC" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the auth service; this service only verifies them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type TracingConfig struct {
	ServiceName    string `envconfig:"TRACING_SERVICE_NAME" default:"order-service"`
	JaegerEndpoint string `envconfig:"JAEGER_ENDPOINT" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Lock.TTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive, got %s", c.Lock.TTL)
	}
	switch c.Lock.Backend {
	case LockBackendRedis, LockBackendMemory:
	default:
		return fmt.Errorf("unknown LOCK_BACKEND %q", c.Lock.Backend)
	}
	if c.Booking.SyncConcurrency < 1 {
		return fmt.Errorf("SYNC_CONCURRENCY must be at least 1, got %d", c.Booking.SyncConcurrency)
	}
	return nil
}

const (
	LockBackendRedis  = "redis"
	LockBackendMemory = "memory"
)

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Lock: LockConfig{
			Backend: LockBackendMemory,
			TTL:     30 * time.Second,
		},
		Booking: BookingConfig{
			SyncConcurrency: 4,
		},
		Services: ServicesConfig{
			VendorTimeout: 5 * time.Second,
			AITimeout:     5 * time.Second,
			AIRatePerSec:  100,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret: "test-secret-key-for-order-service",
		},
		Tracing: TracingConfig{
			ServiceName: "order-service-test",
		},
	}
}
