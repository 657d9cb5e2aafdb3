package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hotelpms/constants"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config cấu hình ứng dụng đọc từ biến môi trường
type Config struct {
	Port string
	Env  string

	StoreDriver string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	KafkaBrokers []string
	KafkaTopic   string

	CloudinaryURL string

	JWTSecret     string
	SystemActorID string

	TaxRate               float64
	ExtraBedRate          float64
	BookingRefMaxAttempts int
	TxMaxRetries          int
	ArrivalsCron          string
	Location              *time.Location
	CORSOrigins           []string
}

// LoadEnv nạp file .env nếu có, lỗi được trả về để caller quyết định log hay bỏ qua
func LoadEnv() error {
	return godotenv.Load()
}

func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load đọc Config từ môi trường. Gọi LoadEnv trước nếu muốn dùng .env
func Load() (*Config, error) {
	cfg := &Config{
		Port:          GetEnv("PORT", "8083"),
		Env:           GetEnv("ENV", "dev"),
		StoreDriver:   strings.ToLower(GetEnv("STORE_DRIVER", StoreDriverPostgres)),
		DatabaseURL:   GetEnv("DATABASE_URL", ""),
		DBHost:        GetEnv("DB_HOST", "localhost"),
		DBPort:        GetEnv("DB_PORT", "5432"),
		DBUser:        GetEnv("DB_USER", "postgres"),
		DBPassword:    GetEnv("DB_PASSWORD", ""),
		DBName:        GetEnv("DB_NAME", "hotelpms"),
		DBSSLMode:     GetEnv("DB_SSLMODE", "disable"),
		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisUser:     GetEnv("REDIS_USER", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:  splitList(GetEnv("KAFKA_BROKERS", "")),
		KafkaTopic:    GetEnv("KAFKA_TOPIC", "reservation-events"),
		CloudinaryURL: GetEnv("CLOUDINARY_URL", ""),
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		SystemActorID: GetEnv("SYSTEM_ACTOR_ID", "system"),
		ArrivalsCron:  GetEnv("ARRIVALS_CRON", "5 0 * * *"),
		CORSOrigins:   splitList(GetEnv("CORS_ORIGINS", "")),
	}

	var err error
	if cfg.TaxRate, err = floatEnv("TAX_RATE", constants.StandardTaxRate); err != nil {
		return nil, err
	}
	if cfg.ExtraBedRate, err = floatEnv("EXTRA_BED_RATE", constants.DefaultExtraBedRate); err != nil {
		return nil, err
	}
	if cfg.BookingRefMaxAttempts, err = intEnv("BOOKING_REF_MAX_ATTEMPTS", 20); err != nil {
		return nil, err
	}
	if cfg.TxMaxRetries, err = intEnv("TX_MAX_RETRIES", 3); err != nil {
		return nil, err
	}
	if cfg.Location, err = time.LoadLocation(GetEnv("TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// DSN chuỗi kết nối postgres, ưu tiên DATABASE_URL
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.Location.String())
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
