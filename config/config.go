package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Storage backend: "mongo" or "file".
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DataDir        string `mapstructure:"DATA_DIR"`
	SeedSampleData bool   `mapstructure:"SEED_SAMPLE_DATA"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	CatalogCacheTTLSec   int    `mapstructure:"CATALOG_CACHE_TTL_SEC"`

	// Reservation engine settings. Validated eagerly at startup.
	ReservationDurationMin int `mapstructure:"RESERVATION_DURATION_MIN"`
	SlotGranularityMin     int `mapstructure:"SLOT_GRANULARITY_MIN"`
	BookingLockWaitMs      int `mapstructure:"BOOKING_LOCK_WAIT_MS"`
	ReminderLeadMin        int `mapstructure:"REMINDER_LEAD_MIN"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("SEED_SAMPLE_DATA", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("CATALOG_CACHE_TTL_SEC", 60)
	viper.SetDefault("RESERVATION_DURATION_MIN", 90)
	viper.SetDefault("SLOT_GRANULARITY_MIN", 30)
	viper.SetDefault("BOOKING_LOCK_WAIT_MS", 2000)
	viper.SetDefault("REMINDER_LEAD_MIN", 120)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
