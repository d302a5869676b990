package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Booking  BookingConfig
	Worker   WorkerConfig
	Mailer   MailerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	TrainListTTL time.Duration
	SessionTTL   time.Duration
}

type LogConfig struct {
	Level string
}

type BookingConfig struct {
	// PNRMaxAttempts - сколько раз пытаемся сгенерировать уникальный PNR
	PNRMaxAttempts int
}

type WorkerConfig struct {
	ConsumerGroup string
	MaxRetries    int
}

type MailerConfig struct {
	BaseURL        string
	APIKey         string
	FromAddress    string
	RequestTimeout int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TrainListTTL: time.Duration(viper.GetInt("TRAIN_LIST_CACHE_TTL")) * time.Second,
			SessionTTL:   time.Duration(viper.GetInt("SESSION_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Booking: BookingConfig{
			PNRMaxAttempts: viper.GetInt("BOOKING_PNR_MAX_ATTEMPTS"),
		},
		Worker: WorkerConfig{
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Mailer: MailerConfig{
			BaseURL:        viper.GetString("MAILER_BASE_URL"),
			APIKey:         viper.GetString("MAILER_API_KEY"),
			FromAddress:    viper.GetString("MAILER_FROM_ADDRESS"),
			RequestTimeout: viper.GetInt("MAILER_REQUEST_TIMEOUT"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.TrainListTTL == 0 {
		cfg.Cache.TrainListTTL = 60 * time.Second
	}
	if cfg.Cache.SessionTTL == 0 {
		cfg.Cache.SessionTTL = 24 * time.Hour
	}
	if cfg.Booking.PNRMaxAttempts == 0 {
		cfg.Booking.PNRMaxAttempts = 5
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "booking-notification-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Mailer.RequestTimeout == 0 {
		cfg.Mailer.RequestTimeout = 10
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
