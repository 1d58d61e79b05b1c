package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"smartmoney/internal/config"
)

const (
	defaultRunAddress      = "localhost:8080"
	defaultDataDir         = "data"
	defaultMigrationsPath  = "migrations/postgres"
	defaultShutdownTimeout = 10
)

type Config struct {
	Env    string
	DB     db
	Server server
	Logger logger
}

type db struct {
	DataDir     string `env:"DATA_DIR"`
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT_SECONDS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

// MustLoad читает конфигурацию сервера из окружения и .env; при ошибке завершает процесс.
func MustLoad() *Config {
	cfg, err := Load(viper.New(), ".env", "../../.env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Load читает конфигурацию через переданный экземпляр viper.
func Load(v *viper.Viper, envFiles ...string) (*Config, error) {
	if path, err := config.LoadEnvFile(envFiles...); err != nil {
		return nil, err
	} else if path == "" {
		log.Println("No .env file found, relying on environment variables")
	}

	v.AutomaticEnv()
	v.SetDefault("app_env", config.EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("migrations_path", defaultMigrationsPath)
	v.SetDefault("shutdown_timeout_seconds", defaultShutdownTimeout)

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: db{
			DataDir:     v.GetString("data_dir"),
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: time.Duration(v.GetInt("shutdown_timeout_seconds")) * time.Second,
		},
		Logger: logger{LogLevel: v.GetString("log_level")},
	}

	if !config.ValidEnv(cfg.Env) {
		return nil, fmt.Errorf("unknown APP_ENV %q", cfg.Env)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}
	return cfg, nil
}

// RemoteEnabled сообщает, настроена ли серверная копия данных.
func (c *Config) RemoteEnabled() bool {
	return c.DB.DatabaseURI != ""
}
