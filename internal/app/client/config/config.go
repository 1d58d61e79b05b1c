package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"smartmoney/internal/config"
)

const (
	defaultLogLevel       = "warn"
	defaultConfigDir      = ".smartmoney"
	defaultMigrationsPath = "migrations/postgres"
)

type Config struct {
	Env            string `mapstructure:"app_env"`
	LogLevel       string `mapstructure:"log_level"`
	ConfigDir      string `mapstructure:"config_dir"`
	DataDir        string `mapstructure:"data_dir"`
	DatabaseURI    string `mapstructure:"database_uri"`
	MigrationsPath string `mapstructure:"migrations_path"`
	UsersPath      string
	StatePath      string
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	cfg, err := Load(viper.New(), ".env", "../.env")
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает конфигурацию и создает каталоги конфигурации и данных.
func Load(v *viper.Viper, envFiles ...string) (*Config, error) {
	if _, err := config.LoadEnvFile(envFiles...); err != nil {
		fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
	}

	v.AutomaticEnv()

	// Устанавливаем значения по умолчанию
	v.SetDefault("APP_ENV", config.EnvLocal)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	dataDir := v.GetString("DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	cfg := &Config{
		Env:            v.GetString("APP_ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		DataDir:        dataDir,
		DatabaseURI:    v.GetString("DATABASE_URI"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		UsersPath:      filepath.Join(configDir, "users.json"),
		StatePath:      filepath.Join(configDir, "state.json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Создаем директории если их нет
	for _, dir := range []string{cfg.ConfigDir, cfg.DataDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !config.ValidEnv(c.Env) {
		return fmt.Errorf("неизвестное окружение APP_ENV=%q", c.Env)
	}
	if c.ConfigDir == "" {
		return fmt.Errorf("config_dir не может быть пустым")
	}
	return nil
}

// RemoteEnabled проверяет, задана ли серверная копия данных.
func (c *Config) RemoteEnabled() bool {
	return c.DatabaseURI != ""
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == config.EnvLocal
}
