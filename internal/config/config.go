package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port            int
	LogLevel        string
	LogFormat       string
	OTELEndpoint    string
	OTELServiceName string

	StorageBackend    string
	DataDir           string
	StoragePassphrase string
	RedisAddr         string

	MaxPrincipal         float64
	MaxContribution      float64
	MaxMonths            int
	MaxYears             int
	MaxRate              float64
	MaxFDRate            float64
	MaxFDMonths          int
	MaxTransactionAmount float64
	MaxBalanceCap        float64
}

// Хранилища данных
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

var defaults = map[string]interface{}{
	"PORT":                   8000,
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "json",
	"OTEL_ENDPOINT":          "",
	"OTEL_SERVICE_NAME":      "finance-calculator",
	"STORAGE_BACKEND":        StorageFile,
	"DATA_DIR":               "data",
	"STORAGE_PASSPHRASE":     "",
	"REDIS_ADDR":             "localhost:6379",
	"MAX_PRINCIPAL":          1e8,
	"MAX_CONTRIBUTION":       1e6,
	"MAX_MONTHS":             480,
	"MAX_YEARS":              50,
	"MAX_RATE":               50.0,
	"MAX_FD_RATE":            20.0,
	"MAX_FD_MONTHS":          120,
	"MAX_TRANSACTION_AMOUNT": 1e7,
	"MAX_BALANCE_CAP":        1e12,
}

// LoadConfig загружает конфигурацию из .env, переменных окружения и
// необязательного файла CONFIG_FILE
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:                 v.GetInt("PORT"),
		LogLevel:             strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:            strings.ToLower(v.GetString("LOG_FORMAT")),
		OTELEndpoint:         v.GetString("OTEL_ENDPOINT"),
		OTELServiceName:      v.GetString("OTEL_SERVICE_NAME"),
		StorageBackend:       strings.ToLower(v.GetString("STORAGE_BACKEND")),
		DataDir:              v.GetString("DATA_DIR"),
		StoragePassphrase:    v.GetString("STORAGE_PASSPHRASE"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		MaxPrincipal:         v.GetFloat64("MAX_PRINCIPAL"),
		MaxContribution:      v.GetFloat64("MAX_CONTRIBUTION"),
		MaxMonths:            v.GetInt("MAX_MONTHS"),
		MaxYears:             v.GetInt("MAX_YEARS"),
		MaxRate:              v.GetFloat64("MAX_RATE"),
		MaxFDRate:            v.GetFloat64("MAX_FD_RATE"),
		MaxFDMonths:          v.GetInt("MAX_FD_MONTHS"),
		MaxTransactionAmount: v.GetFloat64("MAX_TRANSACTION_AMOUNT"),
		MaxBalanceCap:        v.GetFloat64("MAX_BALANCE_CAP"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageFile, StorageRedis:
	default:
		return fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Addr возвращает адрес для HTTP сервера
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// BalanceCap возвращает максимальный баланс для защиты от переполнения
func (c *Config) BalanceCap() float64 {
	return c.MaxBalanceCap
}
