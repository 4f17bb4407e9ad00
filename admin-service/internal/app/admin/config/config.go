package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config содержит все настройки Admin Service
// HTTP сервер, backend REST API, Redis (кеш справочников), Kafka (аудит) и экраны
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Views    ViewsConfig
	LogLevel string
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host           string   // Адрес хоста (по умолчанию 0.0.0.0)
	Port           string   // Порт сервера (по умолчанию 8085)
	AllowedOrigins []string // Origins админки для CORS
}

// UpstreamConfig - backend REST API, с которым работает админка
type UpstreamConfig struct {
	BaseURL       string        // {base} для всех коллекций (/categories, /neworders, ...)
	Timeout       time.Duration // Клиентский таймаут, истечение = ошибка загрузки
	TokenSecret   string        // Секрет для сервисного JWT (пусто = без Authorization)
	TokenTTL      time.Duration // Время жизни сервисного JWT
	BreakerName   string        // Имя circuit breaker в метриках
	BreakerWindow time.Duration // Окно подсчета ошибок в закрытом состоянии
	BreakerCool   time.Duration // Сколько breaker остается открытым
}

// RedisConfig - кеш справочников для выпадающих списков форм
type RedisConfig struct {
	Host     string        // Хост Redis (пусто = кеш выключен)
	Port     string        // Порт Redis
	Password string        // Пароль Redis (опционально)
	DB       int           // Номер БД Redis (0-15)
	TTL      time.Duration // TTL справочников
}

// KafkaConfig - топик аудита изменений записей
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (пусто = аудит выключен)
	Topic   string   // Топик для RECORD_CREATED, RECORD_UPDATED, RECORD_DELETED
}

// ViewsConfig - жизненный цикл смонтированных экранов
type ViewsConfig struct {
	IdleTTL       time.Duration // Экран без обращений дольше TTL размонтируется
	SweepSchedule string        // Cron расписание очистки
	InboxSize     int           // Сколько toast-уведомлений хранить на экран
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	timeout, err := getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getEnvDuration("UPSTREAM_TOKEN_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvDuration("REDIS_OPTIONS_TTL", time.Minute)
	if err != nil {
		return nil, err
	}
	idleTTL, err := getEnvDuration("VIEW_IDLE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8085"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Upstream: UpstreamConfig{
			BaseURL:       strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "http://localhost:5000"), "/"),
			Timeout:       timeout,
			TokenSecret:   getEnv("UPSTREAM_TOKEN_SECRET", ""),
			TokenTTL:      tokenTTL,
			BreakerName:   getEnv("UPSTREAM_BREAKER_NAME", "upstream-api"),
			BreakerWindow: 60 * time.Second,
			BreakerCool:   30 * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      cacheTTL,
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "admin_events"),
		},
		Views: ViewsConfig{
			IdleTTL:       idleTTL,
			SweepSchedule: getEnv("VIEW_SWEEP_SCHEDULE", "@every 1m"),
			InboxSize:     getEnvInt("VIEW_INBOX_SIZE", 20),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Views.InboxSize <= 0 {
		return nil, fmt.Errorf("invalid VIEW_INBOX_SIZE value: %d", cfg.Views.InboxSize)
	}

	return cfg, nil
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Enabled - кеш включается только если задан REDIS_HOST
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Enabled - аудит включается только если заданы брокеры
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает значение переменной окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration понимает формат time.ParseDuration ("15s", "30m")
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s value: must be positive", key)
	}
	return d, nil
}

// getEnvList - список через запятую ("kafka1:9092,kafka2:9092")
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
