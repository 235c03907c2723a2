package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию для RPG Server
type Config struct {
	// Настройки сервера
	Port     string `envconfig:"RPG_SERVER_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Настройки PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Секретное поле БЕЗ envconfig тега
	DBPassword string

	// Настройки Redis (PVP вызовы и кулдауны команд)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	// Настройки RabbitMQ
	RabbitMQURL        string `envconfig:"RABBITMQ_URL" required:"true"`
	EventsExchangeName string `envconfig:"EVENTS_EXCHANGE_NAME" default:"rpg_events"`

	// Настройки генерации нарратива
	NarrativeBaseURL string        `envconfig:"NARRATIVE_BASE_URL" default:""`
	NarrativeModel   string        `envconfig:"NARRATIVE_MODEL" default:"gpt-4o-mini"`
	NarrativeTimeout time.Duration `envconfig:"NARRATIVE_TIMEOUT" default:"6s"`
	// Секретное поле БЕЗ envconfig тега
	NarrativeAPIKey string

	// Игровые тайминги
	HuntCooldown           time.Duration `envconfig:"HUNT_COOLDOWN" default:"15m"`
	ExploreCooldown        time.Duration `envconfig:"EXPLORE_COOLDOWN" default:"30m"`
	PvpChallengeTTL        time.Duration `envconfig:"PVP_CHALLENGE_TTL" default:"2m"`
	WorldBossSpawnInterval time.Duration `envconfig:"WORLD_BOSS_SPAWN_INTERVAL" default:"6h"`

	// Настройки JWT (проверка токена игрока в middleware)
	// Секретное поле БЕЗ envconfig тега
	JWTSecret string
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения и секретов
func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации rpg-server: %w", err)
	}

	var loadErr error
	cfg.DBPassword, loadErr = readSecret("db_password")
	if loadErr != nil {
		return nil, loadErr
	}

	cfg.JWTSecret, loadErr = readSecret("jwt_secret")
	if loadErr != nil {
		return nil, loadErr
	}

	// Ключ нарратива необязателен: без него используются заготовленные фразы
	cfg.NarrativeAPIKey, _ = readSecret("narrative_api_key")

	log.Printf("Конфигурация RPG Server загружена:")
	log.Printf("  Port: %s", cfg.Port)
	log.Printf("  LogLevel: %s", cfg.LogLevel)
	log.Printf("  DB DSN: postgres://%s:***@%s:%s/%s?sslmode=%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	log.Printf("  DB Max Conns: %d", cfg.DBMaxConns)
	log.Printf("  Redis Addr: %s", cfg.RedisAddr)
	log.Printf("  RabbitMQ URL: %s", cfg.RabbitMQURL)
	log.Printf("  Events Exchange: %s", cfg.EventsExchangeName)
	log.Printf("  Hunt Cooldown: %v", cfg.HuntCooldown)
	log.Printf("  Explore Cooldown: %v", cfg.ExploreCooldown)
	log.Printf("  PVP Challenge TTL: %v", cfg.PvpChallengeTTL)
	log.Printf("  World Boss Spawn Interval: %v", cfg.WorldBossSpawnInterval)
	log.Println("  JWT Secret: [ЗАГРУЖЕН]")

	return &cfg, nil
}
