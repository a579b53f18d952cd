package engine

import (
	"os"
	"strconv"
	"time"

	"github.com/Zanice/2D-Game-Framework/internal/domain"
)

// Значения по умолчанию
const (
	DefaultTickRate  = 50 * time.Millisecond
	DefaultPort      = 8080
	DefaultReplayDir = "replays"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят генерация карты, боты и RNG симуляции.
	Seed int64
	// TickRate - период тика в реальном времени (0 - без пауз, как можно быстрее)
	TickRate time.Duration
	// Ticks - сколько тиков прогнать (0 - бесконечно)
	Ticks uint64
	// ReplayDir - каталог записей ("" - не записывать)
	ReplayDir string
	// HistoryDB - путь к SQLite с историей прогонов ("" - не вести)
	HistoryDB string
	// Port - порт HTTP-сервера
	Port int
	// RedisAddr - адрес redis для карт из redis
	RedisAddr string
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:      time.Now().UnixNano(),
		TickRate:  DefaultTickRate,
		ReplayDir: DefaultReplayDir,
		Port:      DefaultPort,
	}
}

// FromEnv применяет переопределения из окружения:
// GRIDSIM_SEED, GRIDSIM_TICK_RATE, GRIDSIM_PORT, REDIS_ADDR
func (c Config) FromEnv() (Config, error) {
	if v := os.Getenv("GRIDSIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, domain.Configf("GRIDSIM_SEED: %v", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("GRIDSIM_TICK_RATE"); v != "" {
		rate, err := time.ParseDuration(v)
		if err != nil {
			return c, domain.Configf("GRIDSIM_TICK_RATE: %v", err)
		}
		c.TickRate = rate
	}
	if v := os.Getenv("GRIDSIM_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return c, domain.Configf("GRIDSIM_PORT: %v", err)
		}
		c.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	return c, c.Validate()
}

// Validate проверяет значения конфига
func (c Config) Validate() error {
	if c.TickRate < 0 {
		return domain.Configf("tick rate must not be negative, got %s", c.TickRate)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return domain.Configf("port %d out of range", c.Port)
	}
	return nil
}
