package config

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type APIConfig struct {
	BaseURL string        `yaml:"API_BASE_URL" env:"API_BASE_URL" env-default:"http://127.0.0.1:8000/api"`
	Timeout time.Duration `yaml:"API_TIMEOUT" env:"API_TIMEOUT" env-default:"30s"`
}

type RedisConnect struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:""`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type StoreConfig struct {
	NotificationTTL time.Duration `yaml:"NOTIFICATION_TTL" env:"NOTIFICATION_TTL" env-default:"3s"`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"local"`
	StateDir     string       `yaml:"state_dir" env:"STATE_DIR" env-default:".storefront"`
	MetricsAddr  string       `yaml:"metrics_addr" env:"METRICS_ADDR" env-default:""`
	API          APIConfig    `yaml:"api"`
	RedisConnect RedisConnect `yaml:"redis"`
	Store        StoreConfig  `yaml:"store"`
}

// RedisEnabled reports whether client state should live in redis
// instead of the local state directory.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.RedisConnect.Addr) != ""
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

	}

	var cfg Config

	if configPath == "" {
		// No config file: environment only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {

		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}
