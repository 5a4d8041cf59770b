package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Mongo struct {
	URI        string        `yaml:"MONGO_URI" env:"MONGO_URI" env-required:"true"`
	Database   string        `yaml:"MONGO_DATABASE" env:"MONGO_DATABASE" env-default:"inventory"`
	Collection string        `yaml:"MONGO_COLLECTION" env:"MONGO_COLLECTION" env-default:"products"`
	Timeout    time.Duration `yaml:"MONGO_TIMEOUT" env:"MONGO_TIMEOUT" env-default:"10s"`
}

type CacheConfig struct {
	Addr       string        `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password   string        `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
	DefaultTTL time.Duration `yaml:"REDIS_DEFAULT_TTL" env:"REDIS_DEFAULT_TTL" env-default:"5m"`
}

func (c *CacheConfig) GetDSN() string {
	if c.Password != "" {
		return fmt.Sprintf("redis://:%s@%s/%d", c.Password, c.Addr, c.DB)
	}

	return fmt.Sprintf("redis://%s/%d", c.Addr, c.DB)
}

type ImportConfig struct {
	MaxUploadBytes int64 `yaml:"MAX_UPLOAD_BYTES" env:"MAX_UPLOAD_BYTES" env-default:"33554432"`
}

type Telemetry struct {
	Endpoint string `yaml:"OTEL_ENDPOINT" env:"OTEL_ENDPOINT" env-default:""`
}

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer `yaml:"http_server"`
	Mongo      Mongo        `yaml:"mongo"`
	Cache      CacheConfig  `yaml:"cache"`
	Import     ImportConfig `yaml:"import"`
	Telemetry  Telemetry    `yaml:"telemetry"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "config/local.yaml"
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}
