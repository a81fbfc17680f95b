package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis  `yaml:"redis" env-prefix:"REDIS_"`
	Game       Game   `yaml:"game" env-prefix:"GAME_"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"PORT" env-default:"6379"`
	CodeTTL time.Duration `yaml:"code-ttl" env:"CODE_TTL" env-default:"24h"`
}

type Game struct {
	DefaultBoardSize int `yaml:"default-board-size" env:"DEFAULT_BOARD_SIZE" env-default:"10"`
	MaxBoardSize     int `yaml:"max-board-size" env:"MAX_BOARD_SIZE" env-default:"50"`
	CodeLength       int `yaml:"code-length" env:"CODE_LENGTH" env-default:"6"`
	CodeAttempts     int `yaml:"code-attempts" env:"CODE_ATTEMPTS" env-default:"10"`
}

// MustLoad - load all configurations in config.yml file, environment variables override it.
// Without the file only the environment and defaults are used.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
