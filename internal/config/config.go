package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
	SaveSlot string  `yaml:"save-slot" env:"SAVE_SLOT" env-default:"savegame"`
	History  string  `yaml:"history-file" env:"HISTORY_FILE" env-default:"/tmp/boardgames.history"`
	Numeric  Numeric `yaml:"numeric"`
	AI       AI      `yaml:"ai"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"boardgames.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Numeric struct {
	Size int `yaml:"size" env:"NUMERIC_SIZE" env-default:"3"`
}

type AI struct {
	MaxDepth int `yaml:"max-depth" env:"AI_MAX_DEPTH" env-default:"4"`
	Width    int `yaml:"width" env:"AI_WIDTH" env-default:"8"`
	Radius   int `yaml:"radius" env:"AI_RADIUS" env-default:"2"`
}

var ErrUnknownDriver = errors.New("unknown storage driver")

// MustLoad - load all configurations in config.yml file. Without the file only
// the environment and defaults are used.
func MustLoad(path string) *Config {
	config := &Config{}

	err := cleanenv.ReadConfig(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err = config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	if that.Storage.Driver != DriverSQLite && that.Storage.Driver != DriverRedis {
		return fmt.Errorf("%w: %q", ErrUnknownDriver, that.Storage.Driver)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
