// Package config loads the service configuration from a YAML file with
// environment overrides.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"TYWZOJ_ENV" env-default:"production"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host         string   `yaml:"host" env:"TYWZOJ_HOST" env-default:"0.0.0.0"`
	Port         int      `yaml:"port" env:"TYWZOJ_PORT" env-default:"7001"`
	CrossOrigins []string `yaml:"cross_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"127.0.0.1"`
	Port     int    `yaml:"port" env-default:"3306"`
	Username string `yaml:"username" env:"TYWZOJ_DB_USERNAME"`
	Password string `yaml:"password" env:"TYWZOJ_DB_PASSWORD"`
	Database string `yaml:"database" env-default:"tywzoj"`
}

// DSN renders the MySQL connection string for gorm.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database,
	)
}

type RedisConfig struct {
	Address  string `yaml:"address" env:"TYWZOJ_REDIS_ADDRESS" env-default:"127.0.0.1:6379"`
	Password string `yaml:"password" env:"TYWZOJ_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

type SecurityConfig struct {
	// SessionSecret signs session keys. Rotating it invalidates every
	// outstanding token at once.
	SessionSecret string `yaml:"session_secret" env:"TYWZOJ_SESSION_SECRET" env-required:"true"`
}

type LogConfig struct {
	Enable     bool   `yaml:"enable"`
	Path       string `yaml:"path" env-default:"log/tywzoj.log"`
	MaxSize    int    `yaml:"max_size" env-default:"50"`
	MaxBackups int    `yaml:"max_backups" env-default:"10"`
	MaxAge     int    `yaml:"max_age" env-default:"28"`
	Compress   bool   `yaml:"compress"`
}

// MustLoad reads the config file named by -config or CONFIG_PATH and panics
// on any failure; the process cannot do anything useful without it.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath fetches the config path from the command line flag or the
// environment. Priority: flag > env.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
