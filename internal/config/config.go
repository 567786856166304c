// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	AMQPConnectionString    string `yaml:"amqp_connection_string" env:"AMQP_CONNECTION_STRING"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Gateway                 `yaml:"gateway"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном.
//
// Секретный ключ обязан быть не короче 256 бит, сроки жизни по умолчанию:
// access токен — 24 часа, refresh токен — 7 дней.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
	RefreshTTL   time.Duration `yaml:"refresh_ttl" env-default:"168h"`
	Header       string        `yaml:"header" env-default:"Authorization"`
	BearerPrefix string        `yaml:"bearer_prefix" env-default:"Bearer "`
}

// Route описывает правило маршрутизации шлюза: префикс пути и адрес
// нижестоящего сервиса.
type Route struct {
	Prefix string `yaml:"prefix"`
	Target string `yaml:"target"`
}

// Gateway структура для настройки шлюза: таблица маршрутов и список
// публичных путей, не требующих аутентификации.
type Gateway struct {
	Routes      []Route  `yaml:"routes"`
	PublicPaths []string `yaml:"public_paths"`
}

// DefaultPublicPaths пути, открытые без аутентификации, когда список
// в конфиге пуст. /metrics открыт для скрейпера Prometheus, у которого
// нет токена.
var DefaultPublicPaths = []string{
	"/auth/login",
	"/auth/register",
	"/health",
	"/metrics",
	"/swagger-ui",
	"/v3/api-docs",
	"/doc.html",
	"/docs",
}

// MustLoad функция для загрузки конфига, путь берется из переменной
// окружения CONFIG_PATH. Останавливает процесс при любой ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if len(cfg.Gateway.PublicPaths) == 0 {
		cfg.Gateway.PublicPaths = DefaultPublicPaths
	}
	return &cfg
}
