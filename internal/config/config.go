package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Redis    Redis
	Postgres Postgres
	Store    Store
	Scraper  Scraper
	LLM      LLM
	Bot      Bot
	Payments Payments
	Analyzer Analyzer
	Worker   Worker
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"flipscan"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type HTTP struct {
	ListenAddress        string `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	LogFieldMaxLen       int    `env:"HTTP_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
