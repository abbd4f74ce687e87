package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	// DatasetPath points at the export dataset: a .csv file, or a
	// SQLite file prepared with datasetctl.
	DatasetPath string     `env:"DATASET_PATH" envDefault:"data/exports.csv"`
	SPADir      string     `env:"SPA_DIR" envDefault:"public"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
