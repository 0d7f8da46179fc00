package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir   string `yaml:"data_dir"`
		MasterCSV string `yaml:"master_csv"`
		DeltaCSV  string `yaml:"delta_csv"`
		CacheDB   string `yaml:"cache_db"`
	} `yaml:"app"`

	Search struct {
		DefaultQuery string `yaml:"default_query"`
		MaxResults   int    `yaml:"max_results"`
	} `yaml:"search"`

	Pacing struct {
		// Seconds between consecutive page fetches and milliseconds between
		// consecutive enrichment/Ashby API calls.
		FetchSeconds int `yaml:"fetch_seconds"`
		APIMillis    int `yaml:"api_millis"`
	} `yaml:"pacing"`

	Ashby struct {
		// Board slugs probed directly via the public GraphQL endpoint;
		// Ashby boards are nearly invisible to search engines.
		Companies []string `yaml:"companies"`
	} `yaml:"ashby"`

	Notify struct {
		WebhookURL string `yaml:"webhook_url"`

		Telegram struct {
			Enabled bool   `yaml:"enabled"`
			Token   string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
			ChatID  int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
		} `yaml:"telegram"`
	} `yaml:"notify"`
}

func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	// Env overrides for secrets that shouldn't live in the YAML file.
	if v := os.Getenv("JOBSCRAPER_WEBHOOK_URL"); v != "" {
		cfg.Notify.WebhookURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Notify.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Notify.Telegram.ChatID = id
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.DataDir == "" {
		c.App.DataDir = "."
	}
	if c.App.MasterCSV == "" {
		c.App.MasterCSV = "master_jobs.csv"
	}
	if c.App.DeltaCSV == "" {
		c.App.DeltaCSV = "delta_jobs.csv"
	}
	if c.App.CacheDB == "" {
		c.App.CacheDB = "enrich_cache.db"
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 20
	}
	if c.Search.DefaultQuery == "" {
		c.Search.DefaultQuery = `("AI engineer" OR "Gen AI engineer" OR "AI/ML engineer")`
	}
	if c.Pacing.FetchSeconds <= 0 {
		c.Pacing.FetchSeconds = 1
	}
	if c.Pacing.APIMillis <= 0 {
		c.Pacing.APIMillis = 500
	}
}
