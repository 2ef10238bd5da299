package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"data_source"`
	PairsFile string `yaml:"pairs_file"`
	Polling   struct {
		PairPause  string `yaml:"pair_pause"`
		CyclePause string `yaml:"cycle_pause"`
	} `yaml:"polling"`
	Digest struct {
		Cron string `yaml:"cron"`
	} `yaml:"digest"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`

	timeout    time.Duration
	pairPause  time.Duration
	cyclePause time.Duration
	digest     cron.Schedule
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	for _, name := range []string{"BOT_TOKEN", "TELEGRAM_BOT_TOKEN"} {
		if v := os.Getenv(name); v != "" {
			cfg.Telegram.BotToken = v
		}
	}
	for _, name := range []string{"CHAT_ID", "TELEGRAM_CHAT_ID"} {
		if v := os.Getenv(name); v != "" {
			cfg.Telegram.ChatID = v
		}
	}
	if v := os.Getenv("GECKO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("PAIRS_FILE"); v != "" {
		cfg.PairsFile = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		cfg.Digest.Cron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://api.geckoterminal.com"
	}
	if cfg.DataSource.Timeout == "" {
		cfg.DataSource.Timeout = "30s"
	}
	if cfg.PairsFile == "" {
		cfg.PairsFile = "pairs.txt"
	}
	if cfg.Polling.PairPause == "" {
		cfg.Polling.PairPause = "1s"
	}
	if cfg.Polling.CyclePause == "" {
		cfg.Polling.CyclePause = "60s"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Encoding == "" {
		cfg.Log.Encoding = "console"
	}

	if err := cfg.parse(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parse() error {
	var err error
	if c.timeout, err = str2duration.ParseDuration(c.DataSource.Timeout); err != nil {
		return fmt.Errorf("data_source.timeout: %w", err)
	}
	if c.pairPause, err = str2duration.ParseDuration(c.Polling.PairPause); err != nil {
		return fmt.Errorf("polling.pair_pause: %w", err)
	}
	if c.cyclePause, err = str2duration.ParseDuration(c.Polling.CyclePause); err != nil {
		return fmt.Errorf("polling.cycle_pause: %w", err)
	}
	if c.Digest.Cron != "" {
		if c.digest, err = cron.ParseStandard(c.Digest.Cron); err != nil {
			return fmt.Errorf("digest.cron: %w", err)
		}
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.timeout <= 0 {
		return fmt.Errorf("data_source.timeout must be positive")
	}
	if c.pairPause < 0 {
		return fmt.Errorf("polling.pair_pause must not be negative")
	}
	if c.cyclePause < 0 {
		return fmt.Errorf("polling.cycle_pause must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether alerts are delivered to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func (c *Config) Timeout() time.Duration    { return c.timeout }
func (c *Config) PairPause() time.Duration  { return c.pairPause }
func (c *Config) CyclePause() time.Duration { return c.cyclePause }

// DigestSchedule returns the digest schedule, or nil when disabled.
func (c *Config) DigestSchedule() cron.Schedule { return c.digest }
