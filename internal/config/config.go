// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// DefaultRoles is the fixed set of search keywords a run covers.
var DefaultRoles = []string{
	"Data Analyst",
	"Data Scientist",
	"Software Developer",
	"Machine Learning Engineer",
	"AI Engineer",
	"Business Analyst",
	"NLP Researcher",
	"Cloud Computing",
	"QA Testing",
}

type Config struct {
	//Roles is not read from YAML: the role list lives in code
	Roles []string `yaml:"-"`

	//Crawl
	BaseURL      string        `yaml:"base_url"`
	MaxPages     int           `yaml:"max_pages"`
	PageSize     int           `yaml:"page_size"`
	PageDelay    time.Duration `yaml:"page_delay"`
	ListingDelay time.Duration `yaml:"listing_delay"`
	SettleDelay  time.Duration `yaml:"settle_delay"`
	SkipSeen     bool          `yaml:"skip_seen"`

	//Browser
	Headed            bool          `yaml:"headed"`
	Humanize          bool          `yaml:"humanize"`
	DebugScreenshots  bool          `yaml:"debug_screenshots"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	WaitTimeout       time.Duration `yaml:"wait_timeout"`

	//Storage
	DatabasePath string `yaml:"database_path"`
	DatabaseURL  string `yaml:"database_url" env:"DATABASE_URL"`

	//Paths
	CookiesPath string `yaml:"cookies_path"`
	CachePath   string `yaml:"cache_path"`
	ExportDir   string `yaml:"export_dir"`

	//Scheduling and serving
	Schedule string `yaml:"schedule"`
	Port     string `yaml:"port" env:"PORT"`

	//Notifications (optional)
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

// Load reads .env, then the YAML file at $CONFIG_PATH (or configs/config.yaml),
// then applies env overrides and defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return LoadFile(path)
}

// LoadFile is Load without the .env step. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		log.Printf("⚠️ Could not read %s, using defaults", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Headed = !headless
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.Roles = append([]string(nil), DefaultRoles...)

	if c.BaseURL == "" {
		c.BaseURL = "https://www.naukri.com"
	}
	if c.MaxPages == 0 {
		c.MaxPages = 5
	}
	if c.PageSize == 0 {
		c.PageSize = 20
	}
	if c.PageDelay == 0 {
		c.PageDelay = 2 * time.Second
	}
	if c.ListingDelay == 0 {
		c.ListingDelay = 2 * time.Second
	}
	if c.NavigationTimeout == 0 {
		c.NavigationTimeout = 30 * time.Second
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = 15 * time.Second
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "jobs.db"
	}
	if c.CookiesPath == "" {
		c.CookiesPath = ".cookies"
	}
	if c.CachePath == "" {
		c.CachePath = ".cache"
	}
	if c.ExportDir == "" {
		c.ExportDir = "exports"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
}

// Validate rejects settings the crawler cannot run with.
func (c *Config) Validate() error {
	if c.MaxPages < 1 {
		return fmt.Errorf("max_pages must be at least 1, got %d", c.MaxPages)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.PageDelay < 0 || c.ListingDelay < 0 || c.SettleDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

// TelegramEnabled reports whether run summaries should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
