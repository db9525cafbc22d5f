package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for gramscout.
type Config struct {
	Browser    BrowserConfig    `mapstructure:"browser"    yaml:"browser"`
	Session    SessionConfig    `mapstructure:"session"    yaml:"session"`
	Search     SearchConfig     `mapstructure:"search"     yaml:"search"`
	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier"`
	Server     ServerConfig     `mapstructure:"server"     yaml:"server"`
	Storage    StorageConfig    `mapstructure:"storage"    yaml:"storage"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// BrowserConfig controls the Chromium instance.
type BrowserConfig struct {
	Headless    bool   `mapstructure:"headless"      yaml:"headless"`
	WindowSize  string `mapstructure:"window_size"   yaml:"window_size"`
	UserAgent   string `mapstructure:"user_agent"    yaml:"user_agent"`
	ProxyURL    string `mapstructure:"proxy_url"     yaml:"proxy_url"`
	UserDataDir string `mapstructure:"user_data_dir" yaml:"user_data_dir"`
}

// SessionConfig controls login and session lifecycle timing.
type SessionConfig struct {
	BaseURL          string        `mapstructure:"base_url"           yaml:"base_url"`
	PageLoadTimeout  time.Duration `mapstructure:"page_load_timeout"  yaml:"page_load_timeout"`
	LoginWaitTimeout time.Duration `mapstructure:"login_wait_timeout" yaml:"login_wait_timeout"`
	PostLoginWait    time.Duration `mapstructure:"post_login_wait"    yaml:"post_login_wait"`
	PopupWait        time.Duration `mapstructure:"popup_wait"         yaml:"popup_wait"`
}

// SearchConfig controls the discovery pipeline.
type SearchConfig struct {
	ResultCap         int           `mapstructure:"result_cap"          yaml:"result_cap"`
	MaxScrollAttempts int           `mapstructure:"max_scroll_attempts" yaml:"max_scroll_attempts"`
	MinFollowers      int           `mapstructure:"min_followers"       yaml:"min_followers"`
	PostLinkWait      time.Duration `mapstructure:"post_link_wait"      yaml:"post_link_wait"`
	SettleDelay       time.Duration `mapstructure:"settle_delay"        yaml:"settle_delay"`
	VisitDelayMin     time.Duration `mapstructure:"visit_delay_min"     yaml:"visit_delay_min"`
	VisitDelayMax     time.Duration `mapstructure:"visit_delay_max"     yaml:"visit_delay_max"`
}

// ClassifierConfig controls the business/non-business heuristics.
type ClassifierConfig struct {
	MinBioLength int      `mapstructure:"min_bio_length" yaml:"min_bio_length"`
	Keywords     []string `mapstructure:"keywords"       yaml:"keywords"`
}

// ServerConfig controls the HTTP API surface.
type ServerConfig struct {
	Port       int           `mapstructure:"port"        yaml:"port"`
	RateLimit  int           `mapstructure:"rate_limit"  yaml:"rate_limit"`
	RateWindow time.Duration `mapstructure:"rate_window" yaml:"rate_window"`
}

// StorageConfig controls result/history persistence.
type StorageConfig struct {
	Type          string `mapstructure:"type"           yaml:"type"`
	DataDir       string `mapstructure:"data_dir"       yaml:"data_dir"`
	MongoURI      string `mapstructure:"mongo_uri"      yaml:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database" yaml:"mongo_database"`
	HistoryCap    int    `mapstructure:"history_cap"    yaml:"history_cap"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:   true,
			WindowSize: "1920,1080",
			UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Session: SessionConfig{
			BaseURL:          "https://www.instagram.com",
			PageLoadTimeout:  30 * time.Second,
			LoginWaitTimeout: 100 * time.Second,
			PostLoginWait:    12 * time.Second,
			PopupWait:        5 * time.Second,
		},
		Search: SearchConfig{
			ResultCap:         50,
			MaxScrollAttempts: 2,
			MinFollowers:      100,
			PostLinkWait:      45 * time.Second,
			SettleDelay:       3 * time.Second,
			VisitDelayMin:     1 * time.Second,
			VisitDelayMax:     3 * time.Second,
		},
		Classifier: ClassifierConfig{
			MinBioLength: 30,
			Keywords: []string{
				"cafe", "restoran", "restaurant", "otel", "hotel",
				"mağaza", "store", "shop", "şirket", "firma", "butik",
				"salon", "stüdyo", "studio", "eğitim", "servis", "service",
				"hizmet", "mutfak", "pizza", "döner", "berber", "barber",
				"kuaför", "bar", "pub",
			},
		},
		Server: ServerConfig{
			Port:       3000,
			RateLimit:  25,
			RateWindow: time.Hour,
		},
		Storage: StorageConfig{
			Type:       "file",
			DataDir:    "./data",
			HistoryCap: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
