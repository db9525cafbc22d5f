package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// Priority (highest to lowest): env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Set defaults from struct
	setDefaults(v, cfg)

	// Environment variable support
	v.SetEnvPrefix("GRAMSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Search default locations
		v.SetConfigName("gramscout")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".gramscout"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.window_size", cfg.Browser.WindowSize)
	v.SetDefault("browser.user_agent", cfg.Browser.UserAgent)
	v.SetDefault("browser.proxy_url", cfg.Browser.ProxyURL)
	v.SetDefault("browser.user_data_dir", cfg.Browser.UserDataDir)

	v.SetDefault("session.base_url", cfg.Session.BaseURL)
	v.SetDefault("session.page_load_timeout", cfg.Session.PageLoadTimeout)
	v.SetDefault("session.login_wait_timeout", cfg.Session.LoginWaitTimeout)
	v.SetDefault("session.post_login_wait", cfg.Session.PostLoginWait)
	v.SetDefault("session.popup_wait", cfg.Session.PopupWait)

	v.SetDefault("search.result_cap", cfg.Search.ResultCap)
	v.SetDefault("search.max_scroll_attempts", cfg.Search.MaxScrollAttempts)
	v.SetDefault("search.min_followers", cfg.Search.MinFollowers)
	v.SetDefault("search.post_link_wait", cfg.Search.PostLinkWait)
	v.SetDefault("search.settle_delay", cfg.Search.SettleDelay)
	v.SetDefault("search.visit_delay_min", cfg.Search.VisitDelayMin)
	v.SetDefault("search.visit_delay_max", cfg.Search.VisitDelayMax)

	v.SetDefault("classifier.min_bio_length", cfg.Classifier.MinBioLength)
	v.SetDefault("classifier.keywords", cfg.Classifier.Keywords)

	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.rate_limit", cfg.Server.RateLimit)
	v.SetDefault("server.rate_window", cfg.Server.RateWindow)

	v.SetDefault("storage.type", cfg.Storage.Type)
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("storage.mongo_uri", cfg.Storage.MongoURI)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.history_cap", cfg.Storage.HistoryCap)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
