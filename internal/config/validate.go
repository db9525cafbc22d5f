package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Session.BaseURL == "" {
		return fmt.Errorf("session.base_url must not be empty")
	}
	if _, err := url.Parse(cfg.Session.BaseURL); err != nil {
		return fmt.Errorf("invalid session.base_url %q: %w", cfg.Session.BaseURL, err)
	}
	if cfg.Session.PageLoadTimeout <= 0 {
		return fmt.Errorf("session.page_load_timeout must be > 0")
	}
	if cfg.Session.LoginWaitTimeout <= 0 {
		return fmt.Errorf("session.login_wait_timeout must be > 0")
	}

	if cfg.Search.ResultCap < 1 {
		return fmt.Errorf("search.result_cap must be >= 1, got %d", cfg.Search.ResultCap)
	}
	if cfg.Search.MaxScrollAttempts < 1 {
		return fmt.Errorf("search.max_scroll_attempts must be >= 1, got %d", cfg.Search.MaxScrollAttempts)
	}
	if cfg.Search.MinFollowers < 0 {
		return fmt.Errorf("search.min_followers must be >= 0, got %d", cfg.Search.MinFollowers)
	}
	if cfg.Search.VisitDelayMin < 0 || cfg.Search.VisitDelayMax < cfg.Search.VisitDelayMin {
		return fmt.Errorf("search visit delay range is invalid: min=%s max=%s",
			cfg.Search.VisitDelayMin, cfg.Search.VisitDelayMax)
	}

	if cfg.Classifier.MinBioLength < 0 {
		return fmt.Errorf("classifier.min_bio_length must be >= 0, got %d", cfg.Classifier.MinBioLength)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.RateLimit < 1 {
		return fmt.Errorf("server.rate_limit must be >= 1, got %d", cfg.Server.RateLimit)
	}
	if cfg.Server.RateWindow <= 0 {
		return fmt.Errorf("server.rate_window must be > 0")
	}

	if cfg.Storage.Type != "file" && cfg.Storage.Type != "mongodb" {
		return fmt.Errorf("storage.type must be 'file' or 'mongodb', got %q", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required when storage.type is 'mongodb'")
	}
	if cfg.Storage.HistoryCap < 1 {
		return fmt.Errorf("storage.history_cap must be >= 1, got %d", cfg.Storage.HistoryCap)
	}

	if cfg.Browser.ProxyURL != "" {
		if _, err := url.Parse(cfg.Browser.ProxyURL); err != nil {
			return fmt.Errorf("invalid browser.proxy_url %q: %w", cfg.Browser.ProxyURL, err)
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}
