package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	CatalogBaseURL     string        `mapstructure:"catalog_base_url"`
	ProcessingBaseURL  string        `mapstructure:"processing_base_url"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	DemoItemName      string `mapstructure:"demo_item_name"`
	DemoCountryCode   string `mapstructure:"demo_country_code"`
	DemoReports       bool   `mapstructure:"demo_reports"`
	ReportCountryCode string `mapstructure:"report_country_code"`

	PublishersFile string `mapstructure:"publishers_file"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	StubCatalogAddr    string `mapstructure:"stub_catalog_addr"`
	StubProcessingAddr string `mapstructure:"stub_processing_addr"`
	StubDBDSN          string `mapstructure:"stub_db_dsn"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "catalog-consumer")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("catalog_base_url", "http://localhost:8000/api")
	v.SetDefault("processing_base_url", "http://localhost:3001/api")
	v.SetDefault("http_timeout_seconds", 0) // no client-side timeout
	v.SetDefault("demo_item_name", "Go Demo Product")
	v.SetDefault("demo_country_code", "BR")
	v.SetDefault("demo_reports", false)
	v.SetDefault("report_country_code", "US")
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/consumer.db")
	v.SetDefault("storage_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("stub_catalog_addr", ":8000")
	v.SetDefault("stub_processing_addr", ":3001")
	v.SetDefault("stub_db_dsn", ":memory:")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CatalogBaseURL = strings.TrimRight(strings.TrimSpace(cfg.CatalogBaseURL), "/")
	cfg.ProcessingBaseURL = strings.TrimRight(strings.TrimSpace(cfg.ProcessingBaseURL), "/")
	if cfg.CatalogBaseURL == "" {
		return nil, fmt.Errorf("catalog_base_url is required")
	}
	if cfg.ProcessingBaseURL == "" {
		return nil, fmt.Errorf("processing_base_url is required")
	}

	if cfg.HTTPTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	cfg.DemoCountryCode = strings.ToUpper(strings.TrimSpace(cfg.DemoCountryCode))
	cfg.ReportCountryCode = strings.ToUpper(strings.TrimSpace(cfg.ReportCountryCode))

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}
