package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// MarketplaceConfig holds the external marketplace API configuration
type MarketplaceConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	CatalogURL  string        `mapstructure:"catalog_url"`
	UserAgent   string        `mapstructure:"user_agent"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// PageLimit is the page size requested from the owners endpoint
	PageLimit int `mapstructure:"page_limit"`
}

// WebhookConfig holds the outbound notification sink configuration
type WebhookConfig struct {
	DealsURL       string `mapstructure:"deals_url"`
	TradesURL      string `mapstructure:"trades_url"`
	OperationalURL string `mapstructure:"operational_url"`
	Username       string `mapstructure:"username"`
	AvatarURL      string `mapstructure:"avatar_url"`
}

// ReconcileConfig holds the reconciliation cycle pacing configuration.
// The delays respect the marketplace's implicit rate limits; they are
// not correctness-critical.
type ReconcileConfig struct {
	CycleInterval  time.Duration `mapstructure:"cycle_interval"`
	InterItemDelay time.Duration `mapstructure:"inter_item_delay"`
	InterPageDelay time.Duration `mapstructure:"inter_page_delay"`
}

// CatalogueConfig holds the catalogue sync pacing configuration
type CatalogueConfig struct {
	SyncInterval time.Duration `mapstructure:"sync_interval"`
}

// IngestorConfig holds configuration for the ingestor binary
type IngestorConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Webhook     WebhookConfig     `mapstructure:"webhook"`
	Reconcile   ReconcileConfig   `mapstructure:"reconcile"`
}

// CatalogueSyncConfig holds configuration for the catalogue-sync binary
type CatalogueSyncConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Webhook     WebhookConfig     `mapstructure:"webhook"`
	Catalogue   CatalogueConfig   `mapstructure:"catalogue"`
}

// LoadIngestorConfig loads configuration for the ingestor binary
func LoadIngestorConfig(configFile string, envPath string) (*IngestorConfig, error) {
	v := configureViper("ingestor", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("reconcile.cycle_interval", "10m")
	v.SetDefault("reconcile.inter_item_delay", "2s")
	v.SetDefault("reconcile.inter_page_delay", "500ms")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config IngestorConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadCatalogueSyncConfig loads configuration for the catalogue-sync binary
func LoadCatalogueSyncConfig(configFile string, envPath string) (*CatalogueSyncConfig, error) {
	v := configureViper("catalogue-sync", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("catalogue.sync_interval", "5m")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config CatalogueSyncConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("marketplace.user_agent", "hoardwatch-ingestor/1.0")
	v.SetDefault("marketplace.http_timeout", "30s")
	v.SetDefault("marketplace.page_limit", 100)
	v.SetDefault("webhook.username", "Hoardwatch")
}

func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in the current directory, the service
		// directory and the config directory
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("HOARDWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Marketplace
		"marketplace.base_url",
		"marketplace.catalog_url",
		"marketplace.user_agent",
		"marketplace.http_timeout",
		"marketplace.page_limit",
		// Webhook
		"webhook.deals_url",
		"webhook.trades_url",
		"webhook.operational_url",
		"webhook.username",
		"webhook.avatar_url",
		// Reconcile
		"reconcile.cycle_interval",
		"reconcile.inter_item_delay",
		"reconcile.inter_page_delay",
		// Catalogue
		"catalogue.sync_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
