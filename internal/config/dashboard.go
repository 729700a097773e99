package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DashboardConfig holds display-level settings the aggregation layer consumes:
// the currency symbol table and the trailing usage window. These used to be
// ambient UI state; they are explicit configuration here.
type DashboardConfig struct {
	UsageWindowDays int               `mapstructure:"usageWindowDays"`
	CurrencySymbols map[string]string `mapstructure:"currencySymbols"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		UsageWindowDays: 30,
		CurrencySymbols: map[string]string{
			"USD": "$",
			"EUR": "€",
			"GBP": "£",
		},
	}
}

// DashboardConfigHolder exposes the current dashboard config with hot reload.
type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

func NewDashboardConfigHolder(cfg Config) (*DashboardConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	for _, path := range cfg.DashboardConfigPaths {
		v.AddConfigPath(path)
	}
	v.AddConfigPath("/etc/meterdash")
	v.AddConfigPath(".")

	v.SetEnvPrefix("METERDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		v.SetDefault("dashboard.usageWindowDays", defaults.UsageWindowDays)
		v.SetDefault("dashboard.currencySymbols", defaults.CurrencySymbols)
	}

	var loaded DashboardConfig
	if err := v.UnmarshalKey("dashboard", &loaded); err != nil {
		return nil, err
	}
	applyDashboardDefaults(&loaded, defaults)
	if err := validateDashboardConfig(loaded); err != nil {
		return nil, err
	}

	holder := &DashboardConfigHolder{}
	holder.current.Store(loaded)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DashboardConfig
		if err := v.UnmarshalKey("dashboard", &updated); err != nil {
			log.Printf("[dashboard-config] reload failed: %v", err)
			return
		}
		applyDashboardDefaults(&updated, defaults)
		if err := validateDashboardConfig(updated); err != nil {
			log.Printf("[dashboard-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[dashboard-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *DashboardConfigHolder) Get() DashboardConfig {
	return h.current.Load().(DashboardConfig)
}

func applyDashboardDefaults(cfg *DashboardConfig, defaults DashboardConfig) {
	if cfg.UsageWindowDays == 0 {
		cfg.UsageWindowDays = defaults.UsageWindowDays
	}
	if len(cfg.CurrencySymbols) == 0 {
		cfg.CurrencySymbols = defaults.CurrencySymbols
	}
}

func validateDashboardConfig(cfg DashboardConfig) error {
	if cfg.UsageWindowDays <= 0 {
		return errors.New("dashboard.usageWindowDays must be positive")
	}
	if len(cfg.CurrencySymbols) == 0 {
		return errors.New("dashboard.currencySymbols cannot be empty")
	}
	return nil
}
