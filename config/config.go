package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	gotoml "github.com/pelletier/go-toml/v2"
)

var (
	Configfile = "./config/config.toml"

	mu       sync.RWMutex
	settings MainConfig
)

// MainConfig is the root of the toml configuration file.
type MainConfig struct {
	General      GeneralConfig      `koanf:"general" toml:"general"`
	Scheduler    SchedulerConfig    `koanf:"scheduler" toml:"scheduler"`
	Notification NotificationConfig `koanf:"notification" toml:"notification"`
}

// GeneralConfig holds the server wide settings.
type GeneralConfig struct {
	WebPort           string   `koanf:"webport" toml:"webport"`
	WebAPIKey         string   `koanf:"webapikey" toml:"webapikey"`
	WebAdminUser      string   `koanf:"webadminuser" toml:"webadminuser"`
	WebAdminPassword  string   `koanf:"webadminpassword" toml:"webadminpassword"`
	DBFile            string   `koanf:"dbfile" toml:"dbfile"`
	SessionDBFile     string   `koanf:"sessiondbfile" toml:"sessiondbfile"`
	SessionHours      int      `koanf:"sessionhours" toml:"sessionhours"`
	LogLevel          string   `koanf:"loglevel" toml:"loglevel"`
	LogFileSize       int      `koanf:"logfilesize" toml:"logfilesize"`
	LogFileCount      uint8    `koanf:"logfilecount" toml:"logfilecount"`
	LogCompress       bool     `koanf:"logcompress" toml:"logcompress"`
	LogColorize       bool     `koanf:"logcolorize" toml:"logcolorize"`
	LogToFileOnly     bool     `koanf:"logtofileonly" toml:"logtofileonly"`
	EnableFileWatcher bool     `koanf:"enablefilewatcher" toml:"enablefilewatcher"`
	EnablePprof       bool     `koanf:"enablepprof" toml:"enablepprof"`
	CorsOrigins       []string `koanf:"corsorigins" toml:"corsorigins"`
	APIRateLimit      int      `koanf:"apiratelimit" toml:"apiratelimit"`
	APIRateBurst      int      `koanf:"apirateburst" toml:"apirateburst"`
	CacheDuration     int      `koanf:"cacheduration" toml:"cacheduration"`
}

// SchedulerConfig holds the cron expressions of the background jobs.
// Empty entries disable the job.
type SchedulerConfig struct {
	IntervalOverdueReservations string `koanf:"interval_overdue_reservations" toml:"interval_overdue_reservations"`
	IntervalOverdueInvoices     string `koanf:"interval_overdue_invoices" toml:"interval_overdue_invoices"`
	IntervalSessionCleanup      string `koanf:"interval_session_cleanup" toml:"interval_session_cleanup"`
}

// NotificationConfig holds the pushover credentials for ticket alerts.
type NotificationConfig struct {
	PushoverAPIKey string `koanf:"pushover_apikey" toml:"pushover_apikey"`
	PushoverUser   string `koanf:"pushover_user" toml:"pushover_user"`
}

// GetConfigDir returns the directory path where configuration files are stored.
func GetConfigDir() string {
	return "./config"
}

func defaults() MainConfig {
	return MainConfig{
		General: GeneralConfig{
			WebPort:       "9090",
			WebAPIKey:     strings.ReplaceAll(uuid.NewString(), "-", ""),
			WebAdminUser:  "admin",
			DBFile:        "./data/autonuoma.db",
			SessionDBFile: "./data/sessions.db",
			SessionHours:  24,
			LogLevel:      "info",
			LogFileSize:   10,
			LogFileCount:  5,
			APIRateLimit:  10,
			APIRateBurst:  20,
			CacheDuration: 5,
		},
		Scheduler: SchedulerConfig{
			IntervalOverdueReservations: "0 */15 * * * *",
			IntervalOverdueInvoices:     "0 0 * * * *",
			IntervalSessionCleanup:      "0 */30 * * * *",
		},
	}
}

// LoadCfg reads the configuration file into the global settings snapshot.
// A missing file is created first with the default values. Environment
// variables prefixed with AUTONUOMA_ override file values, so
// AUTONUOMA_GENERAL_WEBPORT replaces general.webport.
func LoadCfg() error {
	if _, err := os.Stat(Configfile); errors.Is(err, os.ErrNotExist) {
		if err := WriteCfg(defaults()); err != nil {
			return err
		}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(Configfile), toml.Parser()); err != nil {
		return err
	}
	err := k.Load(env.Provider("AUTONUOMA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "AUTONUOMA_")), "_", ".", 1)
	}), nil)
	if err != nil {
		return err
	}

	out := defaults()
	if err := k.Unmarshal("", &out); err != nil {
		return err
	}

	mu.Lock()
	settings = out
	mu.Unlock()
	return nil
}

// WriteCfg writes the given configuration to Configfile as toml.
func WriteCfg(cfg MainConfig) error {
	if err := os.MkdirAll(GetConfigDir(), 0o755); err != nil {
		return err
	}
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(Configfile, data, 0o644)
}

// GetSettingsGeneral returns a copy of the general settings.
func GetSettingsGeneral() GeneralConfig {
	mu.RLock()
	defer mu.RUnlock()
	return settings.General
}

// GetSettingsScheduler returns a copy of the scheduler settings.
func GetSettingsScheduler() SchedulerConfig {
	mu.RLock()
	defer mu.RUnlock()
	return settings.Scheduler
}

// GetSettingsNotification returns a copy of the notification settings.
func GetSettingsNotification() NotificationConfig {
	mu.RLock()
	defer mu.RUnlock()
	return settings.Notification
}
