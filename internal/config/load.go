package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the resolved client configuration.
type Settings struct {
	APIURL      string
	SessionPath string
	Timeout     time.Duration
	RateLimit   float64
	RateBurst   int
	CachePath   string
	Ephemeral   bool
	LogFile     string
	MetricsPort int
	Verbose     bool
	NoColor     bool
	DevAddr     string
}

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "myhair"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("MYHAIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	// The web front-end was pointed at the backend with VITE_API_URL.
	if os.Getenv("MYHAIR_API_URL") == "" && os.Getenv("VITE_API_URL") != "" {
		viper.SetDefault("api_url", os.Getenv("VITE_API_URL"))
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config file %s: %v\n", cfgFile, err)
	}
}

// SetDefaults registers every default. Values already set are kept.
func SetDefaults() {
	viper.SetDefault("api_url", "http://localhost:3000")
	viper.SetDefault("session_path", "/api/auth/check")
	viper.SetDefault("timeout", "15s")
	viper.SetDefault("rate_limit", 10.0)
	viper.SetDefault("rate_burst", 20)
	viper.SetDefault("cache_path", defaultPath(os.UserConfigDir, "cache.db"))
	viper.SetDefault("ephemeral", false)
	viper.SetDefault("log_file", defaultPath(os.UserCacheDir, "myhair.log"))
	viper.SetDefault("metrics_port", 0)
	viper.SetDefault("verbose", false)
	viper.SetDefault("no_color", false)
	viper.SetDefault("devserver.addr", ":3000")
}

// Current snapshots the viper state into Settings.
func Current() Settings {
	return Settings{
		APIURL:      strings.TrimRight(viper.GetString("api_url"), "/"),
		SessionPath: viper.GetString("session_path"),
		Timeout:     durationOf("timeout"),
		RateLimit:   viper.GetFloat64("rate_limit"),
		RateBurst:   viper.GetInt("rate_burst"),
		CachePath:   viper.GetString("cache_path"),
		Ephemeral:   viper.GetBool("ephemeral"),
		LogFile:     viper.GetString("log_file"),
		MetricsPort: viper.GetInt("metrics_port"),
		Verbose:     viper.GetBool("verbose"),
		NoColor:     viper.GetBool("no_color"),
		DevAddr:     viper.GetString("devserver.addr"),
	}
}

// durationOf reads key as a duration string ("15s") or as whole seconds.
func durationOf(key string) time.Duration {
	switch v := viper.Get(key).(type) {
	case nil:
		return 0
	case time.Duration:
		return v
	case int, int32, int64, float64:
		return time.Duration(viper.GetInt64(key)) * time.Second
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		return time.Duration(viper.GetInt64(key)) * time.Second
	default:
		return viper.GetDuration(key)
	}
}

func defaultPath(base func() (string, error), name string) string {
	dir, err := base()
	if err != nil {
		return filepath.Join(os.TempDir(), "myhair", name)
	}
	return filepath.Join(dir, "myhair", name)
}
