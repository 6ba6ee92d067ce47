package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.IsSet("api_url") {
		raw := viper.GetString("api_url")
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errors = append(errors, fmt.Sprintf("api_url must be an absolute http(s) URL, got: %q", raw))
		}
	}

	if viper.IsSet("session_path") {
		p := viper.GetString("session_path")
		if !strings.HasPrefix(p, "/") {
			errors = append(errors, fmt.Sprintf("session_path must start with /, got: %q", p))
		}
	}

	if viper.IsSet("timeout") {
		if timeout := durationOf("timeout"); timeout <= 0 {
			errors = append(errors, fmt.Sprintf("timeout must be positive, got: %v", timeout))
		}
	}

	if viper.IsSet("rate_limit") {
		if r := viper.GetFloat64("rate_limit"); r <= 0 {
			errors = append(errors, fmt.Sprintf("rate_limit must be positive, got: %v", r))
		}
	}

	if viper.IsSet("rate_burst") {
		if b := viper.GetInt("rate_burst"); b <= 0 {
			errors = append(errors, fmt.Sprintf("rate_burst must be positive, got: %d", b))
		}
	}

	// 0 disables the metrics server
	if viper.IsSet("metrics_port") {
		port := viper.GetInt("metrics_port")
		if port < 0 || port > 65535 {
			errors = append(errors, fmt.Sprintf("metrics_port must be between 0 and 65535, got: %d", port))
		}
	}

	if !viper.GetBool("ephemeral") && viper.IsSet("cache_path") && viper.GetString("cache_path") == "" {
		errors = append(errors, "cache_path must not be empty unless ephemeral is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}

// ValidateAndExit validates the configuration and exits with a non-zero code if validation fails.
func ValidateAndExit() {
	if err := ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
