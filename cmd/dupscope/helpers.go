package main

import (
	"fmt"
	"os"
	"time"

	"dupscope/internal/analyze"
	"dupscope/internal/config"
	"dupscope/internal/llm"
	"dupscope/internal/tcm"
)

// loadConfig resolves the config path from the root flag and loads it.
func loadConfig() (*config.Config, error) {
	return config.Load(rootFlags.configPath)
}

// newClient builds the TCM client from config, reading the API token file.
func newClient(cfg *config.Config) (*tcm.Client, error) {
	if cfg.TCMBaseURL == "" {
		return nil, fmt.Errorf("TCM base URL is not configured\n\n" +
			"Set tcm_base_url in dupscope.yaml or export DUPSCOPE_TCM_URL.")
	}
	if err := checkTokenFile(cfg.TCMKeyPath); err != nil {
		return nil, err
	}
	token, err := tcm.ReadAPIKey(cfg.TCMKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read API key: %w", err)
	}
	return tcm.New(cfg.TCMBaseURL, token, tcm.WithTimeout(30*time.Second))
}

// checkTokenFile verifies the token file exists and warns on loose modes.
func checkTokenFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("TCM API token file not found: %s\n\n"+
			"To get your token:\n"+
			"  1. Log in to your TCM instance\n"+
			"  2. Open your profile and generate an API token\n"+
			"  3. Save it:  echo '<YOUR_TOKEN>' > %s && chmod 600 %s\n", path, path, path)
	}
	if err != nil {
		return fmt.Errorf("check token file: %w", err)
	}
	if perm := info.Mode().Perm(); perm&0044 != 0 {
		fmt.Fprintf(os.Stderr, "WARNING: %s is readable by group/others (mode %04o). Run: chmod 600 %s\n", path, perm, path)
	}
	return nil
}

// newAugmenter returns the Claude-backed hook when a key is configured,
// nil otherwise. A nil augmenter simply keeps semantic runs deterministic.
func newAugmenter(cfg *config.Config) analyze.Augmenter {
	if cfg.AnthropicAPIKey == "" {
		return nil
	}
	return llm.New(cfg.AnthropicAPIKey, cfg.AnthropicModel)
}
