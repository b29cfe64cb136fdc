// Package config loads the dupscope configuration from a YAML file with
// environment-variable overrides. The analysis engine never reads this
// directly; the CLI and MCP server translate it into explicit engine options.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"dupscope/internal/analyze"
)

// DefaultPath is the config file consulted when DUPSCOPE_CONFIG is unset.
const DefaultPath = "dupscope.yaml"

// Config is the full file shape.
type Config struct {
	TCMBaseURL string `yaml:"tcm_base_url"`
	TCMKeyPath string `yaml:"tcm_api_key_path"`
	ProjectKey string `yaml:"project_key"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Analysis Analysis `yaml:"analysis"`

	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model"`
}

// Analysis mirrors the engine's tunables in file form.
type Analysis struct {
	SimilarityThreshold     float64 `yaml:"similarity_threshold"`
	StepClusteringThreshold float64 `yaml:"step_clustering_threshold"`
	Mode                    string  `yaml:"mode"`
	Linkage                 string  `yaml:"linkage"`
	UseStepClustering       *bool   `yaml:"use_step_clustering"`
	UseMedoidSelection      bool    `yaml:"use_medoid_selection"`
	IncludeSemanticPatterns *bool   `yaml:"include_semantic_patterns"`
	MaxCases                int     `yaml:"max_cases"`
	ReportingFloor          float64 `yaml:"reporting_floor"`
}

// Load reads the config file at path (or DefaultPath / $DUPSCOPE_CONFIG when
// empty), applies env overrides, and validates thresholds. A missing file is
// not an error; overrides and defaults still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
		if envPath := os.Getenv("DUPSCOPE_CONFIG"); envPath != "" {
			path = envPath
		}
	}

	var cfg Config
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Env vars override file values.
	envOverride(&cfg.TCMBaseURL, "DUPSCOPE_TCM_URL")
	envOverride(&cfg.TCMKeyPath, "DUPSCOPE_TCM_KEY_PATH")
	envOverride(&cfg.ProjectKey, "DUPSCOPE_PROJECT")
	envOverride(&cfg.LogLevel, "DUPSCOPE_LOG_LEVEL")
	envOverride(&cfg.LogFormat, "DUPSCOPE_LOG_FORMAT")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.AnthropicModel, "DUPSCOPE_ANTHROPIC_MODEL")
	envOverrideFloat(&cfg.Analysis.SimilarityThreshold, "DUPSCOPE_SIMILARITY_THRESHOLD")
	envOverrideFloat(&cfg.Analysis.StepClusteringThreshold, "DUPSCOPE_STEP_THRESHOLD")
	envOverride(&cfg.Analysis.Mode, "DUPSCOPE_MODE")

	if cfg.TCMKeyPath == "" {
		cfg.TCMKeyPath = ".tcm-api-key"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for name, v := range map[string]float64{
		"similarity_threshold":      c.Analysis.SimilarityThreshold,
		"step_clustering_threshold": c.Analysis.StepClusteringThreshold,
	} {
		if v != 0 && (v < analyze.MinThreshold || v > analyze.MaxThreshold) {
			return fmt.Errorf("config: %s=%.1f is outside [%.0f,%.0f]",
				name, v, analyze.MinThreshold, analyze.MaxThreshold)
		}
	}
	switch strings.ToLower(c.Analysis.Mode) {
	case "", "basic", "semantic", "hybrid":
	default:
		return fmt.Errorf("config: unknown analysis mode %q", c.Analysis.Mode)
	}
	switch strings.ToLower(c.Analysis.Linkage) {
	case "", "single", "complete":
	default:
		return fmt.Errorf("config: unknown linkage %q", c.Analysis.Linkage)
	}
	return nil
}

// EngineOptions translates the config into engine options, starting from the
// engine defaults so that unset fields keep their tuned values.
func (c *Config) EngineOptions() analyze.Options {
	opts := analyze.DefaultOptions()
	opts.ProjectKey = c.ProjectKey

	if c.Analysis.SimilarityThreshold != 0 {
		opts.SimilarityThreshold = c.Analysis.SimilarityThreshold
	}
	if c.Analysis.StepClusteringThreshold != 0 {
		opts.StepClusteringThreshold = c.Analysis.StepClusteringThreshold
	}
	if c.Analysis.Mode != "" {
		opts.Mode = analyze.Mode(strings.ToLower(c.Analysis.Mode))
	}
	if strings.EqualFold(c.Analysis.Linkage, "complete") {
		opts.Linkage = analyze.LinkageComplete
	}
	if c.Analysis.UseStepClustering != nil {
		opts.UseStepClustering = *c.Analysis.UseStepClustering
	}
	if c.Analysis.IncludeSemanticPatterns != nil {
		opts.IncludeSemanticPatterns = *c.Analysis.IncludeSemanticPatterns
	}
	opts.UseMedoidSelection = c.Analysis.UseMedoidSelection
	if c.Analysis.MaxCases > 0 {
		opts.MaxCases = c.Analysis.MaxCases
	}
	if c.Analysis.ReportingFloor > 0 {
		opts.ReportingFloor = c.Analysis.ReportingFloor
	}
	return opts
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
