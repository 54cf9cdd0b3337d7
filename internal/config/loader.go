package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading for one analyzed root.
type Loader interface {
	// Load loads configuration with priority, highest first:
	// environment variables (ASKREPO_*), .askrepo/config.yml, defaults.
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader for the given root
// directory.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".askrepo")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("ASKREPO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults seeds viper so partial config files only override what
// they mention.
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("analysis.workers", def.Analysis.Workers)
	v.SetDefault("analysis.lines_per_point", def.Analysis.LinesPerPoint)
	v.SetDefault("analysis.complexity_penalty", def.Analysis.ComplexityPenalty)
	v.SetDefault("analysis.depth_penalty", def.Analysis.DepthPenalty)
	v.SetDefault("analysis.min_arch_confidence", def.Analysis.MinArchConfidence)

	v.SetDefault("chunking.max_tokens", def.Chunking.MaxTokens)
	v.SetDefault("chunking.overlap_lines", def.Chunking.OverlapLines)

	v.SetDefault("retrieval.top_k", def.Retrieval.TopK)
	v.SetDefault("retrieval.min_confidence", def.Retrieval.MinConfidence)
	v.SetDefault("retrieval.high_band", def.Retrieval.HighBand)
	v.SetDefault("retrieval.medium_band", def.Retrieval.MediumBand)
	v.SetDefault("retrieval.low_band", def.Retrieval.LowBand)

	v.SetDefault("discovery.max_file_size_kb", def.Discovery.MaxFileSizeKB)
	v.SetDefault("discovery.max_files", def.Discovery.MaxFiles)
	v.SetDefault("discovery.ignore", def.Discovery.Ignore)

	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.path", def.Cache.Path)
}
