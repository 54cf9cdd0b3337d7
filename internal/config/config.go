// Package config defines askrepo's configuration: analysis, chunking,
// retrieval, and discovery policy. All numeric cutoffs (confidence
// bands, maintainability scoring) live here as named, documented
// values rather than constants buried in the engine.
package config

import (
	"fmt"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/arch"
	"github.com/askrepo/askrepo/internal/search"
)

// Config is the complete askrepo configuration. Loaded from
// .askrepo/config.yml with environment variable overrides.
type Config struct {
	Analysis  AnalysisConfig  `yaml:"analysis" mapstructure:"analysis"`
	Chunking  ChunkingConfig  `yaml:"chunking" mapstructure:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
}

// AnalysisConfig configures extraction and scoring.
type AnalysisConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`                         // 0 means one per CPU
	LinesPerPoint     int     `yaml:"lines_per_point" mapstructure:"lines_per_point"`         // maintainability: lines per point deducted
	ComplexityPenalty float64 `yaml:"complexity_penalty" mapstructure:"complexity_penalty"`   // points per decision point
	DepthPenalty      float64 `yaml:"depth_penalty" mapstructure:"depth_penalty"`             // points per nesting level
	MinArchConfidence float64 `yaml:"min_arch_confidence" mapstructure:"min_arch_confidence"` // pattern evidence floor
}

// ChunkingConfig configures how content is cut for indexing.
type ChunkingConfig struct {
	MaxTokens    int `yaml:"max_tokens" mapstructure:"max_tokens"`       // approximate token bound per chunk
	OverlapLines int `yaml:"overlap_lines" mapstructure:"overlap_lines"` // lines repeated between splits
}

// RetrievalConfig configures ranking and confidence policy.
type RetrievalConfig struct {
	TopK          int     `yaml:"top_k" mapstructure:"top_k"`
	MinConfidence string  `yaml:"min_confidence" mapstructure:"min_confidence"` // high | medium | low | none
	HighBand      float64 `yaml:"high_band" mapstructure:"high_band"`           // similarity >= this is high confidence
	MediumBand    float64 `yaml:"medium_band" mapstructure:"medium_band"`
	LowBand       float64 `yaml:"low_band" mapstructure:"low_band"`
}

// DiscoveryConfig bounds the file walk feeding the analyzer.
type DiscoveryConfig struct {
	MaxFileSizeKB int      `yaml:"max_file_size_kb" mapstructure:"max_file_size_kb"`
	MaxFiles      int      `yaml:"max_files" mapstructure:"max_files"`
	Ignore        []string `yaml:"ignore" mapstructure:"ignore"`
}

// CacheConfig configures the optional sqlite analysis cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"` // default .askrepo/cache.db under the analyzed root
}

// Default returns a configuration with the documented defaults.
func Default() *Config {
	metrics := analyzer.DefaultMetricsConfig()
	archCfg := arch.DefaultConfig()
	bands := search.DefaultThresholds()
	return &Config{
		Analysis: AnalysisConfig{
			Workers:           0,
			LinesPerPoint:     metrics.LinesPerPoint,
			ComplexityPenalty: metrics.ComplexityPenalty,
			DepthPenalty:      metrics.DepthPenalty,
			MinArchConfidence: archCfg.MinConfidence,
		},
		Chunking: ChunkingConfig{
			MaxTokens:    500,
			OverlapLines: 5,
		},
		Retrieval: RetrievalConfig{
			TopK:          5,
			MinConfidence: string(search.ConfidenceLow),
			HighBand:      bands.High,
			MediumBand:    bands.Medium,
			LowBand:       bands.Low,
		},
		Discovery: DiscoveryConfig{
			MaxFileSizeKB: 512,
			MaxFiles:      2000,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	switch search.Confidence(c.Retrieval.MinConfidence) {
	case search.ConfidenceHigh, search.ConfidenceMedium, search.ConfidenceLow, search.ConfidenceNone:
	default:
		return fmt.Errorf("retrieval.min_confidence must be one of high, medium, low, none; got %q", c.Retrieval.MinConfidence)
	}
	if c.Retrieval.HighBand < c.Retrieval.MediumBand || c.Retrieval.MediumBand < c.Retrieval.LowBand {
		return fmt.Errorf("retrieval bands must be ordered high >= medium >= low")
	}
	if c.Chunking.MaxTokens <= 0 {
		return fmt.Errorf("chunking.max_tokens must be positive, got %d", c.Chunking.MaxTokens)
	}
	return nil
}

// Metrics converts the analysis section to the analyzer's policy type.
func (c *Config) Metrics() analyzer.MetricsConfig {
	m := analyzer.DefaultMetricsConfig()
	m.LinesPerPoint = c.Analysis.LinesPerPoint
	m.ComplexityPenalty = c.Analysis.ComplexityPenalty
	m.DepthPenalty = c.Analysis.DepthPenalty
	return m
}

// Arch converts the analysis section to the detector's policy type.
func (c *Config) Arch() arch.Config {
	a := arch.DefaultConfig()
	a.MinConfidence = c.Analysis.MinArchConfidence
	return a
}

// Thresholds converts the retrieval section to confidence bands.
func (c *Config) Thresholds() search.Thresholds {
	return search.Thresholds{
		High:   c.Retrieval.HighBand,
		Medium: c.Retrieval.MediumBand,
		Low:    c.Retrieval.LowBand,
	}
}
