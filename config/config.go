package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ChromaConfig configures the audio frontend
type ChromaConfig struct {
	SampleRate int     `json:"sample_rate" yaml:"sample_rate"`
	WindowSize int     `json:"window_size" yaml:"window_size"`
	HopSize    int     `json:"hop_size" yaml:"hop_size"`
	TuningFreq float64 `json:"tuning_freq" yaml:"tuning_freq"` // A4 reference, Hz
}

// ClassifierConfig configures chord classification
type ClassifierConfig struct {
	Catalog          string  `json:"catalog" yaml:"catalog"` // "basic" or "extended"
	WindowFrames     int     `json:"window_frames" yaml:"window_frames"`
	MinConfidence    float64 `json:"min_confidence" yaml:"min_confidence"` // 0 means catalog default
	MinChordDuration float64 `json:"min_chord_duration" yaml:"min_chord_duration"`
}

// FilterConfig configures chord significance filtering
type FilterConfig struct {
	SuppressWindow float64 `json:"suppress_window" yaml:"suppress_window"`
	MaxLabelLength int     `json:"max_label_length" yaml:"max_label_length"`
}

// StructureConfig configures section detection
type StructureConfig struct {
	MinTextLength       int     `json:"min_text_length" yaml:"min_text_length"`
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
	EdgeGap             float64 `json:"edge_gap" yaml:"edge_gap"`
	BoundaryTolerance   float64 `json:"boundary_tolerance" yaml:"boundary_tolerance"`
	UseAudioBoundaries  bool    `json:"use_audio_boundaries" yaml:"use_audio_boundaries"`
}

// AlignConfig configures lyric/chord alignment
type AlignConfig struct {
	DefaultConfidence float64 `json:"default_confidence" yaml:"default_confidence"`
}

// RenderConfig configures chart rendering
type RenderConfig struct {
	SeparatorWidth int     `json:"separator_width" yaml:"separator_width"`
	WordTimeWindow float64 `json:"word_time_window" yaml:"word_time_window"`
}

// Config is the full pipeline configuration
type Config struct {
	Chroma     ChromaConfig     `json:"chroma" yaml:"chroma"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Filter     FilterConfig     `json:"filter" yaml:"filter"`
	Structure  StructureConfig  `json:"structure" yaml:"structure"`
	Align      AlignConfig      `json:"align" yaml:"align"`
	Render     RenderConfig     `json:"render" yaml:"render"`
}

// DefaultConfig returns the standard pipeline configuration
func DefaultConfig() *Config {
	return &Config{
		Chroma: ChromaConfig{
			SampleRate: 22050,
			WindowSize: 2048,
			HopSize:    512,
			TuningFreq: 440.0,
		},
		Classifier: ClassifierConfig{
			Catalog:          "basic",
			WindowFrames:     20,
			MinConfidence:    0, // Resolved from catalog
			MinChordDuration: 0.5,
		},
		Filter: FilterConfig{
			SuppressWindow: 0.5,
			MaxLabelLength: 5,
		},
		Structure: StructureConfig{
			MinTextLength:       10,
			SimilarityThreshold: 0.7,
			EdgeGap:             3.0,
			BoundaryTolerance:   3.0,
			UseAudioBoundaries:  false,
		},
		Align: AlignConfig{
			DefaultConfidence: 0.85,
		},
		Render: RenderConfig{
			SeparatorWidth: 40,
			WordTimeWindow: 1.0,
		},
	}
}

// LoadFile reads a YAML configuration file over the defaults, so a file
// only needs to name the settings it changes
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values no stage can work with
func (c *Config) Validate() error {
	if c.Chroma.SampleRate <= 0 {
		return fmt.Errorf("chroma.sample_rate must be positive: %d", c.Chroma.SampleRate)
	}
	if c.Chroma.WindowSize <= 0 {
		return fmt.Errorf("chroma.window_size must be positive: %d", c.Chroma.WindowSize)
	}
	if c.Chroma.HopSize <= 0 {
		return fmt.Errorf("chroma.hop_size must be positive: %d", c.Chroma.HopSize)
	}
	if c.Classifier.Catalog != "basic" && c.Classifier.Catalog != "extended" {
		return fmt.Errorf("classifier.catalog must be \"basic\" or \"extended\": %q", c.Classifier.Catalog)
	}
	if c.Classifier.WindowFrames <= 0 {
		return fmt.Errorf("classifier.window_frames must be positive: %d", c.Classifier.WindowFrames)
	}
	if c.Filter.MaxLabelLength <= 0 {
		return fmt.Errorf("filter.max_label_length must be positive: %d", c.Filter.MaxLabelLength)
	}
	if c.Structure.SimilarityThreshold <= 0 || c.Structure.SimilarityThreshold > 1 {
		return fmt.Errorf("structure.similarity_threshold must be in (0, 1]: %f", c.Structure.SimilarityThreshold)
	}
	return nil
}
