package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"transformer-load/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load the transformer nameplate and survey from a separate YAML
	// (e.g. examples/transformers/*.yaml). Fields set in Transformer override it.
	TransformerFile string            `yaml:"transformer_file"`
	Transformer     TransformerConfig `yaml:"transformer"`
	Logging         LoggingConfig     `yaml:"logging"`
	Server          ServerConfig      `yaml:"server"`
}

type TransformerConfig struct {
	Name       string            `yaml:"name" json:"name"`
	RatingKVA  model.Current     `yaml:"rating_kva" json:"rating_kva"`
	FeederLegs []model.FeederLeg `yaml:"feeder_legs" json:"feeder_legs"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Env            string   `yaml:"env"`
	StaticDir      string   `yaml:"static_dir"`
	TransformerDir string   `yaml:"transformer_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, applies defaults and environment
// overrides, but does not validate the transformer. Useful for partial surveys.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.TransformerFile != "" {
		txPath := c.TransformerFile
		if !filepath.IsAbs(txPath) {
			// Prefer paths relative to the config file, then fall back to cwd.
			cand := filepath.Join(filepath.Dir(path), txPath)
			if _, err := os.Stat(cand); err == nil {
				txPath = cand
			}
		}
		loaded, err := LoadTransformerFile(txPath)
		if err != nil {
			return nil, err
		}
		c.Transformer = MergeTransformer(loaded, c.Transformer)
	}
	c.applyDefaults()
	c.ApplyEnv()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "./web/dist"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	tx := c.Transformer.ToModel()
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("transformer config invalid: %w", err)
	}
	return nil
}

// ToModel converts the YAML shape into the engine's input.
func (t TransformerConfig) ToModel() model.Transformer {
	return model.Transformer{
		Name:   t.Name,
		Rating: model.TransformerRating{RatingKVA: t.RatingKVA},
		Legs:   t.FeederLegs,
	}
}

type transformerFileWrapper struct {
	Transformer TransformerConfig `yaml:"transformer"`
}

// LoadTransformerFile reads a preset with a top-level "transformer" key.
func LoadTransformerFile(path string) (TransformerConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TransformerConfig{}, err
	}
	var w transformerFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return TransformerConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Transformer, nil
}

// MergeTransformer overlays non-zero fields from override onto base.
// Feeder legs are replaced as a whole, never merged leg by leg.
func MergeTransformer(base, override TransformerConfig) TransformerConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.RatingKVA != 0 {
		out.RatingKVA = override.RatingKVA
	}
	if len(override.FeederLegs) > 0 {
		out.FeederLegs = override.FeederLegs
	}
	return out
}
