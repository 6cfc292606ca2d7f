// Package config loads orderlens settings from defaults, an optional YAML
// file and the environment, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file picked up from the working directory when no
// explicit path is given.
const FileName = "orderlens.yaml"

type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Tagging  TaggingConfig  `yaml:"tagging"`
	LLM      LLMConfig      `yaml:"llm"`
	Patterns PatternsConfig `yaml:"patterns"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type PathsConfig struct {
	// CorpusDir holds the raw case files the summary is built from.
	CorpusDir string `yaml:"corpus_dir"`
	// PublishedDir holds the per-case copies that get tagged in place.
	PublishedDir  string `yaml:"published_dir"`
	OutputDir     string `yaml:"output_dir"`
	ProvisionsDir string `yaml:"provisions_dir"`
}

type TaggingConfig struct {
	ErrorThreshold float64 `yaml:"error_threshold"`
	Workers        int     `yaml:"workers"`
}

type LLMConfig struct {
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	BaseURL   string        `yaml:"base_url"`
	MaxTokens int           `yaml:"max_tokens"`
	Pace      time.Duration `yaml:"pace"`
}

type PatternsConfig struct {
	MinCases       int `yaml:"min_cases"`
	MinPrefixWords int `yaml:"min_prefix_words"`
	FullTextLimit  int `yaml:"full_text_limit"`
	PreviewChars   int `yaml:"preview_chars"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

func Default() Config {
	return Config{
		Paths: PathsConfig{
			CorpusDir:     "output_v2",
			PublishedDir:  "public/data/ftc-files",
			OutputDir:     "public/data",
			ProvisionsDir: "public/data/provisions",
		},
		Tagging: TaggingConfig{
			ErrorThreshold: 0.05,
			Workers:        1,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			MaxTokens: 2048,
			Pace:      300 * time.Millisecond,
		},
		Patterns: PatternsConfig{
			MinCases:       3,
			MinPrefixWords: 3,
			FullTextLimit:  30,
			PreviewChars:   300,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the effective configuration. A .env file in the working
// directory is loaded first when present. An empty path falls back to
// orderlens.yaml, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	if err := loadFile(path, explicit, &cfg); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, required bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"ORDERLENS_CORPUS_DIR":     &cfg.Paths.CorpusDir,
		"ORDERLENS_PUBLISHED_DIR":  &cfg.Paths.PublishedDir,
		"ORDERLENS_OUTPUT_DIR":     &cfg.Paths.OutputDir,
		"ORDERLENS_PROVISIONS_DIR": &cfg.Paths.ProvisionsDir,
		"ORDERLENS_LOG_LEVEL":      &cfg.Logging.Level,
		"OPENAI_API_KEY":           &cfg.LLM.APIKey,
		"OPENAI_MODEL":             &cfg.LLM.Model,
		"OPENAI_BASE_URL":          &cfg.LLM.BaseURL,
	}
	for name, dst := range strs {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}

	if v := strings.TrimSpace(os.Getenv("ORDERLENS_ERROR_THRESHOLD")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid ORDERLENS_ERROR_THRESHOLD %q: %w", v, err)
		}
		cfg.Tagging.ErrorThreshold = f
	}
	return nil
}

func (c Config) Validate() error {
	if c.Tagging.ErrorThreshold <= 0 || c.Tagging.ErrorThreshold > 1 {
		return fmt.Errorf("tagging.error_threshold must be within (0, 1], got %v", c.Tagging.ErrorThreshold)
	}
	if c.Tagging.Workers < 0 {
		return fmt.Errorf("tagging.workers must be >= 0, got %d", c.Tagging.Workers)
	}
	if c.LLM.Pace < 0 {
		return fmt.Errorf("llm.pace must be >= 0, got %s", c.LLM.Pace)
	}
	return nil
}
