package config

import (
	"fmt"
	"os"

	"mkdoc/internal/doxygen"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root       string   `yaml:"root"`
		Extensions []string `yaml:"extensions"`
	} `yaml:"project"`
	Output struct {
		Header string `yaml:"header"` // generated C header
		Report string `yaml:"report"` // JSON scan report
	} `yaml:"output"`
	Translator struct {
		ReturnIncludesTypeTag  bool `yaml:"return_includes_type_tag"`
		TranslateScopeOperator bool `yaml:"translate_scope_operator"`
		HideTParam             bool `yaml:"hide_tparam"`
	} `yaml:"translator"`
	Git struct {
		BaseRef string `yaml:"base_ref"`
	} `yaml:"git"`
}

// DefaultConfig returns the configuration used when config.yaml is absent.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Project.Root = "."
	cfg.Output.Header = "docs/mkdoc.h"
	cfg.Output.Report = "docs/mkdoc_report.json"
	cfg.Git.BaseRef = "HEAD"

	opts := doxygen.DefaultOptions()
	cfg.Translator.ReturnIncludesTypeTag = opts.ReturnIncludesTypeTag
	cfg.Translator.TranslateScopeOperator = opts.TranslateScopeOperator
	cfg.Translator.HideTParam = opts.HideTParam

	return cfg
}

// TranslatorOptions converts the translator section into engine options.
func (c *Config) TranslatorOptions() doxygen.Options {
	return doxygen.Options{
		ReturnIncludesTypeTag:  c.Translator.ReturnIncludesTypeTag,
		TranslateScopeOperator: c.Translator.TranslateScopeOperator,
		HideTParam:             c.Translator.HideTParam,
	}
}

// LoadConfig reads the YAML config at path on top of the defaults. A missing
// file is not an error; unset keys keep their default values.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := DefaultConfig()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("MKDOC_PROJECT_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if header := os.Getenv("MKDOC_OUTPUT_HEADER"); header != "" {
		cfg.Output.Header = header
	}
	if report := os.Getenv("MKDOC_OUTPUT_REPORT"); report != "" {
		cfg.Output.Report = report
	}
	if ref := os.Getenv("MKDOC_GIT_BASE_REF"); ref != "" {
		cfg.Git.BaseRef = ref
	}

	return cfg, nil
}
