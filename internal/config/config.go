package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Output struct {
		BaseDir string `yaml:"base_dir"`
	} `yaml:"output"`
	Document struct {
		Style string `yaml:"style"`
	} `yaml:"document"`
	AI struct {
		Model  string `yaml:"model"` // "provider/model" or bare provider name
		APIKey string `yaml:"api_key"`
	} `yaml:"ai"`
	Git struct {
		RevertLogLimit int `yaml:"revert_log_limit"`
	} `yaml:"git"`
}

// LoadConfig reads config.yaml if present and layers environment variables on
// top. A missing config file is not an error; defaults still apply.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	var cfg Config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 2. Override with environment variables if present
	if model := os.Getenv("AGENTSMD_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if apiKey := os.Getenv("AGENTSMD_API_KEY"); apiKey != "" {
		cfg.AI.APIKey = apiKey
	}
	if baseDir := os.Getenv("AGENTSMD_BASE_DIR"); baseDir != "" {
		cfg.Output.BaseDir = baseDir
	}

	// 3. Defaults
	if cfg.Output.BaseDir == "" {
		cfg.Output.BaseDir = "projects"
	}
	if cfg.Document.Style == "" {
		cfg.Document.Style = "comprehensive"
	}
	if cfg.Git.RevertLogLimit <= 0 {
		cfg.Git.RevertLogLimit = 20
	}

	return &cfg, nil
}
