package common

import (
	"os"
	"path/filepath"

	"github.com/bitrise-io/ai-health-assessor/logger"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
)

// LLM holds the completion service parameters shared by both pipelines.
type LLM struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	APITimeout  int     `yaml:"api_timeout"` // in seconds
	RetryMax    int     `yaml:"retry_max"`
}

// Models names the model used by each pipeline.
type Models struct {
	BMI    string `yaml:"bmi"`
	Health string `yaml:"health"`
}

type Server struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Settings struct {
	Language string `yaml:"language"`
	Tone     string `yaml:"tone_instructions"`
	LLM      LLM    `yaml:"llm"`
	Models   Models `yaml:"models"`
	Server   Server `yaml:"server"`
}

func WithDefaultSettings() Settings {
	return Settings{
		Language: "en-US",
		LLM: LLM{
			Provider:    ProviderGroq,
			Temperature: 0.1,
			MaxTokens:   1024,
			APITimeout:  60,
			RetryMax:    0,
		},
		Models: Models{
			BMI:    "llama-3.1-70b-versatile",
			Health: "llama3-8b-8192",
		},
		Server: Server{
			Address:        ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func WithYamlFile() Settings {
	settings := WithDefaultSettings()

	filePath := findSettingsFile()
	if filePath == "" {
		logger.Infof("No settings file found in the current directory or subdirectories. Using default settings.")
		return settings
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Warnf("Failed to read settings file %s: %v", filePath, err)
		return settings
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		logger.Warnf("Failed to parse YAML file %s: %v", filePath, err)
		return WithDefaultSettings()
	}

	logger.Infof("Using settings from YAML file: %s", filePath)
	return settings
}

var settingsFilenames = []string{"assessor.yml", "assessor.yaml"}

func findSettingsFile() string {
	for _, name := range settingsFilenames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	var filePath string
	filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if filePath != "" {
			return filepath.SkipAll
		}
		if info.IsDir() {
			return nil
		}
		for _, name := range settingsFilenames {
			if info.Name() == name {
				filePath = path
				return filepath.SkipAll
			}
		}
		return nil
	})

	return filePath
}
