package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zaptest"

	"github.com/spigell/smartjob/internal/ai/ollama"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()

	v := viper.New()
	setDefaults(v)

	if yaml != "" {
		path := filepath.Join(t.TempDir(), "smartjob.yaml")
		if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			t.Fatalf("read config: %v", err)
		}
	}

	return v
}

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig(newTestViper(t, "jobs-file: jobs.json\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Language != "fr" {
		t.Fatalf("expected french by default, got %q", config.Language)
	}
	if config.RequestTimeout != 2*time.Minute {
		t.Fatalf("expected 2m request timeout, got %s", config.RequestTimeout)
	}
	if config.Concurrency != 4 {
		t.Fatalf("expected concurrency 4, got %d", config.Concurrency)
	}
	if config.AI.Provider != "ollama" || config.AI.Ollama.URL != ollama.DefaultURL || config.AI.Ollama.Model != ollama.DefaultModel {
		t.Fatalf("unexpected ai defaults: %+v %+v", config.AI, config.AI.Ollama)
	}
}

func TestGetConfigFromFile(t *testing.T) {
	yaml := `language: EN
jobs-dsn: postgres://smartjob@localhost/smartjob
candidates-file: candidates.json
request-timeout: 30s
concurrency: 8
ai:
  provider: gemini
  max-log-length: 500
  gemini:
    api-key-file: /run/secrets/gemini
    model: gemini-2.5-pro
`

	config, err := getConfig(newTestViper(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.Language != "en" {
		t.Fatalf("expected normalized language, got %q", config.Language)
	}
	if config.RequestTimeout != 30*time.Second || config.Concurrency != 8 {
		t.Fatalf("unexpected limits: %s %d", config.RequestTimeout, config.Concurrency)
	}
	if config.AI.Provider != "gemini" || config.AI.Gemini.APIKeyFile != "/run/secrets/gemini" || config.AI.Gemini.Model != "gemini-2.5-pro" {
		t.Fatalf("unexpected gemini config: %+v", config.AI.Gemini)
	}
}

func TestGetConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		expect string
	}{
		{name: "no job source", yaml: "language: fr\n", expect: "JobsFile"},
		{name: "unsupported language", yaml: "jobs-file: jobs.json\nlanguage: de\n", expect: "Language"},
		{name: "unsupported provider", yaml: "jobs-file: jobs.json\nai:\n  provider: openai\n", expect: "Provider"},
		{name: "invalid ollama url", yaml: "jobs-file: jobs.json\nai:\n  ollama:\n    url: not a url\n", expect: "URL"},
		{name: "zero concurrency", yaml: "jobs-file: jobs.json\nconcurrency: 0\n", expect: "Concurrency"},
		{name: "zero timeout", yaml: "jobs-file: jobs.json\nrequest-timeout: 0s\n", expect: "RequestTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := getConfig(newTestViper(t, tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.expect) {
				t.Fatalf("expected error to mention %q, got %v", tt.expect, err)
			}
		})
	}
}

func TestNewGenerator(t *testing.T) {
	logger := zaptest.NewLogger(t)

	generator, err := newGenerator(context.Background(), &AIConfig{
		Provider: "ollama",
		Ollama:   &OllamaConfig{URL: "http://ollama:11434", Model: "llama3"},
	}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if generator.Provider() != "ollama" || generator.Model() != "llama3" {
		t.Fatalf("unexpected generator: %s/%s", generator.Provider(), generator.Model())
	}

	if _, err := newGenerator(context.Background(), &AIConfig{Provider: "openai"}, logger); err == nil {
		t.Fatal("expected error for unsupported provider")
	}

	t.Setenv("GEMINI_API_KEY", "")
	if _, err := newGenerator(context.Background(), &AIConfig{Provider: "gemini", Gemini: &GeminiConfig{}}, logger); err == nil {
		t.Fatal("expected error without gemini api key")
	}
}

func TestLoadPoolFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	data := `[{"id": 1, "title": "Data Scientist", "company": {"display_name": "Globex"}, "location": "Paris"}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write jobs: %v", err)
	}

	pool, err := loadPool(context.Background(), &Config{JobsFile: path}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pool.Len() != 1 || pool[0].Company != "Globex" {
		t.Fatalf("unexpected pool: %+v", pool)
	}
}

func TestNewRecommender(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ai := &AIConfig{Provider: "ollama", Ollama: &OllamaConfig{URL: "http://ollama:11434"}}

	if _, err := newRecommender(context.Background(), &Config{Language: "en", AI: ai}, logger); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := newRecommender(context.Background(), &Config{Language: "de", AI: ai}, logger); err == nil {
		t.Fatal("expected error for unsupported language")
	}

	if _, err := newRecommender(context.Background(), &Config{Language: "fr", AI: &AIConfig{Provider: "openai"}}, logger); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
