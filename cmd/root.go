package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/smartjob/internal/ai/gemini"
	"github.com/spigell/smartjob/internal/ai/ollama"
)

const (
	app = "smartjob"
)

type Config struct {
	Language       string        `mapstructure:"language" validate:"oneof=fr en"`
	JobsFile       string        `mapstructure:"jobs-file" validate:"required_without=JobsDSN"`
	JobsDSN        string        `mapstructure:"jobs-dsn"`
	CandidatesFile string        `mapstructure:"candidates-file"`
	RequestTimeout time.Duration `mapstructure:"request-timeout" validate:"gt=0"`
	Concurrency    int           `mapstructure:"concurrency" validate:"gte=1"`
	AI             *AIConfig     `mapstructure:"ai" validate:"required"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider" validate:"oneof=ollama gemini"`
	MaxLogLength int           `mapstructure:"max-log-length" validate:"gte=0"`
	Ollama       *OllamaConfig `mapstructure:"ollama" validate:"required_if=Provider ollama"`
	Gemini       *GeminiConfig `mapstructure:"gemini" validate:"required_if=Provider gemini"`
}

type OllamaConfig struct {
	URL   string `mapstructure:"url" validate:"required,url"`
	Model string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New(validator.WithRequiredStructEnabled())

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "smartjob recommends jobs from a known pool to candidates with a generative model",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"ai.ollama.url":          "SMARTJOB_OLLAMA_URL",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"jobs-dsn":               "SMARTJOB_JOBS_DSN",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is smartjob.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("language", "l", "", "language of prompts and narratives (fr or en)")
	rootCmd.PersistentFlags().String("jobs-file", "", "json file with the available jobs")
	rootCmd.PersistentFlags().String("candidates-file", "", "json file with the candidate profiles")

	for _, name := range []string{"debug", "json", "language", "jobs-file", "candidates-file"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "fr")
	v.SetDefault("request-timeout", 2*time.Minute)
	v.SetDefault("concurrency", 4)
	v.SetDefault("ai.provider", "ollama")
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.ollama.url", ollama.DefaultURL)
	v.SetDefault("ai.ollama.model", ollama.DefaultModel)
	v.SetDefault("ai.gemini.model", gemini.DefaultModel)
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Flags and defaults are enough to run without a config file,
	// but an existing one must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	config.Language = strings.ToLower(strings.TrimSpace(config.Language))
	if config.AI != nil {
		config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the decoded configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			msgs := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				msgs = append(msgs, fe.Namespace()+": failed '"+fe.Tag()+"'")
			}
			return errors.New("invalid config: " + strings.Join(msgs, ", "))
		}
		return err
	}
	return nil
}
