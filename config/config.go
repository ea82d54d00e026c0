package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags are used to map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`  // e.g., ":8080"
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"` // comma-separated CORS origins, e.g. "http://localhost:5173"

	// AI Configuration
	AIBackend   string `mapstructure:"AI_BACKEND"`     // "agent" (OpenAI-compatible) or "gemini"
	OpenAIKey   string `mapstructure:"OPENAI_API_KEY"` // server credential for the agent backend
	AgentModel  string `mapstructure:"AGENT_MODEL"`    // e.g., "gpt-4o"
	GeminiKey   string `mapstructure:"GEMINI_API_KEY"` // optional server-wide fallback key
	GeminiModel string `mapstructure:"GEMINI_MODEL"`   // e.g., "gemini-1.5-flash"

	// Storage Configuration
	DBPath string `mapstructure:"DB_PATH"` // sqlite file path, e.g. "data/promptpilot.db"

	// Editor and Preview Tuning
	SaveQuietPeriodMS int `mapstructure:"SAVE_QUIET_PERIOD_MS"` // debounce window for coalesced file saves
	BuildStepDelayMS  int `mapstructure:"BUILD_STEP_DELAY_MS"`  // cadence of simulated build progress events
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)     // Path to look for the config file in
	viper.SetConfigName("config") // Name of config file (without extension)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv() // Read environment variables that match keys

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("AI_BACKEND", "agent")
	viper.SetDefault("DB_PATH", "data/promptpilot.db")
	viper.SetDefault("SAVE_QUIET_PERIOD_MS", 750)
	viper.SetDefault("BUILD_STEP_DELAY_MS", 400)

	err = viper.ReadInConfig()
	if err != nil {
		// If config file not found, log it but continue if env vars might be set
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file ('config.yaml') not found in specified path, relying solely on environment variables.")
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Printf("Using configuration file: %s", viper.ConfigFileUsed())
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.AIBackend == "agent" && config.OpenAIKey == "" {
		log.Println("WARN: OPENAI_API_KEY is not set; agent backend requests will fail.")
	}

	return
}
