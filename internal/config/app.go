package config

import (
	"fmt"
	"os"
	"strconv"
)

type AppConfig struct {
	OpenAI   OpenAIConfig
	Telegram TelegramConfig
	Log      LogConfig
}

type OpenAIConfig struct {
	APIKey       string
	Model        string
	WhisperModel string
	MaxTokens    int
	Temperature  float64
}

type TelegramConfig struct {
	Token string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

// LoadAppConfig читает конфигурацию приложения из переменных окружения
func LoadAppConfig() *AppConfig {
	return &AppConfig{
		OpenAI: OpenAIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o"),
			WhisperModel: getEnv("OPENAI_WHISPER_MODEL", "whisper-1"),
			MaxTokens:    getEnvAsInt("OPENAI_MAX_TOKENS", 2000),
			Temperature:  getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

// Validate проверяет обязательные значения конфигурации
func (c *AppConfig) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN не установлен")
	}

	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY не установлен")
	}

	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS должно быть положительным")
	}

	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE должно быть в диапазоне от 0 до 2")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
