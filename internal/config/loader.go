package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load загружает конфигурацию интервью из YAML файла
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	err = validateConfig(&config)
	if err != nil {
		return nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	return &config, nil
}

// validateConfig проверяет корректность конфигурации
func validateConfig(config *Config) error {
	if config.Interview.MaxQuestions < 1 {
		return fmt.Errorf("max_questions должно быть не меньше 1")
	}

	if len(config.Topics) == 0 {
		return fmt.Errorf("список тем не должен быть пустым")
	}

	for i, topic := range config.Topics {
		if topic == "" {
			return fmt.Errorf("тема %d не должна быть пустой", i+1)
		}
	}

	return nil
}
