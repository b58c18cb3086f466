package config

// Config представляет конфигурацию интервью
type Config struct {
	Interview InterviewConfig `yaml:"interview"`
	Topics    []string        `yaml:"topics"`
}

// InterviewConfig содержит общие настройки интервью
type InterviewConfig struct {
	MaxQuestions int `yaml:"max_questions"`
}

// GetMaxQuestions возвращает максимум пар вопрос-ответ на одно интервью
func (c *Config) GetMaxQuestions() int {
	return c.Interview.MaxQuestions
}
