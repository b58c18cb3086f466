package topics

import "math/rand"

// Repository хранит темы вопросов интервью
type Repository struct {
	topics []string
}

// NewRepository создает репозиторий тем из списка конфигурации
func NewRepository(topics []string) *Repository {
	return &Repository{topics: topics}
}

// RandomTopic возвращает случайную тему для следующего вопроса
func (r *Repository) RandomTopic() string {
	return r.topics[rand.Intn(len(r.topics))]
}
