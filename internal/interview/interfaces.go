package interview

import "mock-interview-bot/internal/storage"

// Узкие интерфейсы внешних сервисов. Оркестратор зависит только от них,
// поэтому в тестах сервисы подменяются заглушками.

// Transport отправляет сообщения кандидату и скачивает голосовые файлы
type Transport interface {
	SendMessage(chatID int64, text string) error
	SendFormattedMessage(chatID int64, format string, args ...interface{}) error
	DownloadVoice(fileID string) ([]byte, error)
}

// AI генерирует текст по промпту и расшифровывает голосовые ответы
type AI interface {
	Complete(prompt string) (string, error)
	Transcribe(audio []byte) (string, error)
}

// TopicSource выбирает тему для следующего вопроса
type TopicSource interface {
	RandomTopic() string
}

// Archiver сохраняет результат завершенного интервью
type Archiver interface {
	SaveResult(result *storage.InterviewResult) error
}
