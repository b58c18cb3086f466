package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service сохраняет результаты завершенных интервью в JSON файлы
type Service struct {
	dir string
}

// NewService создает сервис архива с директорией результатов
func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// SaveResult сохраняет результат интервью в JSON файл
func (s *Service) SaveResult(result *InterviewResult) error {
	err := os.MkdirAll(s.dir, 0755)
	if err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", s.dir, err)
	}

	filename := fmt.Sprintf("interview_%s.json", result.InterviewID)
	path := filepath.Join(s.dir, filename)

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации результата: %w", err)
	}

	err = os.WriteFile(path, jsonData, 0644)
	if err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}

	return nil
}

// LoadResult загружает результат интервью из JSON файла
func (s *Service) LoadResult(interviewID string) (*InterviewResult, error) {
	filename := fmt.Sprintf("interview_%s.json", interviewID)
	path := filepath.Join(s.dir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}

	var result InterviewResult
	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, fmt.Errorf("ошибка десериализации JSON: %w", err)
	}

	return &result, nil
}

// ListResults возвращает список всех сохраненных интервью
func (s *Service) ListResults() ([]string, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", s.dir, err)
	}

	var results []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "interview_") {
			interviewID := strings.TrimSuffix(strings.TrimPrefix(name, "interview_"), ".json")
			results = append(results, interviewID)
		}
	}

	return results, nil
}
