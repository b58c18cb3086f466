package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"mock-interview-bot/internal/config"
)

const (
	completionsURL    = "https://api.openai.com/v1/chat/completions"
	transcriptionsURL = "https://api.openai.com/v1/audio/transcriptions"
)

// Ошибки внешних сервисов. Оркестратор различает их через errors.Is,
// чтобы показать кандидату подходящее сообщение вместо падения.
var (
	// ErrPrompting — сбой генерации текста.
	ErrPrompting = errors.New("сервис генерации текста недоступен")

	// ErrTranscription — сбой распознавания речи.
	ErrTranscription = errors.New("сервис распознавания речи недоступен")
)

// Client представляет клиент OpenAI API
type Client struct {
	apiKey       string
	model        string
	whisperModel string
	maxTokens    int
	temperature  float64
	client       *http.Client
}

// OpenAI API структуры
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Message Message `json:"message"`
}

type transcriptionResponse struct {
	Text  string    `json:"text"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewClient создает новый клиент OpenAI
func NewClient(cfg config.OpenAIConfig) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		whisperModel: cfg.WhisperModel,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Complete отправляет промпт модели и возвращает текст ответа
func (c *Client) Complete(prompt string) (string, error) {
	request := completionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("%w: ошибка сериализации запроса: %v", ErrPrompting, err)
	}

	req, err := http.NewRequest("POST", completionsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: ошибка создания запроса: %v", ErrPrompting, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPrompting, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: ошибка чтения ответа: %v", ErrPrompting, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP ошибка %d: %s", ErrPrompting, resp.StatusCode, string(body))
	}

	var response completionResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return "", fmt.Errorf("%w: ошибка парсинга ответа: %v", ErrPrompting, err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrPrompting, response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("%w: пустой ответ от OpenAI", ErrPrompting)
	}

	return response.Choices[0].Message.Content, nil
}

// Transcribe отправляет аудио голосового сообщения в Whisper и возвращает
// распознанный текст. Telegram отдает голосовые в формате OGG/Opus, поэтому
// файл загружается под именем answer.ogg.
func (c *Client) Transcribe(audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "answer.ogg")
	if err != nil {
		return "", fmt.Errorf("%w: ошибка формирования запроса: %v", ErrTranscription, err)
	}
	if _, err = part.Write(audio); err != nil {
		return "", fmt.Errorf("%w: ошибка записи аудио: %v", ErrTranscription, err)
	}

	if err = writer.WriteField("model", c.whisperModel); err != nil {
		return "", fmt.Errorf("%w: ошибка формирования запроса: %v", ErrTranscription, err)
	}

	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("%w: ошибка формирования запроса: %v", ErrTranscription, err)
	}

	req, err := http.NewRequest("POST", transcriptionsURL, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: ошибка создания запроса: %v", ErrTranscription, err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: ошибка чтения ответа: %v", ErrTranscription, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP ошибка %d: %s", ErrTranscription, resp.StatusCode, string(body))
	}

	var response transcriptionResponse
	err = json.Unmarshal(body, &response)
	if err != nil {
		return "", fmt.Errorf("%w: ошибка парсинга ответа: %v", ErrTranscription, err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrTranscription, response.Error.Message)
	}

	return response.Text, nil
}
