package interview_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mock-interview-bot/internal/config"
	"mock-interview-bot/internal/interview"
	"mock-interview-bot/internal/session"
	"mock-interview-bot/internal/storage"
	"mock-interview-bot/internal/telegram"
)

type stubTransport struct {
	messages []string
	voice    []byte
	voiceErr error
}

func (s *stubTransport) SendMessage(_ int64, text string) error {
	s.messages = append(s.messages, text)
	return nil
}

func (s *stubTransport) SendFormattedMessage(chatID int64, format string, args ...interface{}) error {
	return s.SendMessage(chatID, fmt.Sprintf(format, args...))
}

func (s *stubTransport) DownloadVoice(_ string) ([]byte, error) {
	if s.voiceErr != nil {
		return nil, s.voiceErr
	}
	return s.voice, nil
}

func (s *stubTransport) last(t *testing.T) string {
	t.Helper()
	if len(s.messages) == 0 {
		t.Fatalf("не отправлено ни одного сообщения")
	}
	return s.messages[len(s.messages)-1]
}

type stubAI struct {
	responses     []string
	calls         int
	completeErr   error
	prompts       []string
	transcript    string
	transcribeErr error
}

func (s *stubAI) Complete(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.completeErr != nil {
		return "", s.completeErr
	}
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx], nil
}

func (s *stubAI) Transcribe(_ []byte) (string, error) {
	if s.transcribeErr != nil {
		return "", s.transcribeErr
	}
	return s.transcript, nil
}

type stubTopics struct{ topic string }

func (s *stubTopics) RandomTopic() string { return s.topic }

type stubArchive struct {
	saved []*storage.InterviewResult
	err   error
}

func (s *stubArchive) SaveResult(result *storage.InterviewResult) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, result)
	return nil
}

func newTestOrchestrator(maxQuestions int, bot *stubTransport, ai *stubAI, archive *stubArchive) (*interview.Orchestrator, *session.Controller) {
	controller := session.NewController(session.NewStore())
	cfg := &config.Config{
		Interview: config.InterviewConfig{MaxQuestions: maxQuestions},
		Topics:    []string{"Коллекции"},
	}
	o := interview.New(bot, ai, &stubTopics{topic: "Коллекции"}, archive, controller, cfg, zap.NewNop())
	return o, controller
}

func textUpdate(text string) telegram.Update {
	return telegram.Update{
		Message: &telegram.Message{
			From: &telegram.User{ID: 1, Username: "alice"},
			Chat: &telegram.Chat{ID: 10},
			Text: text,
		},
	}
}

func voiceUpdate() telegram.Update {
	return telegram.Update{
		Message: &telegram.Message{
			From:  &telegram.User{ID: 1, Username: "alice"},
			Chat:  &telegram.Chat{ID: 10},
			Voice: &telegram.Voice{FileID: "voice-1", Duration: 3},
		},
	}
}

func TestFullInterviewFlow(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1", "Вопрос 2", "Отличная работа!"}}
	archive := &stubArchive{}
	o, controller := newTestOrchestrator(2, bot, ai, archive)

	o.HandleUpdate(textUpdate("/start"))
	if !strings.Contains(bot.messages[0], "Добро пожаловать") {
		t.Fatalf("ожидалось приветствие, получено %q", bot.messages[0])
	}
	if bot.last(t) != "Вопрос 1" {
		t.Fatalf("ожидался первый вопрос, получено %q", bot.last(t))
	}

	o.HandleUpdate(textUpdate("Ответ 1"))
	if bot.last(t) != "Вопрос 2" {
		t.Fatalf("ожидался второй вопрос, получено %q", bot.last(t))
	}

	o.HandleUpdate(textUpdate("Ответ 2"))
	// Последний ход: обратная связь + завершающее сообщение
	if len(bot.messages) < 2 || bot.messages[len(bot.messages)-2] != "Отличная работа!" {
		t.Fatalf("ожидалась обратная связь, получено %v", bot.messages)
	}
	if !strings.Contains(bot.last(t), "Интервью завершено") {
		t.Fatalf("ожидалось завершающее сообщение, получено %q", bot.last(t))
	}

	// Результат заархивирован с парами в порядке вопросов
	if len(archive.saved) != 1 {
		t.Fatalf("ожидался один архивный результат, получено %d", len(archive.saved))
	}
	result := archive.saved[0]
	if len(result.QuestionsAndAnswers) != 2 {
		t.Fatalf("ожидалось 2 пары, получено %d", len(result.QuestionsAndAnswers))
	}
	if result.QuestionsAndAnswers[0].Question != "Вопрос 1" || result.QuestionsAndAnswers[0].Answer != "Ответ 1" {
		t.Fatalf("неожиданная первая пара: %+v", result.QuestionsAndAnswers[0])
	}
	if result.QuestionsAndAnswers[1].Question != "Вопрос 2" || result.QuestionsAndAnswers[1].Answer != "Ответ 2" {
		t.Fatalf("неожиданная вторая пара: %+v", result.QuestionsAndAnswers[1])
	}
	if result.Feedback != "Отличная работа!" {
		t.Fatalf("неожиданная обратная связь: %q", result.Feedback)
	}

	// Промпт обратной связи сохраняет порядок ответов
	feedbackPrompt := ai.prompts[len(ai.prompts)-1]
	if strings.Index(feedbackPrompt, "Ответ 1") > strings.Index(feedbackPrompt, "Ответ 2") {
		t.Fatalf("нарушен порядок ответов в промпте обратной связи")
	}

	// Сессии больше нет: поздний ответ получает протокольное сообщение
	o.HandleUpdate(textUpdate("еще ответ"))
	if !strings.Contains(bot.last(t), "Интервью не запущено") {
		t.Fatalf("ожидалось сообщение об отсутствии интервью, получено %q", bot.last(t))
	}

	if _, err := controller.Lookup("alice"); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("сессия должна быть удалена: %v", err)
	}
}

func TestAnswerBeforeStart(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1"}}
	archive := &stubArchive{}
	o, controller := newTestOrchestrator(2, bot, ai, archive)

	o.HandleUpdate(textUpdate("привет"))

	if !strings.Contains(bot.last(t), "Интервью не запущено") {
		t.Fatalf("ожидалось сообщение об отсутствии интервью, получено %q", bot.last(t))
	}
	if _, err := controller.Lookup("alice"); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("сессия не должна была появиться: %v", err)
	}
	if len(archive.saved) != 0 {
		t.Fatalf("архив должен быть пустым")
	}
}

func TestVoiceAnswerFlow(t *testing.T) {
	bot := &stubTransport{voice: []byte("ogg-данные")}
	ai := &stubAI{
		responses:  []string{"Вопрос 1", "Обратная связь"},
		transcript: "Голосовой ответ",
	}
	archive := &stubArchive{}
	o, _ := newTestOrchestrator(1, bot, ai, archive)

	o.HandleUpdate(textUpdate("/start"))
	o.HandleUpdate(voiceUpdate())

	if len(archive.saved) != 1 {
		t.Fatalf("ожидался архивный результат, получено %d", len(archive.saved))
	}
	qa := archive.saved[0].QuestionsAndAnswers
	if len(qa) != 1 || qa[0].Answer != "Голосовой ответ" {
		t.Fatalf("расшифрованный ответ не попал в транскрипт: %+v", qa)
	}
}

func TestTranscriptionFailureLeavesStateUntouched(t *testing.T) {
	bot := &stubTransport{voice: []byte("ogg-данные")}
	ai := &stubAI{
		responses:     []string{"Вопрос 1", "Обратная связь"},
		transcribeErr: errors.New("сервис недоступен"),
	}
	archive := &stubArchive{}
	o, controller := newTestOrchestrator(1, bot, ai, archive)

	o.HandleUpdate(textUpdate("/start"))
	o.HandleUpdate(voiceUpdate())

	if !strings.Contains(bot.last(t), "распознать") {
		t.Fatalf("ожидалась просьба повторить ответ, получено %q", bot.last(t))
	}

	// Вопрос все еще открыт: текстовый ответ завершает интервью
	sess, err := controller.Lookup("alice")
	if err != nil {
		t.Fatalf("сессия должна уцелеть: %v", err)
	}
	if !sess.OpenQuestion() {
		t.Fatalf("вопрос должен остаться открытым")
	}

	o.HandleUpdate(textUpdate("Ответ текстом"))
	if len(archive.saved) != 1 {
		t.Fatalf("интервью должно было завершиться")
	}
	if archive.saved[0].QuestionsAndAnswers[0].Answer != "Ответ текстом" {
		t.Fatalf("неожиданный ответ: %+v", archive.saved[0].QuestionsAndAnswers[0])
	}
}

func TestAnswerAfterFailedQuestionGeneration(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1", "Вопрос 2", "Обратная связь"}}
	archive := &stubArchive{}
	o, _ := newTestOrchestrator(2, bot, ai, archive)

	o.HandleUpdate(textUpdate("/start"))

	// Генерация второго вопроса падает: ответ записан, вопроса нет
	ai.completeErr = errors.New("api недоступен")
	o.HandleUpdate(textUpdate("Ответ 1"))
	if !strings.Contains(bot.last(t), "Не получилось подготовить вопрос") {
		t.Fatalf("ожидалось извинение, получено %q", bot.last(t))
	}

	// Лишний ответ без открытого вопроса — протокольная ошибка
	o.HandleUpdate(textUpdate("Ответ без вопроса"))
	if !strings.Contains(bot.last(t), "нет вопроса") {
		t.Fatalf("ожидалось сообщение об отсутствии вопроса, получено %q", bot.last(t))
	}

	// /next чинит ход: следующий вопрос задается
	ai.completeErr = nil
	o.HandleUpdate(textUpdate("/next"))
	if bot.last(t) != "Вопрос 2" {
		t.Fatalf("ожидался второй вопрос, получено %q", bot.last(t))
	}

	o.HandleUpdate(textUpdate("Ответ 2"))
	if len(archive.saved) != 1 {
		t.Fatalf("интервью должно было завершиться")
	}
}

func TestNextRepeatsOpenQuestion(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1"}}
	o, _ := newTestOrchestrator(2, bot, ai, &stubArchive{})

	o.HandleUpdate(textUpdate("/start"))
	o.HandleUpdate(textUpdate("/next"))

	if bot.last(t) != "Вопрос 1" {
		t.Fatalf("ожидался повтор открытого вопроса, получено %q", bot.last(t))
	}
}

func TestStopCommand(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1"}}
	archive := &stubArchive{}
	o, controller := newTestOrchestrator(2, bot, ai, archive)

	o.HandleUpdate(textUpdate("/start"))
	o.HandleUpdate(textUpdate("/stop"))

	if !strings.Contains(bot.last(t), "остановлено") {
		t.Fatalf("ожидалось подтверждение остановки, получено %q", bot.last(t))
	}
	if _, err := controller.Lookup("alice"); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("сессия должна быть удалена: %v", err)
	}
	if len(archive.saved) != 0 {
		t.Fatalf("остановка не должна генерировать обратную связь")
	}

	o.HandleUpdate(textUpdate("/stop"))
	if !strings.Contains(bot.last(t), "не запущено") {
		t.Fatalf("повторный /stop должен сообщить об отсутствии интервью, получено %q", bot.last(t))
	}
}

func TestStatusCommand(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1"}}
	o, _ := newTestOrchestrator(3, bot, ai, &stubArchive{})

	o.HandleUpdate(textUpdate("/status"))
	if !strings.Contains(bot.last(t), "не начато") {
		t.Fatalf("ожидалось сообщение о неначатом интервью, получено %q", bot.last(t))
	}

	o.HandleUpdate(textUpdate("/start"))
	o.HandleUpdate(textUpdate("/status"))
	status := bot.last(t)
	if !strings.Contains(status, "1/3") {
		t.Fatalf("статус должен показывать прогресс 1/3, получено %q", status)
	}
	if !strings.Contains(status, "Ожидание ответа") {
		t.Fatalf("статус должен показывать открытый вопрос, получено %q", status)
	}
}

func TestStartWhileInterviewInProgress(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1"}}
	o, _ := newTestOrchestrator(2, bot, ai, &stubArchive{})

	o.HandleUpdate(textUpdate("/start"))
	o.HandleUpdate(textUpdate("/start"))

	if !strings.Contains(bot.last(t), "уже идет интервью") {
		t.Fatalf("повторный /start должен быть отклонен, получено %q", bot.last(t))
	}
}

func TestUnknownCommand(t *testing.T) {
	bot := &stubTransport{}
	o, _ := newTestOrchestrator(2, bot, &stubAI{responses: []string{""}}, &stubArchive{})

	o.HandleUpdate(textUpdate("/foobar"))

	if !strings.Contains(bot.last(t), "Неизвестная команда") {
		t.Fatalf("ожидалось сообщение о неизвестной команде, получено %q", bot.last(t))
	}
}

func TestFeedbackFailureStillArchivesTranscript(t *testing.T) {
	bot := &stubTransport{}
	ai := &stubAI{responses: []string{"Вопрос 1"}}
	archive := &stubArchive{}
	o, controller := newTestOrchestrator(1, bot, ai, archive)

	o.HandleUpdate(textUpdate("/start"))

	// Генерация обратной связи падает после завершения
	ai.completeErr = errors.New("api недоступен")
	o.HandleUpdate(textUpdate("Ответ 1"))

	if !strings.Contains(bot.last(t), "не получилось подготовить обратную связь") {
		t.Fatalf("ожидалось извинение, получено %q", bot.last(t))
	}

	// Транскрипт сохранен без обратной связи, сессии нет
	if len(archive.saved) != 1 {
		t.Fatalf("транскрипт должен быть заархивирован")
	}
	if archive.saved[0].Feedback != "" {
		t.Fatalf("обратной связи быть не должно: %q", archive.saved[0].Feedback)
	}
	if _, err := controller.Lookup("alice"); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("сессия должна быть удалена: %v", err)
	}
}
