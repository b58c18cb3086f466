package interview

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mock-interview-bot/internal/config"
	"mock-interview-bot/internal/metrics"
	"mock-interview-bot/internal/prompts"
	"mock-interview-bot/internal/session"
	"mock-interview-bot/internal/storage"
	"mock-interview-bot/internal/telegram"
)

const (
	sessionTTL      = 24 * time.Hour
	cleanupInterval = 1 * time.Hour
)

// Orchestrator связывает события Telegram с контроллером сессий и внешними
// сервисами: записывает ответ, проверяет счетчик вопросов и либо задает
// следующий вопрос, либо завершает интервью обратной связью.
//
// Весь логический ход одного кандидата (запись ответа, проверка счетчика,
// следующий вопрос или завершение, включая вызовы внешних сервисов)
// выполняется под мьютексом кандидата: два события одного кандидата не могут
// увидеть один и тот же счетчик и задать вопрос или завершить интервью дважды.
// Разные кандидаты обрабатываются параллельно.
type Orchestrator struct {
	bot        Transport
	ai         AI
	topics     TopicSource
	archive    Archiver
	controller *session.Controller
	locks      *session.KeyedMutex
	limiter    *RateLimiter
	metrics    *metrics.Metrics
	log        *zap.Logger

	maxQuestions int

	activityMu sync.Mutex
	activity   map[string]time.Time
}

// New создает оркестратор интервью и запускает чистку неактивных сессий
func New(bot Transport, ai AI, topicSource TopicSource, archive Archiver, controller *session.Controller, cfg *config.Config, log *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		bot:          bot,
		ai:           ai,
		topics:       topicSource,
		archive:      archive,
		controller:   controller,
		locks:        session.NewKeyedMutex(),
		limiter:      NewRateLimiter(10, time.Minute),
		metrics:      metrics.NewMetrics(),
		log:          log,
		maxQuestions: cfg.GetMaxQuestions(),
		activity:     make(map[string]time.Time),
	}
	o.startSessionCleanup()
	return o
}

// HandleUpdate обрабатывает одно входящее событие Telegram
func (o *Orchestrator) HandleUpdate(update telegram.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID
	key := candidateKey(update.Message.From)
	text := strings.TrimSpace(update.Message.Text)

	if !o.limiter.IsAllowed(key) {
		o.bot.SendMessage(chatID, "⏳ Слишком много сообщений. Пожалуйста, подождите минуту.")
		return
	}

	o.touch(key)

	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	switch {
	case update.Message.Voice != nil:
		o.handleVoiceAnswer(chatID, key, update.Message.Voice.FileID)
	case strings.HasPrefix(text, "/"):
		o.handleCommand(chatID, key, text)
	default:
		o.handleTextAnswer(chatID, key, text)
	}
}

// handleVoiceAnswer скачивает и расшифровывает голосовой ответ.
// Состояние сессии меняется только после успешной расшифровки: если ответ
// не удалось получить, кандидат просто отправляет его еще раз.
func (o *Orchestrator) handleVoiceAnswer(chatID int64, key, fileID string) {
	audio, err := o.bot.DownloadVoice(fileID)
	if err != nil {
		o.log.Warn("не удалось скачать голосовое сообщение",
			zap.String("candidate", key), zap.Error(err))
		o.bot.SendMessage(chatID, "❌ Не удалось получить голосовое сообщение. Пожалуйста, отправьте ответ еще раз.")
		return
	}

	answer, err := o.ai.Transcribe(audio)
	o.metrics.IncrementAPICall(err == nil)
	if err != nil {
		o.log.Warn("не удалось распознать голосовое сообщение",
			zap.String("candidate", key), zap.Error(err))
		o.bot.SendMessage(chatID, "❌ Не получилось распознать голосовое сообщение. Пожалуйста, отправьте ответ еще раз.")
		return
	}
	o.metrics.IncrementAnswersTranscribed()

	o.handleTextAnswer(chatID, key, strings.TrimSpace(answer))
}

// handleTextAnswer записывает ответ кандидата и решает, что дальше:
// следующий вопрос или завершение интервью
func (o *Orchestrator) handleTextAnswer(chatID int64, key, answer string) {
	if err := validateAnswer(answer); err != nil {
		o.bot.SendMessage(chatID, "❌ "+err.Error())
		return
	}

	if err := o.controller.RecordAnswer(key, answer); err != nil {
		switch {
		case errors.Is(err, session.ErrNoSession):
			o.bot.SendMessage(chatID, "Интервью не запущено. Используйте /start, чтобы начать.")
		case errors.Is(err, session.ErrNoOpenQuestion):
			o.bot.SendMessage(chatID, "Сейчас нет вопроса, ожидающего ответа. Используйте /next, чтобы получить вопрос.")
		default:
			o.log.Error("не удалось записать ответ",
				zap.String("candidate", key), zap.Error(err))
			o.bot.SendMessage(chatID, "😔 Что-то пошло не так. Попробуйте еще раз.")
		}
		return
	}
	o.metrics.IncrementAnswersRecorded()

	count, err := o.controller.QuestionCount(key)
	if err != nil {
		// недостижимо под мьютексом кандидата: ответ только что записан
		o.log.Error("сессия пропала после записи ответа",
			zap.String("candidate", key), zap.Error(err))
		return
	}

	if count >= o.maxQuestions {
		o.provideFeedback(chatID, key)
	} else {
		o.askNextQuestion(chatID, key)
	}
}

// askNextQuestion выбирает тему, генерирует вопрос, фиксирует его в сессии
// и отправляет кандидату. Вопрос попадает в транскрипт только после того,
// как внешний сервис успешно его сгенерировал.
func (o *Orchestrator) askNextQuestion(chatID int64, key string) {
	topic := o.topics.RandomTopic()

	question, err := o.ai.Complete(prompts.QuestionPrompt(topic))
	o.metrics.IncrementAPICall(err == nil)
	if err != nil {
		o.log.Warn("не удалось сгенерировать вопрос",
			zap.String("candidate", key), zap.String("topic", topic), zap.Error(err))
		o.bot.SendMessage(chatID, "😔 Не получилось подготовить вопрос. Используйте /next, чтобы попробовать еще раз.")
		return
	}
	question = strings.TrimSpace(question)

	if err := o.controller.StartQuestion(key, question); err != nil {
		o.log.Error("не удалось зафиксировать вопрос в сессии",
			zap.String("candidate", key), zap.Error(err))
		o.bot.SendMessage(chatID, "😔 Что-то пошло не так. Попробуйте еще раз.")
		return
	}
	o.metrics.IncrementQuestionsAsked()

	if err := o.bot.SendMessage(chatID, question); err != nil {
		o.log.Warn("не удалось отправить вопрос",
			zap.String("candidate", key), zap.Error(err))
	}
}

// provideFeedback завершает интервью: атомарно изымает транскрипт,
// генерирует обратную связь и архивирует результат. Повторное завершение
// невозможно — сессии после Finalize уже нет.
func (o *Orchestrator) provideFeedback(chatID int64, key string) {
	sess, err := o.controller.Finalize(key)
	if err != nil {
		o.log.Error("не удалось завершить интервью",
			zap.String("candidate", key), zap.Error(err))
		o.bot.SendMessage(chatID, "😔 Что-то пошло не так при завершении интервью.")
		return
	}

	o.log.Info("интервью завершено",
		zap.String("candidate", key),
		zap.String("interview_id", sess.InterviewID),
		zap.Int("questions", len(sess.Transcript)))

	result := &storage.InterviewResult{
		InterviewID:         sess.InterviewID,
		CandidateKey:        sess.CandidateKey,
		Timestamp:           time.Now().Format(time.RFC3339),
		QuestionsAndAnswers: sess.Transcript,
	}

	feedback, err := o.ai.Complete(prompts.FeedbackPrompt(sess.Transcript))
	o.metrics.IncrementAPICall(err == nil)
	if err != nil {
		// транскрипт уже изъят из хранилища — сохраняем его хотя бы без
		// обратной связи, чтобы ответы кандидата не потерялись
		o.log.Error("не удалось сгенерировать обратную связь",
			zap.String("interview_id", sess.InterviewID), zap.Error(err))
		if archiveErr := o.archive.SaveResult(result); archiveErr != nil {
			o.log.Error("не удалось сохранить результат интервью",
				zap.String("interview_id", sess.InterviewID), zap.Error(archiveErr))
		}
		o.bot.SendMessage(chatID, "😔 Интервью завершено, но не получилось подготовить обратную связь. Попробуйте пройти интервью еще раз позже.")
		return
	}

	if err := o.bot.SendMessage(chatID, feedback); err != nil {
		o.log.Warn("не удалось отправить обратную связь",
			zap.String("interview_id", sess.InterviewID), zap.Error(err))
	}

	result.Feedback = feedback
	if err := o.archive.SaveResult(result); err != nil {
		o.log.Error("не удалось сохранить результат интервью",
			zap.String("interview_id", sess.InterviewID), zap.Error(err))
	}

	o.metrics.IncrementInterviewsCompleted()
	o.forgetActivity(key)

	o.bot.SendFormattedMessage(chatID, "🎉 Интервью завершено! 🆔 ID: `%s`\n\nИспользуйте /start, чтобы пройти интервью еще раз.", sess.InterviewID)
}

// validateAnswer проверяет пользовательский ввод
func validateAnswer(text string) error {
	if text == "" {
		return fmt.Errorf("не удалось разобрать ответ, попробуйте еще раз")
	}

	if len(text) > 4000 {
		return fmt.Errorf("сообщение слишком длинное (максимум 4000 символов)")
	}

	// Проверка на спам из повторяющихся символов
	if len(text) > 10 && strings.Count(text, text[:1]) > len(text)*8/10 {
		return fmt.Errorf("сообщение содержит слишком много повторяющихся символов")
	}

	return nil
}

// candidateKey возвращает ключ кандидата: username, а если его нет — ID
func candidateKey(user *telegram.User) string {
	if user.Username != "" {
		return user.Username
	}
	return strconv.FormatInt(user.ID, 10)
}

func (o *Orchestrator) touch(key string) {
	o.activityMu.Lock()
	defer o.activityMu.Unlock()
	o.activity[key] = time.Now()
}

func (o *Orchestrator) forgetActivity(key string) {
	o.activityMu.Lock()
	defer o.activityMu.Unlock()
	delete(o.activity, key)
}

func (o *Orchestrator) startSessionCleanup() {
	ticker := time.NewTicker(cleanupInterval)
	go func() {
		for range ticker.C {
			o.cleanupInactiveSessions()
			o.logMetrics()
		}
	}()
}

// logMetrics периодически пишет счетчики в лог
func (o *Orchestrator) logMetrics() {
	snapshot := o.metrics.GetSnapshot()
	o.log.Info("счетчики бота",
		zap.Int64("interviews_started", snapshot.InterviewsStarted),
		zap.Int64("interviews_completed", snapshot.InterviewsCompleted),
		zap.Int64("interviews_stopped", snapshot.InterviewsStopped),
		zap.Int64("questions_asked", snapshot.QuestionsAsked),
		zap.Int64("answers_recorded", snapshot.AnswersRecorded),
		zap.Int64("answers_transcribed", snapshot.AnswersTranscribed),
		zap.Int64("api_calls_total", snapshot.APICallsTotal),
		zap.Int64("api_calls_successful", snapshot.APICallsSuccessful))
}

// cleanupInactiveSessions удаляет сессии кандидатов, молчащих дольше суток
func (o *Orchestrator) cleanupInactiveSessions() {
	cutoff := time.Now().Add(-sessionTTL)

	o.activityMu.Lock()
	var idle []string
	for key, last := range o.activity {
		if last.Before(cutoff) {
			idle = append(idle, key)
		}
	}
	o.activityMu.Unlock()

	for _, key := range idle {
		o.locks.Lock(key)
		o.activityMu.Lock()
		if last, ok := o.activity[key]; ok && last.Before(cutoff) {
			delete(o.activity, key)
			if o.controller.Abandon(key) {
				o.log.Info("неактивная сессия удалена", zap.String("candidate", key))
			}
		}
		o.activityMu.Unlock()
		o.locks.Unlock(key)
	}
}
