package interview

import (
	"fmt"

	"go.uber.org/zap"
)

// handleCommand обрабатывает команды бота
func (o *Orchestrator) handleCommand(chatID int64, key, command string) {
	switch command {
	case "/start":
		o.handleStartCommand(chatID, key)
	case "/next":
		o.handleNextCommand(chatID, key)
	case "/status":
		o.handleStatusCommand(chatID, key)
	case "/stop":
		o.handleStopCommand(chatID, key)
	case "/help":
		o.handleHelpCommand(chatID)
	default:
		o.bot.SendMessage(chatID, "Неизвестная команда. Используйте /help для получения списка команд.")
	}
}

// handleStartCommand начинает новое интервью и задает первый вопрос
func (o *Orchestrator) handleStartCommand(chatID int64, key string) {
	if _, err := o.controller.Lookup(key); err == nil {
		o.bot.SendMessage(chatID, "У вас уже идет интервью. Используйте /status для проверки прогресса или /stop, чтобы остановить его.")
		return
	}

	welcomeText := fmt.Sprintf(`🎯 *Добро пожаловать на тренировочное собеседование!*

❓ *Вопросов в интервью:* %d
🎤 Отвечать можно текстом или голосовыми сообщениями.

*Правила:*
• Отвечайте так, как ответили бы на настоящем собеседовании
• Один вопрос — один ответ
• Используйте /status для проверки прогресса
• Используйте /stop, чтобы остановить интервью

После последнего ответа вы получите подробную обратную связь. Начинаем! 🚀`,
		o.maxQuestions)

	o.bot.SendMessage(chatID, welcomeText)

	o.metrics.IncrementInterviewsStarted()
	o.log.Info("интервью начато", zap.String("candidate", key))

	o.askNextQuestion(chatID, key)
}

// handleNextCommand повторяет открытый вопрос или запрашивает следующий,
// если предыдущая генерация вопроса не удалась
func (o *Orchestrator) handleNextCommand(chatID int64, key string) {
	sess, err := o.controller.Lookup(key)
	if err != nil {
		o.bot.SendMessage(chatID, "Интервью не запущено. Используйте /start, чтобы начать.")
		return
	}

	if sess.OpenQuestion() {
		o.bot.SendMessage(chatID, sess.Transcript[len(sess.Transcript)-1].Question)
		return
	}

	if len(sess.Transcript) >= o.maxQuestions {
		o.provideFeedback(chatID, key)
		return
	}

	o.askNextQuestion(chatID, key)
}

// handleStatusCommand показывает прогресс интервью
func (o *Orchestrator) handleStatusCommand(chatID int64, key string) {
	sess, err := o.controller.Lookup(key)
	if err != nil {
		o.bot.SendMessage(chatID, "Интервью не начато. Используйте /start для начала.")
		return
	}

	answered := len(sess.Transcript)
	state := "Подготовка вопроса"
	if sess.OpenQuestion() {
		answered--
		state = "Ожидание ответа"
	}

	progress := fmt.Sprintf("📊 *Прогресс интервью*\n\n"+
		"🆔 ID: `%s`\n"+
		"❓ Задано вопросов: %d/%d\n"+
		"✅ Получено ответов: %d\n"+
		"⏰ Состояние: %s",
		sess.InterviewID,
		len(sess.Transcript), o.maxQuestions,
		answered,
		state)
	o.bot.SendMessage(chatID, progress)
}

// handleStopCommand останавливает интервью без обратной связи
func (o *Orchestrator) handleStopCommand(chatID int64, key string) {
	if !o.controller.Abandon(key) {
		o.bot.SendMessage(chatID, "Интервью не запущено.")
		return
	}

	o.metrics.IncrementInterviewsStopped()
	o.forgetActivity(key)
	o.log.Info("интервью остановлено", zap.String("candidate", key))

	o.bot.SendMessage(chatID, "🛑 Интервью остановлено. Используйте /start, чтобы начать заново.")
}

// handleHelpCommand показывает справку
func (o *Orchestrator) handleHelpCommand(chatID int64) {
	helpText := `🤖 *Бот тренировочных собеседований*

*Команды:*
/start - Начать новое интервью
/next - Повторить текущий вопрос
/status - Проверить прогресс интервью
/stop - Остановить интервью
/help - Показать это сообщение

*Как это работает:*
1. Используйте /start для начала интервью
2. Бот задает по одному вопросу за раз
3. Отвечайте текстом или голосовым сообщением
4. Всего вопросов: %d
5. После последнего ответа бот присылает подробную обратную связь

*Совет:* Отвечайте развернуто — обратная связь строится по вашим ответам!`

	o.bot.SendFormattedMessage(chatID, helpText, o.maxQuestions)
}
