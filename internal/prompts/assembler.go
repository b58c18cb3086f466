package prompts

import (
	"fmt"
	"strings"

	"mock-interview-bot/internal/session"
)

// QuestionPrompt подставляет тему в шаблон генерации вопроса.
func QuestionPrompt(topic string) string {
	return fmt.Sprintf(questionTemplate, topic)
}

// FeedbackPrompt собирает промпт обратной связи: шаблон, а за ним все пары
// вопрос-ответ строго в порядке транскрипта. Порядок важен: шаблон опирается
// на то, что ответ следует сразу за своим вопросом.
func FeedbackPrompt(transcript []session.QAPair) string {
	var b strings.Builder
	b.WriteString(feedbackTemplate)

	for _, qa := range transcript {
		b.WriteString("Исходный вопрос: ")
		b.WriteString(qa.Question)
		b.WriteString("\n")
		b.WriteString("Ответ кандидата: ")
		b.WriteString(qa.Answer)
		b.WriteString("\n")
	}

	return b.String()
}
