package session

import (
	"time"

	"github.com/google/uuid"
)

// Controller реализует машину состояний интервью поверх Store:
// задать вопрос, записать ответ, проверить счетчик, завершить.
//
// Инвариант транскрипта: в любой момент без ответа может быть максимум
// одна пара, и только последняя. StartQuestion и Finalize сами отклоняют
// вызовы, нарушающие инвариант, вместо расчета на дисциплину вызывающего.
//
// Вызовы для одного и того же кандидата должны быть сериализованы
// вызывающей стороной (оркестратор делает это через KeyedMutex).
type Controller struct {
	store *Store
}

// NewController создает контроллер поверх хранилища сессий.
func NewController(store *Store) *Controller {
	return &Controller{store: store}
}

// StartQuestion добавляет новый вопрос без ответа в транскрипт кандидата,
// создавая сессию при первом вопросе. Если последний вопрос еще без ответа,
// возвращает ErrOpenQuestion и ничего не меняет.
func (c *Controller) StartQuestion(key, question string) error {
	sess, ok := c.store.Get(key)
	if !ok {
		sess = &Session{
			InterviewID:  uuid.New().String(),
			CandidateKey: key,
			StartedAt:    time.Now(),
		}
		c.store.Put(key, sess)
	}

	if sess.OpenQuestion() {
		return ErrOpenQuestion
	}

	sess.Transcript = append(sess.Transcript, QAPair{Question: question})
	return nil
}

// RecordAnswer записывает ответ в последний открытый вопрос кандидата.
// Это единственная точка изменения пары вопрос-ответ.
func (c *Controller) RecordAnswer(key, answer string) error {
	sess, ok := c.store.Get(key)
	if !ok {
		return ErrNoSession
	}

	n := len(sess.Transcript)
	if n == 0 || sess.Transcript[n-1].Answered {
		return ErrNoOpenQuestion
	}

	sess.Transcript[n-1].Answer = answer
	sess.Transcript[n-1].Answered = true
	return nil
}

// QuestionCount возвращает число заданных вопросов. По нему вызывающий код
// решает, достигнут ли настроенный максимум интервью.
func (c *Controller) QuestionCount(key string) (int, error) {
	return c.store.QuestionCount(key)
}

// Lookup возвращает сессию кандидата без изменения состояния.
func (c *Controller) Lookup(key string) (*Session, error) {
	sess, ok := c.store.Get(key)
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// Finalize атомарно удаляет сессию и передает ее вызывающему вместе
// с полным транскриптом для генерации обратной связи. Повторный вызов
// вернет ErrNoSession — сессии уже нет, поэтому обратная связь не может
// быть сгенерирована дважды. Интервью с неотвеченным последним вопросом
// завершить нельзя: ErrOpenQuestion.
func (c *Controller) Finalize(key string) (*Session, error) {
	sess, ok := c.store.Get(key)
	if !ok {
		return nil, ErrNoSession
	}
	if sess.OpenQuestion() {
		return nil, ErrOpenQuestion
	}

	sess, _ = c.store.Remove(key)
	return sess, nil
}

// Abandon удаляет сессию кандидата без генерации обратной связи
// (команда /stop и чистка неактивных сессий). Возвращает false,
// если сессии не было.
func (c *Controller) Abandon(key string) bool {
	_, ok := c.store.Remove(key)
	return ok
}
