package session

import "errors"

// Ошибки протокола сессии. Обе ошибки протокола — следствие неверной
// последовательности событий со стороны вызывающего кода, а не сбой хранилища.
var (
	// ErrNoSession — операция ссылается на кандидата без активной сессии.
	ErrNoSession = errors.New("нет активной сессии интервью")

	// ErrNoOpenQuestion — ответ пришел, но открытого вопроса нет
	// (транскрипт пуст или последний вопрос уже отвечен).
	ErrNoOpenQuestion = errors.New("нет вопроса, ожидающего ответа")

	// ErrOpenQuestion — попытка задать новый вопрос или завершить интервью,
	// пока последний вопрос еще без ответа.
	ErrOpenQuestion = errors.New("предыдущий вопрос еще без ответа")
)
