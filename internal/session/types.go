package session

import "time"

// QAPair представляет один вопрос интервью и ответ кандидата на него.
// Пара создается без ответа; ответ записывается ровно один раз,
// после чего пара больше не изменяется.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Answered bool   `json:"answered"`
}

// Session представляет сессию интервью одного кандидата.
// Транскрипт пополняется только новыми вопросами; единственное изменяемое
// поле в любой момент времени — слот ответа последней пары.
type Session struct {
	InterviewID  string    `json:"interview_id"`
	CandidateKey string    `json:"candidate_key"`
	StartedAt    time.Time `json:"started_at"`
	Transcript   []QAPair  `json:"transcript"`
}

// OpenQuestion возвращает true, если последний вопрос еще без ответа.
func (s *Session) OpenQuestion() bool {
	n := len(s.Transcript)
	return n > 0 && !s.Transcript[n-1].Answered
}
