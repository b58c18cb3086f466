package storage

import "mock-interview-bot/internal/session"

// InterviewResult представляет архивную запись завершенного интервью
type InterviewResult struct {
	InterviewID         string           `json:"interview_id"`
	CandidateKey        string           `json:"candidate_key"`
	Timestamp           string           `json:"timestamp"`
	QuestionsAndAnswers []session.QAPair `json:"questions_and_answers"`
	Feedback            string           `json:"feedback,omitempty"`
}
