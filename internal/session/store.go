package session

import "sync"

// Store хранит сессии интервью по ключу кандидата.
// Внутренняя структура защищена RWMutex: операции для разных кандидатов
// идут независимо. Обращения к одной и той же сессии должны быть
// сериализованы вызывающей стороной (см. KeyedMutex).
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore создает пустое in-memory хранилище сессий.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Put создает или заменяет сессию кандидата.
func (s *Store) Put(key string, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = sess
}

// Get возвращает сессию кандидата, если она есть.
func (s *Store) Get(key string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[key]
	return sess, ok
}

// Remove атомарно удаляет и возвращает сессию кандидата.
// После удаления ключ можно использовать для новой сессии с чистого листа.
func (s *Store) Remove(key string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if ok {
		delete(s.sessions, key)
	}
	return sess, ok
}

// QuestionCount возвращает число записанных пар вопрос-ответ
// (с ответом или без). Для неизвестного ключа — ErrNoSession.
func (s *Store) QuestionCount(key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[key]
	if !ok {
		return 0, ErrNoSession
	}
	return len(sess.Transcript), nil
}
