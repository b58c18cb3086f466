package session

import "sync"

// KeyedMutex выдает отдельный мьютекс на каждого кандидата.
// Оркестратор держит мьютекс кандидата на протяжении всего логического хода
// (запись ответа, проверка счетчика, следующий вопрос или завершение),
// поэтому два события одного кандидата не могут пройти последовательность
// наперегонки. Разные кандидаты блокируются независимо.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex создает пустой набор мьютексов по ключам.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

func (km *KeyedMutex) get(key string) *sync.Mutex {
	km.mu.Lock()
	defer km.mu.Unlock()
	lock, ok := km.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		km.locks[key] = lock
	}
	return lock
}

// Lock захватывает мьютекс кандидата.
func (km *KeyedMutex) Lock(key string) {
	km.get(key).Lock()
}

// Unlock освобождает мьютекс кандидата.
func (km *KeyedMutex) Unlock(key string) {
	km.get(key).Unlock()
}
