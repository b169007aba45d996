package resilience

import "sync"

// KeyedMutex serializes work per key. Locks for idle keys are released.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyedLock
}

type keyedLock struct {
	mu      sync.Mutex
	waiters int
}

// Lock blocks until the key is free and returns its unlock func.
func (m *KeyedMutex[K]) Lock(key K) (unlock func()) {
	m.mu.Lock()
	if m.locks == nil {
		m.locks = make(map[K]*keyedLock)
	}
	l, ok := m.locks[key]
	if !ok {
		l = &keyedLock{}
		m.locks[key] = l
	}
	l.waiters++
	m.mu.Unlock()

	l.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			m.mu.Lock()
			l.waiters--
			if l.waiters == 0 {
				delete(m.locks, key)
			}
			m.mu.Unlock()
		})
	}
}

func (m *KeyedMutex[K]) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
