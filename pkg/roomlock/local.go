package roomlock

import (
	"context"
	"fmt"
	"sync"
)

// Local блокировки внутри одного процесса
type Local struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	sem  chan struct{}
	refs int
}

// NewLocal создает локальный Locker
func NewLocal() *Local {
	return &Local{locks: make(map[string]*localEntry)}
}

// Acquire получает блокировку по ключу
func (l *Local) Acquire(ctx context.Context, key string) (Lock, error) {
	entry := l.ref(key)

	select {
	case entry.sem <- struct{}{}:
		return &localLock{owner: l, key: key, entry: entry}, nil
	case <-ctx.Done():
		l.unref(key, entry)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
	}
}

// Held возвращает количество ключей, по которым сейчас есть держатели или ожидающие
func (l *Local) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *Local) ref(key string) *localEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		entry = &localEntry{sem: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (l *Local) unref(key string, entry *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}

type localLock struct {
	owner    *Local
	key      string
	entry    *localEntry
	released sync.Once
}

func (l *localLock) Release(_ context.Context) error {
	l.released.Do(func() {
		<-l.entry.sem
		l.owner.unref(l.key, l.entry)
	})
	return nil
}
