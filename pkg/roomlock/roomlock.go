// Package roomlock реализует взаимоисключающие блокировки по ключу
// (одна блокировка на комнату) для последовательности "проверка + вставка"
package roomlock

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrLockTimeout возвращается, когда блокировку не удалось получить до истечения контекста
	ErrLockTimeout = errors.New("roomlock: timed out waiting for lock")

	// ErrLockLost возвращается при освобождении блокировки, которая уже истекла или перехвачена
	ErrLockLost = errors.New("roomlock: lock lost before release")
)

// Lock удерживаемая блокировка
type Lock interface {
	Release(ctx context.Context) error
}

// Locker выдаёт блокировки по ключу
type Locker interface {
	// Acquire блокирует до получения блокировки или отмены ctx
	Acquire(ctx context.Context, key string) (Lock, error)
}

// RoomKey ключ блокировки для комнаты
func RoomKey(roomID int64) string {
	return fmt.Sprintf("room:%d", roomID)
}
