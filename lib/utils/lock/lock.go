package lock

import (
	"context"
	"sync"
	"time"
)

var lockMap sync.Map

// WithDelay выполняет safeCode под замком по ключу.
// Обработка завершения задач сериализуется по заявке: ключом служит id
// заявки, чтобы два исполнителя не закрыли каскад одновременно.
// Возвращает success=false, если замок не получен за wait.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			defer lockMap.Delete(key)
			return true, safeCode()
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
}
