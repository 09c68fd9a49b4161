package ports

import (
	"context"
	"time"
)

// Pin цифровой вход кнопки
type Pin interface {
	// Active возвращает true, если линия в активном уровне
	Active() (bool, error)
}

// Display двухстрочный символьный дисплей
type Display interface {
	Show(line1, line2 string) error
	Width() int
}

// Clock источник времени и задержек; подменяется в тестах
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Connectivity сообщает, есть ли сетевое подключение
type Connectivity interface {
	Connected() bool
	// WaitConnected ждёт подключения не дольше timeout
	WaitConnected(ctx context.Context, timeout time.Duration) bool
}
