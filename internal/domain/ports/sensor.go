package ports

import (
	"context"
	"errors"
	"fmt"

	"attendterm/internal/domain/models"
)

var (
	// ErrNoFinger палец не приложен к сенсору
	ErrNoFinger = errors.New("sensor: no finger")
	// ErrNoMatch поиск не нашёл подходящий шаблон
	ErrNoMatch = errors.New("sensor: no match")
)

// SensorError неуспешный код подтверждения модуля или ошибка связи с ним.
// Code содержит код модуля; для ошибок связи Code == -1.
type SensorError struct {
	Op     string
	Code   int
	Reason string
	Err    error
}

func (e *SensorError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("sensor %s: link error: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sensor %s: code 0x%02X: %s", e.Op, e.Code, e.Reason)
}

func (e *SensorError) Unwrap() error { return e.Err }

// Sensor узкий набор команд модуля отпечатков.
// Все методы блокирующие и не прерываются после отправки команды.
type Sensor interface {
	// Handshake проверяет связь с модулем
	Handshake(ctx context.Context) error
	// Capacity размер библиотеки шаблонов
	Capacity() int
	// TemplateCount количество сохранённых шаблонов
	TemplateCount(ctx context.Context) (int, error)

	// CaptureImage снимает изображение; ErrNoFinger если пальца нет
	CaptureImage(ctx context.Context) error
	// ExtractFeatures извлекает признаки в буфер 1 или 2
	ExtractFeatures(ctx context.Context, buffer int) error
	// CreateModel объединяет буферы 1 и 2 в шаблон
	CreateModel(ctx context.Context) error
	// StoreModel сохраняет шаблон в слот
	StoreModel(ctx context.Context, slot int) error
	// DeleteModel удаляет шаблон из слота
	DeleteModel(ctx context.Context, slot int) error
	// Search ищет признаки буфера 1 по всей библиотеке; ErrNoMatch если совпадений нет
	Search(ctx context.Context) (models.Match, error)
	// EraseAll очищает библиотеку шаблонов
	EraseAll(ctx context.Context) error
}
