package attendclient

import (
	"context"
	"net/http"
	"time"
)

const (
	DefaultCapturePath = "/api/attendance/capture"
	DefaultDeletePath  = "/api/attendance/students"
	DefaultTimeout     = 10 * time.Second

	// HeaderRequestID заголовок с идентификатором запроса
	HeaderRequestID = "X-Request-ID"
)

// CaptureEvent результат успешной идентификации
type CaptureEvent struct {
	Slot       int
	CapturedAt time.Time
}

// CapturePayload тело запроса отметки
type CapturePayload struct {
	FingerID        int    `json:"fingerId"`
	Timestamp       string `json:"timestamp"`
	CurrentDateTime string `json:"currentDateTime,omitempty"`
}

// Result итог одного запроса
type Result struct {
	Outcome Outcome
	Status  int    // HTTP-статус, 0 если запрос не выполнялся
	Message string // Сообщение для дисплея
	Err     error
}

// Success сообщает, что сервис принял запрос
func (r Result) Success() bool {
	switch r.Outcome {
	case OutcomeOnTime, OutcomeLate, OutcomeDeleted:
		return true
	}
	return false
}

// Connectivity проверка наличия сети перед запросом
type Connectivity interface {
	Connected() bool
}

// Doer выполняет HTTP-запросы; *http.Client подходит
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client клиент сервиса посещаемости
type Client interface {
	// Report отправляет событие отметки
	Report(ctx context.Context, ev CaptureEvent) Result
	// DeleteAll просит сервис удалить все записи студентов
	DeleteAll(ctx context.Context) Result
}

// Config конфигурация клиента
type Config struct {
	BaseURL       string        // http://host:port
	CapturePath   string        // По умолчанию DefaultCapturePath
	DeletePath    string        // По умолчанию DefaultDeletePath
	DeleteToken   string        // Значение параметра confirm для удаления
	Timeout       time.Duration // Таймаут одного запроса
	SimulatedTime time.Time     // Если задано, уходит в currentDateTime
	Logger        func(string)  // Опциональный логгер
}
