package ports

// Logger определяет интерфейс для абстракции логирования.
// Аргументы после msg задаются парами ключ/значение в стиле log/slog.
type Logger interface {
	// Debug выводит отладочную информацию
	Debug(msg string, args ...interface{})

	// Info выводит информационные сообщения
	Info(msg string, args ...interface{})

	// Warn выводит предупреждения
	Warn(msg string, args ...interface{})

	// Error выводит ошибки
	Error(msg string, args ...interface{})

	// With возвращает логгер с дополнительными атрибутами
	With(args ...interface{}) Logger
}
