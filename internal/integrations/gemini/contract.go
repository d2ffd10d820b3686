package gemini

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsObserver интерфейс для фиксации метрик запросов к LLM
// Может быть nil - тогда метрики не собираются
type MetricsObserver interface {
	ObserveLLMRequest(model, status string, duration time.Duration)
}
