package gemini

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("gemini client: internal error")

	// ErrEmptyResponse возвращается, когда модель не вернула ни одного кандидата
	ErrEmptyResponse = errors.New("gemini client: empty response")

	// ErrToolLoopExceeded возвращается, когда модель не завершила диалог
	// за отведенное число раундов вызова инструментов
	ErrToolLoopExceeded = errors.New("gemini client: tool call loop exceeded")
)
