package assistant

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assistant: invalid input data")

	// ErrInternal возвращается при внутренних ошибках ассистента
	ErrInternal = errors.New("assistant: internal error")
)
