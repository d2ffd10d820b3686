package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	// или принадлежит другому пользователю
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCannotUpdate возвращается при попытке изменить отмененную запись
	ErrCannotUpdate = errors.New("appointment cannot be updated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при попытке перенести запись на прошедшую дату
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrClosedDay возвращается, когда календарь закрыт в указанную дату
	ErrClosedDay = errors.New("calendar is closed on this date")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("slot is outside business hours")

	// ErrSlotNotAvailable возвращается, когда новый интервал пересекается с активной записью
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
