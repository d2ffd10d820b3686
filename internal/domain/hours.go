package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BusinessHours рабочие часы календаря
// Единая конфигурация процесса, не меняется в рантайме
type BusinessHours struct {
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	GranularityMinutes int // Шаг сетки слотов
}

// Hours расписание работы: будни с 09:00 до 17:00, сетка слотов по часу
var Hours = BusinessHours{
	OpenTime:           "09:00",
	CloseTime:          "17:00",
	GranularityMinutes: 60,
}

// IsOpenOn returns true if the calendar accepts appointments on the given date
// Выходные (суббота, воскресенье) закрыты
func (h BusinessHours) IsOpenOn(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
