// Package availability чистая логика проверки доступности слотов
// Работает только с уже загруженными записями, не ходит в БД и не читает часы
package availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [startA, endA) и [startB, endB)
// Строгие сравнения: интервалы, граничащие друг с другом, НЕ пересекаются
//
// Примеры:
// - [10:00, 11:00) и [10:30, 11:30) → пересекаются
// - [10:00, 11:00) и [11:00, 12:00) → не пересекаются (граничат)
// - [10:00, 11:00) и [09:00, 10:00) → не пересекаются (граничат)
func Overlaps(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && startB.IsBefore(endA)
}

// IsAvailable проверяет, что интервал [start, start+duration) не пересекается
// ни с одной активной записью из appointments
// Ожидает записи одной даты; неактивные (отмененные) пропускаются
func IsAvailable(start types.TimeString, durationMinutes int, appointments []*domain.Appointment) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Интервал не помещается в сутки - забронировать его нельзя
		return false
	}

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if Overlaps(start, end, appt.StartTime, appt.EndTime) {
			return false
		}
	}

	return true
}

// FreeSlots возвращает все свободные времена начала слота на дату
// по возрастанию. Кандидаты идут с шагом сетки от открытия до закрытия;
// последний кандидат - тот, чей конец совпадает с закрытием.
// Для нерабочих дней возвращает пустой список без ошибки - это
// зафиксированное поведение движка, вызывающим фильтровать дату не нужно
func FreeSlots(date time.Time, durationMinutes int, appointments []*domain.Appointment) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if !domain.Hours.IsOpenOn(date) {
		return slots
	}

	candidate := domain.Hours.OpenTime
	for candidate.IsBefore(domain.Hours.CloseTime) {
		end, err := candidate.AddMinutes(durationMinutes)
		if err != nil || end.IsAfter(domain.Hours.CloseTime) {
			break
		}

		if IsAvailable(candidate, durationMinutes, appointments) {
			slots = append(slots, candidate)
		}

		candidate, err = candidate.AddMinutes(domain.Hours.GranularityMinutes)
		if err != nil {
			break
		}
	}

	return slots
}
