package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // 0 означает длительность по умолчанию (60 минут)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	DurationMinutes int       // Длительность, для которой искались слоты
	Slots           []Slot    // Список свободных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота, например "10:00"
	EndTime   types.TimeString // Время окончания слота
}
