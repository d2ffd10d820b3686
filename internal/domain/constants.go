package domain

// Default values
const (
	DefaultDurationMinutes = 60
	DefaultServiceType     = "General Consultation"
)

// Business validation constants
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 480 // 8 часов - весь рабочий день
	MaxNotesLength     = 500
	MaxServiceTypeLen  = 255
)

// Time format constants
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayTimeFormat = "03:04 PM"   // Формат для списков слотов в ответах ассистента
)

// ActiveStatuses статусы записей, занимающих слот
// Используются при фильтрации для проверки пересечений
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCancelled,
}
