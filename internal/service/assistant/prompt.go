package assistant

import "github.com/m04kA/SMC-AppointmentService/internal/integrations/gemini"

// systemPrompt определяет поведение ассистента
const systemPrompt = `You are a friendly scheduling assistant for an appointment calendar.
You help users check availability, book, view, reschedule and cancel appointments.

Rules:
- The calendar is open Monday to Friday, 09:00 to 17:00. Appointments are booked on the hour by default and last 60 minutes unless the user asks otherwise.
- Always check availability before booking when the user has not confirmed a specific free slot.
- Dates passed to tools must be in YYYY-MM-DD format or one of: today, tomorrow, a weekday name.
- Times passed to tools may be like "3pm", "3:30pm" or "15:00".
- When listing appointments or slots, present times in a friendly 12-hour format.
- To cancel or reschedule, first look up the user's appointments to find the appointment id.
- Confirm destructive actions (cancellation) with the user before calling the tool.
- Keep replies short and conversational. Never invent appointments or free slots.`

// SystemPrompt возвращает системный промпт для инициализации клиента модели
func SystemPrompt() string {
	return systemPrompt
}

// Tools возвращает описания инструментов для инициализации клиента модели
func Tools() []gemini.Tool {
	return assistantTools()
}

// assistantTools инструменты, доступные модели
func assistantTools() []gemini.Tool {
	return []gemini.Tool{
		{
			Name:        toolCheckAvailability,
			Description: "List free appointment slots for a date. Returns slot start times.",
			Params: []gemini.Param{
				{Name: "date", Description: "Date to check: YYYY-MM-DD, today, tomorrow or a weekday name", Required: true},
				{Name: "duration_minutes", Description: "Desired appointment length in minutes, default 60"},
			},
		},
		{
			Name:        toolBookAppointment,
			Description: "Book an appointment at a specific date and time for the current user.",
			Params: []gemini.Param{
				{Name: "date", Description: "Appointment date: YYYY-MM-DD, today, tomorrow or a weekday name", Required: true},
				{Name: "start_time", Description: "Start time, e.g. 3pm, 3:30pm or 15:00", Required: true},
				{Name: "duration_minutes", Description: "Appointment length in minutes, default 60"},
				{Name: "service_type", Description: "Type of service, default General Consultation"},
				{Name: "notes", Description: "Optional notes for the appointment"},
			},
		},
		{
			Name:        toolViewAppointments,
			Description: "List the current user's appointments with their ids, dates, times and statuses.",
			Params: []gemini.Param{
				{Name: "include_past", Description: "Set to true to include past appointments, default false"},
			},
		},
		{
			Name:        toolCancelAppointment,
			Description: "Cancel one of the current user's appointments by its id.",
			Params: []gemini.Param{
				{Name: "appointment_id", Description: "Id of the appointment to cancel, as returned by view_appointments", Required: true},
			},
		},
	}
}
