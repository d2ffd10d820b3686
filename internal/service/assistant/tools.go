package assistant

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/gemini"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	slotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Имена инструментов
const (
	toolCheckAvailability = "check_availability"
	toolBookAppointment   = "book_appointment"
	toolViewAppointments  = "view_appointments"
	toolCancelAppointment = "cancel_appointment"
)

// toolHandler диспетчер вызовов инструментов для одного пользователя
// Ошибки выполнения возвращаются как error - клиент модели передает их
// модели текстом, и та сама объясняет пользователю, что пошло не так
func (s *Service) toolHandler(userID uuid.UUID) gemini.ToolHandler {
	return func(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
		s.logger.Info("Chat: tool call %s for user=%s", name, userID)

		switch name {
		case toolCheckAvailability:
			return s.checkAvailability(ctx, args)
		case toolBookAppointment:
			return s.bookAppointment(ctx, userID, args)
		case toolViewAppointments:
			return s.viewAppointments(ctx, userID, args)
		case toolCancelAppointment:
			return s.cancelAppointment(ctx, userID, args)
		default:
			return nil, fmt.Errorf("unknown tool %q", name)
		}
	}
}

func (s *Service) checkAvailability(ctx context.Context, args map[string]any) (map[string]any, error) {
	date, err := ParseNaturalDate(argString(args, "date"), s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	duration, err := argInt(args, "duration_minutes")
	if err != nil {
		return nil, err
	}

	resp, err := s.slotsUC.Execute(ctx, &slotsUC.Request{
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		return nil, err
	}

	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = displayTime(slot.StartTime)
	}

	return map[string]any{
		"date":  resp.Date.Format(domain.DateFormat),
		"slots": slots,
	}, nil
}

func (s *Service) bookAppointment(ctx context.Context, userID uuid.UUID, args map[string]any) (map[string]any, error) {
	date, err := ParseNaturalDate(argString(args, "date"), s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	startTime, err := ParseNaturalTime(argString(args, "start_time"))
	if err != nil {
		return nil, err
	}

	duration, err := argInt(args, "duration_minutes")
	if err != nil {
		return nil, err
	}

	req := &createUC.Request{
		UserID:          userID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
		ServiceType:     argString(args, "service_type"),
	}
	if notes := argString(args, "notes"); notes != "" {
		req.Notes = &notes
	}

	resp, err := s.createUC.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"appointment_id": resp.ID.String(),
		"date":           resp.Date.Format(domain.DateFormat),
		"start_time":     displayTime(resp.StartTime),
		"end_time":       displayTime(resp.EndTime),
		"service_type":   resp.ServiceType,
		"status":         resp.Status,
	}, nil
}

func (s *Service) viewAppointments(ctx context.Context, userID uuid.UUID, args map[string]any) (map[string]any, error) {
	includePast, err := argBool(args, "include_past")
	if err != nil {
		return nil, err
	}

	resp, err := s.apptService.GetUserAppointments(ctx, &models.GetUserAppointmentsRequest{
		UserID:      userID,
		IncludePast: includePast,
	})
	if err != nil {
		return nil, err
	}

	appointments := make([]map[string]any, len(resp.Appointments))
	for i, appt := range resp.Appointments {
		start, _ := types.NewTimeStringFromString(appt.StartTime)
		end, _ := types.NewTimeStringFromString(appt.EndTime)
		appointments[i] = map[string]any{
			"appointment_id": appt.ID.String(),
			"date":           appt.Date,
			"start_time":     displayTime(start),
			"end_time":       displayTime(end),
			"service_type":   appt.ServiceType,
			"status":         appt.Status,
		}
	}

	return map[string]any{
		"appointments": appointments,
		"count":        len(appointments),
	}, nil
}

func (s *Service) cancelAppointment(ctx context.Context, userID uuid.UUID, args map[string]any) (map[string]any, error) {
	id, err := uuid.Parse(argString(args, "appointment_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid appointment_id: %v", err)
	}

	cancelled, err := s.apptService.Cancel(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"appointment_id": cancelled.ID.String(),
		"status":         cancelled.Status,
		"cancelled":      true,
	}, nil
}

// Вспомогательные функции извлечения аргументов

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// argInt извлекает числовой аргумент
// Модель передает числа как float64 или строку в зависимости от схемы
func argInt(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case nil:
		return 0, nil
	case float64:
		return int(v), nil
	case string:
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %v", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid %s", key)
	}
}

func argBool(args map[string]any, key string) (bool, error) {
	switch v := args[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		if v == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %v", key, err)
		}
		return b, nil
	default:
		return false, fmt.Errorf("invalid %s", key)
	}
}

// displayTime форматирует время слота в 12-часовой формат для ответа модели
func displayTime(ts types.TimeString) string {
	t, err := time.Parse(domain.TimeFormat, ts.String())
	if err != nil {
		return ts.String()
	}
	return t.Format(domain.DisplayTimeFormat)
}
