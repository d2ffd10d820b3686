package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для получения свободных слотов
type UseCase struct {
	apptRepo     AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(apptRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Применяем длительность по умолчанию
	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	// 3. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. В закрытый день слотов нет
	if !domain.Hours.IsOpenOn(req.Date) {
		uc.logger.Info("GetAvailableSlots: calendar is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:            req.Date,
			DurationMinutes: duration,
			Slots:           []Slot{},
		}, nil
	}

	// 5. Получаем активные записи на дату
	appointments, err := uc.apptRepo.GetActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Перебираем кандидатов и отбрасываем пересекающиеся
	starts := availability.FreeSlots(req.Date, duration, appointments)

	// 7. Если дата - сегодня, отбрасываем слоты, которые уже начались
	if isSameDay(req.Date, now) {
		currentTime := types.NewTimeString(now)
		filtered := make([]types.TimeString, 0, len(starts))
		for _, start := range starts {
			if !start.IsBefore(currentTime) {
				filtered = append(filtered, start)
			}
		}
		starts = filtered
	}

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		end, err := start.AddMinutes(duration)
		if err != nil {
			return nil, fmt.Errorf("%w: compute slot end: %v", ErrInternal, err)
		}
		slots = append(slots, Slot{StartTime: start, EndTime: end})
	}

	uc.logger.Info("GetAvailableSlots: %d free slots on %s",
		len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
