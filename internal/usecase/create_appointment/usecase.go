package create_appointment

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case для создания записи
type UseCase struct {
	apptRepo     AppointmentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции:
// выборка активных записей даты блокирует их (FOR UPDATE), поэтому два
// конкурентных создания на пересекающиеся интервалы не пройдут оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%s, date=%s, time=%s",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Применяем значения по умолчанию
	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}
	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = domain.DefaultServiceType
	}

	// 3. Проверяем дату: не в прошлом и рабочий день
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}
	if !domain.Hours.IsOpenOn(req.Date) {
		uc.logger.Warn("CreateAppointment: calendar closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrClosedDay
	}

	// 4. Проверяем, что интервал помещается в рабочие часы
	if err := validateWithinHours(req.StartTime, duration); err != nil {
		uc.logger.Warn("CreateAppointment: slot outside business hours: %s + %d min", req.StartTime, duration)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		return nil, fmt.Errorf("%w: compute end time: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 5. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Активные записи даты с блокировкой (FOR UPDATE)
		active, err := uc.apptRepo.GetActiveByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get active appointments: %v", err)
			return fmt.Errorf("%w: failed to get active appointments: %w", ErrInternal, err)
		}

		// 5.2. Проверяем пересечения
		if !availability.IsAvailable(req.StartTime, duration, active) {
			uc.logger.Warn("CreateAppointment: slot %s not available on %s",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.3. Сохраняем запись
		appt := &domain.Appointment{
			UserID:          req.UserID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: duration,
			ServiceType:     serviceType,
			Status:          domain.StatusScheduled,
			Notes:           req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		ServiceType:     result.ServiceType,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
