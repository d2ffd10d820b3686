package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service сервис для работы с записями
type Service struct {
	apptRepo     AppointmentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:     apptRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID
// Запись видна только её владельцу: чужой ID ведет себя как несуществующий
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appt, err := s.apptRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found for user=%s", id, userID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appt), nil
}

// GetUserAppointments получает записи пользователя
// По умолчанию возвращает только предстоящие записи, опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%s, status=%v, includePast=%t",
		req.UserID, req.Status, req.IncludePast)

	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	filter := domain.UserAppointmentsFilter{
		UserID:      req.UserID,
		IncludePast: req.IncludePast,
		Today:       s.timeProvider.Now(),
	}

	if req.Status != nil {
		status, err := models.ToDomainFilterStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appointments, err := s.apptRepo.GetByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%s",
		len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись пользователя и возвращает отмененную запись
// Повторная отмена - no-op: статус и cancelled_at уже отмененной записи не трогаются
func (s *Service) Cancel(ctx context.Context, id, userID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", id, userID)

	appt, err := s.apptRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%s not found for user=%s", id, userID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%s is already cancelled", id)
		return models.FromDomainAppointment(appt), nil
	}

	if err := s.apptRepo.Cancel(ctx, id); err != nil && !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
		// Не найдена на этом шаге - запись отменили между выборкой и UPDATE,
		// результат тот же; остальное - ошибка
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.apptRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		s.logger.Error("Cancel: fetch cancelled appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - fetch cancelled: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(cancelled), nil
}

// Update применяет явный набор изменений к записи пользователя
// При смене даты, времени или длительности доступность нового интервала
// проверяется заново в сериализуемой транзакции
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%s by user=%s", id, req.UserID)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for appointment id=%s: %v", id, err)
		return nil, err
	}

	changes, err := req.ToDomainChanges()
	if err != nil {
		s.logger.Warn("Update: invalid status=%s for appointment id=%s", *req.Status, id)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if changes.IsEmpty() {
		s.logger.Warn("Update: no recognized fields to update for appointment id=%s", id)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	appt, err := s.apptRepo.GetByIDAndUser(ctx, id, req.UserID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Update: appointment id=%s not found for user=%s", id, req.UserID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Update: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if !appt.CanBeUpdated() {
		s.logger.Warn("Update: appointment id=%s cannot be updated, status=%s", id, appt.Status)
		return nil, ErrCannotUpdate
	}

	if changes.TouchesTime() {
		if err := s.updateWithReschedule(ctx, appt, changes); err != nil {
			return nil, err
		}
	} else {
		if err := s.apptRepo.Update(ctx, id, changes); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return nil, ErrAppointmentNotFound
			}
			s.logger.Error("Update: repository error for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.apptRepo.GetByIDAndUser(ctx, id, req.UserID)
	if err != nil {
		s.logger.Error("Update: failed to fetch updated appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - fetch updated: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated appointment id=%s", id)
	return models.FromDomainAppointment(updated), nil
}

// updateWithReschedule переносит запись на новый интервал
// Целевой интервал собирается из изменений поверх текущих значений записи,
// затем проверяется и обновляется в одной сериализуемой транзакции
func (s *Service) updateWithReschedule(ctx context.Context, appt *domain.Appointment, changes domain.AppointmentChanges) error {
	newDate := appt.Date
	if changes.Date != nil {
		newDate = *changes.Date
	}
	newStart := appt.StartTime
	if changes.StartTime != nil {
		newStart = *changes.StartTime
	}
	newDuration := appt.DurationMinutes
	if changes.DurationMinutes != nil {
		newDuration = *changes.DurationMinutes
	}

	now := s.timeProvider.Now()
	if isDateInPast(newDate, now) {
		s.logger.Warn("Update: target date %s is in the past for appointment id=%s",
			newDate.Format(domain.DateFormat), appt.ID)
		return ErrInvalidDate
	}
	if !domain.Hours.IsOpenOn(newDate) {
		s.logger.Warn("Update: calendar closed on %s for appointment id=%s",
			newDate.Format(domain.DateFormat), appt.ID)
		return ErrClosedDay
	}
	if err := validateWithinHours(newStart, newDuration); err != nil {
		s.logger.Warn("Update: target slot %s + %d min outside business hours for appointment id=%s",
			newStart, newDuration, appt.ID)
		return err
	}

	// Репозиторий пересчитывает end_time только по StartTime и DurationMinutes,
	// поэтому при переносе передаем все временные поля целиком
	changes.Date = &newDate
	changes.StartTime = &newStart
	changes.DurationMinutes = &newDuration

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := s.apptRepo.GetActiveByDate(txCtx, newDate)
		if err != nil {
			s.logger.Error("Update: failed to get active appointments: %v", err)
			return fmt.Errorf("%w: Update - get active appointments: %w", ErrInternal, err)
		}

		// Сама переносимая запись не конфликтует со своим новым интервалом
		others := make([]*domain.Appointment, 0, len(active))
		for _, a := range active {
			if a.ID != appt.ID {
				others = append(others, a)
			}
		}

		if !availability.IsAvailable(newStart, newDuration, others) {
			s.logger.Warn("Update: slot %s not available on %s for appointment id=%s",
				newStart, newDate.Format(domain.DateFormat), appt.ID)
			return ErrSlotNotAvailable
		}

		if err := s.apptRepo.Update(txCtx, appt.ID, changes); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Update: repository error for appointment id=%s: %v", appt.ID, err)
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		return nil
	})
}

// Вспомогательные функции

// validateUpdateRequest валидирует изменяемые поля запроса
func validateUpdateRequest(req *models.UpdateAppointmentRequest) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.DurationMinutes != nil &&
		(*req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.ServiceType != nil && (len(*req.ServiceType) == 0 || len(*req.ServiceType) > domain.MaxServiceTypeLen) {
		return fmt.Errorf("%w: invalid serviceType", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateWithinHours проверяет, что интервал [start, start+duration)
// целиком помещается в рабочие часы
func validateWithinHours(start types.TimeString, durationMinutes int) error {
	if start.IsBefore(domain.Hours.OpenTime) {
		return ErrOutsideBusinessHours
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return ErrOutsideBusinessHours
	}
	if end.IsAfter(domain.Hours.CloseTime) {
		return ErrOutsideBusinessHours
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
