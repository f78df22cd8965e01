package service

import (
	"context"
	"errors"
	"fmt"

	"condohub/internal/bookings/override"
	"condohub/internal/bookings/repository"
	"condohub/internal/bookings/validator"
	condorepo "condohub/internal/condominiums/repository"
	eventrepo "condohub/internal/events/repository"
	resourcerepo "condohub/internal/resources/repository"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/notify"
	"condohub/pkg/sanitize"
)

// Resident-facing messages, kept verbatim from the portal.
const (
	MsgMissingFields     = "Dados obrigatórios ausentes."
	MsgStartBeforeEnd    = "Horário de início deve ser anterior ao horário de término."
	MsgPastDate          = "Data do agendamento deve ser igual ou posterior à data atual."
	MsgPastTime          = "O horário da reserva não pode ser anterior ao horário atual."
	MsgCondoNotFound     = "Condomínio não encontrado ou sem dados."
	MsgResourceNotFound  = "Recurso não encontrado ou sem dados."
	MsgClosedByEvent     = "O recurso está fechado neste dia por causa de um evento."
	MsgClosedThisDay     = "O recurso está fechado nesse dia."
	MsgOutsideWindow     = "Horário fora do funcionamento do recurso."
	MsgDuplicateBooking  = "Não é possível ter mais de um agendamento ativo para este recurso."
	MsgDayTaken          = "Já existe um agendamento para este dia."
	MsgSlotTaken         = "Já existe um agendamento para este horário."
	MsgCreated           = "Agendamento criado com sucesso."
	MsgCreatedOpensLater = "Agendamento criado com sucesso. O recurso estará disponível a partir das %s."

	msgAdvanceLimit = "Este recurso só pode ser reservado com até %d dias de antecedência."
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error)
	AvailableSlots(ctx context.Context, condominiumID, resourceID, date string) ([]string, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Booking, error)
}

type bookingService struct {
	bookings     repository.BookingRepository
	resources    resourcerepo.ResourceRepository
	events       eventrepo.EventRepository
	condominiums condorepo.CondominiumRepository
	validator    *validator.BookingValidator
	publisher    notify.Publisher
	clock        clock.Clock
	log          *logger.Logger
}

func NewBookingService(
	bookings repository.BookingRepository,
	resources resourcerepo.ResourceRepository,
	events eventrepo.EventRepository,
	condominiums condorepo.CondominiumRepository,
	bookingValidator *validator.BookingValidator,
	publisher notify.Publisher,
	clk clock.Clock,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookings:     bookings,
		resources:    resources,
		events:       events,
		condominiums: condominiums,
		validator:    bookingValidator,
		publisher:    publisher,
		clock:        clk,
		log:          log,
	}
}

// Create runs the admission checks in order and persists the booking when
// every one of them passes. The first failing check decides the rejection;
// nothing is written on rejection.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.BookingResult, error) {
	req.UserName = sanitize.Name(req.UserName)

	if details, err := s.validator.Validate(req); err != nil {
		s.log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation(MsgMissingFields, details)
	}

	if req.StartTime != "" && req.EndTime != "" && req.StartTime >= req.EndTime {
		return nil, apperrors.Validation(MsgStartBeforeEnd, nil)
	}

	now := s.clock.Now()
	today := model.FormatDate(now)
	currentHour := now.Hour()

	if req.Date < today {
		return nil, apperrors.PastDate(MsgPastDate)
	}

	if _, err := s.condominiums.Get(ctx, req.CondominiumID); err != nil {
		if errors.Is(err, condorepo.ErrNotFound) {
			return nil, apperrors.NotFound(MsgCondoNotFound)
		}
		return nil, apperrors.Internal("Falha ao consultar o condomínio.", err)
	}

	resource, err := s.resources.Get(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourcerepo.ErrNotFound) {
			return nil, apperrors.NotFound(MsgResourceNotFound)
		}
		return nil, apperrors.Internal("Falha ao consultar o recurso.", err)
	}
	if !belongsTo(resource, req.CondominiumID) {
		return nil, apperrors.NotFound(MsgResourceNotFound)
	}

	if resource.Hourly() && req.StartTime != "" && req.Date == today {
		if model.HourOf(req.StartTime) <= currentHour {
			return nil, apperrors.PastTime(MsgPastTime)
		}
	}

	if limit := resource.BookingAdvanceLimitDays; limit > 0 {
		maxDate := model.FormatDate(now.AddDate(0, 0, limit))
		if req.Date > maxDate {
			return nil, apperrors.AdvanceLimit(fmt.Sprintf(msgAdvanceLimit, limit))
		}
	}

	events, err := s.events.ForResourceOnDate(ctx, req.CondominiumID, req.ResourceID, req.Date)
	if err != nil {
		return nil, apperrors.Internal("Falha ao consultar eventos do recurso.", err)
	}
	overrides := override.Resolve(events)

	if overrides.Closed() {
		return nil, apperrors.ResourceClosed(MsgClosedByEvent)
	}

	window, ok := s.effectiveWindow(resource, overrides, req.Date)
	if !ok {
		return nil, apperrors.ResourceClosed(MsgClosedThisDay)
	}

	if resource.Hourly() && req.StartTime != "" && req.EndTime != "" {
		startHour, endHour := windowHours(window, overrides)
		requestStart := model.HourOf(req.StartTime)
		requestEnd := model.HourOf(req.EndTime)

		if requestStart < startHour || requestStart >= endHour || requestEnd > endHour {
			return nil, apperrors.OutsideWindow(MsgOutsideWindow)
		}
	}

	active, err := s.bookings.ActiveForResource(ctx, req.CondominiumID, req.ResourceID, today)
	if err != nil {
		return nil, apperrors.Internal("Falha ao consultar agendamentos ativos.", err)
	}

	if err := checkConflicts(resource, active, req, currentHour); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		CondominiumID: req.CondominiumID,
		UserID:        req.UserID,
		UserName:      req.UserName,
		ResourceID:    req.ResourceID,
		Date:          req.Date,
		CreatedAt:     now.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if resource.Hourly() {
		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime
	}

	if _, err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperrors.Internal("Falha ao criar o agendamento.", err)
	}

	if err := s.publisher.Publish(ctx, notify.EventBookingCreated, booking.ResourceID, booking); err != nil {
		s.log.Warn("Failed to publish booking notification", "booking_id", booking.ID, "error", err)
	}

	s.log.Info("Booking created",
		"id", booking.ID,
		"condominium_id", booking.CondominiumID,
		"resource_id", booking.ResourceID,
		"date", booking.Date,
	)

	message := MsgCreated
	if overrides.TemporaryCloseEnd != "" {
		message = fmt.Sprintf(MsgCreatedOpensLater, overrides.TemporaryCloseEnd)
	}

	return &model.BookingResult{Booking: booking, Message: message}, nil
}

func (s *bookingService) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Booking, error) {
	if condominiumID == "" {
		return nil, apperrors.InvalidInput("condominium_id é obrigatório")
	}

	bookings, err := s.bookings.ListByCondominium(ctx, condominiumID)
	if err != nil {
		return nil, apperrors.Internal("Falha ao listar agendamentos.", err)
	}
	return bookings, nil
}

// effectiveWindow picks the window that applies to the booking date: the
// open-override window when one exists, otherwise the weekly recurring one.
func (s *bookingService) effectiveWindow(resource *model.Resource, overrides override.Resolution, date string) (model.TimeWindow, bool) {
	if overrides.OpenWindow != nil {
		return *overrides.OpenWindow, true
	}

	day, err := model.ParseDate(date)
	if err != nil {
		return model.TimeWindow{}, false
	}
	return resource.WeeklyWindow(model.WeekdayName(day))
}

// windowHours converts a window to whole hours, raising the start past a
// temporary closure so slots under it cannot be booked.
func windowHours(window model.TimeWindow, overrides override.Resolution) (int, int) {
	startHour := model.HourOf(window.Start)
	endHour := model.HourOf(window.End)

	if overrides.TemporaryCloseEnd != "" {
		if closeEnd := model.HourOf(overrides.TemporaryCloseEnd); closeEnd > startHour {
			startHour = closeEnd
		}
	}
	return startHour, endHour
}

func checkConflicts(resource *model.Resource, active []model.Booking, req *model.BookingRequest, currentHour int) error {
	for _, existing := range active {
		if resource.Period == model.PeriodDaily {
			if existing.UserID == req.UserID {
				return apperrors.DuplicateBooking(MsgDuplicateBooking)
			}
			if existing.Date == req.Date {
				return apperrors.SlotTaken(MsgDayTaken)
			}
			continue
		}

		// Hourly: a user's booking counts as active until its end hour has
		// passed within the current day.
		if existing.UserID == req.UserID && model.HourOf(existing.EndTime) >= currentHour {
			return apperrors.DuplicateBooking(MsgDuplicateBooking)
		}
		if existing.Date == req.Date && existing.StartTime == req.StartTime && existing.EndTime == req.EndTime {
			return apperrors.SlotTaken(MsgSlotTaken)
		}
	}
	return nil
}

func belongsTo(resource *model.Resource, condominiumID string) bool {
	for _, id := range resource.CondominiumIDs {
		if id == condominiumID {
			return true
		}
	}
	return false
}
