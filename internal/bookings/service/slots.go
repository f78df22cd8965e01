package service

import (
	"context"
	"errors"
	"fmt"

	"condohub/internal/bookings/override"
	resourcerepo "condohub/internal/resources/repository"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/model"
)

// AvailableSlots computes every bookable whole-hour slot for an hourly
// resource on a date. Daily resources and fully closed dates yield an empty
// list. The computation is pure over its inputs: the same bookings, events
// and clock instant always produce the same ordered slots.
func (s *bookingService) AvailableSlots(ctx context.Context, condominiumID, resourceID, date string) ([]string, error) {
	if condominiumID == "" || resourceID == "" {
		return nil, apperrors.InvalidInput("condominium_id e resource_id são obrigatórios")
	}
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("data inválida, use o formato AAAA-MM-DD")
	}

	resource, err := s.resources.Get(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourcerepo.ErrNotFound) {
			return nil, apperrors.NotFound(MsgResourceNotFound)
		}
		return nil, apperrors.Internal("Falha ao consultar o recurso.", err)
	}
	if !belongsTo(resource, condominiumID) {
		return nil, apperrors.NotFound(MsgResourceNotFound)
	}

	if !resource.Hourly() {
		return []string{}, nil
	}

	events, err := s.events.ForResourceOnDate(ctx, condominiumID, resourceID, date)
	if err != nil {
		return nil, apperrors.Internal("Falha ao consultar eventos do recurso.", err)
	}
	overrides := override.Resolve(events)

	if overrides.Closed() {
		return []string{}, nil
	}

	window, ok := s.effectiveWindow(resource, overrides, date)
	if !ok {
		return []string{}, nil
	}

	existing, err := s.bookings.ForResourceOnDate(ctx, condominiumID, resourceID, date)
	if err != nil {
		return nil, apperrors.Internal("Falha ao consultar agendamentos.", err)
	}

	// A booking occupies every hour in [start, end), not just its first one.
	taken := map[int]bool{}
	for _, booking := range existing {
		from := model.HourOf(booking.StartTime)
		to := model.HourOf(booking.EndTime)
		if to <= from {
			to = from + 1
		}
		for hour := from; hour < to; hour++ {
			taken[hour] = true
		}
	}

	now := s.clock.Now()
	isToday := date == model.FormatDate(now)
	currentHour := now.Hour()

	startHour := model.HourOf(window.Start)
	endHour := model.HourOf(window.End)
	closeEndHour := -1
	if overrides.TemporaryCloseEnd != "" {
		closeEndHour = model.HourOf(overrides.TemporaryCloseEnd)
	}

	slots := []string{}
	for hour := startHour; hour < endHour; hour++ {
		if hour < closeEndHour {
			continue
		}
		if isToday && hour <= currentHour {
			continue
		}

		if taken[hour] {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}

	return slots, nil
}
