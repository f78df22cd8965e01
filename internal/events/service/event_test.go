package service_test

import (
	"context"
	"testing"
	"time"

	"condohub/internal/events/repository"
	"condohub/internal/events/service"
	"condohub/internal/events/validator"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"

	"condohub/pkg/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const condoID = "condo-1"

func newService(t *testing.T) service.EventService {
	t.Helper()

	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"})
	repo := repository.NewEventRepository(memstore.New())
	now := time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)

	return service.NewEventService(repo, validator.NewEventValidator(log), clock.Fixed{Instant: now}, log)
}

func closedDailyEvent() *model.Event {
	return &model.Event{
		CondominiumID: condoID,
		ResourceIDs:   []string{"resource-1"},
		Type:          model.EventDaily,
		Status:        model.EventClosed,
		Date:          "2026-09-07",
	}
}

func TestCreate_ClosedDaily(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), closedDailyEvent())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2026-08-31T09:30:00Z", created.CreatedAt)
}

func TestCreate_HourlyRequiresTimes(t *testing.T) {
	svc := newService(t)

	event := closedDailyEvent()
	event.Type = model.EventHourly

	_, err := svc.Create(context.Background(), event)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	appErr := apperrors.AsAppError(err)
	assert.Contains(t, appErr.Details, "start_time")
	assert.Contains(t, appErr.Details, "end_time")
}

func TestCreate_OpenDailyRequiresTimes(t *testing.T) {
	svc := newService(t)

	event := closedDailyEvent()
	event.Status = model.EventOpen

	_, err := svc.Create(context.Background(), event)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	event.StartTime = "09:00"
	event.EndTime = "13:00"
	_, err = svc.Create(context.Background(), event)
	assert.NoError(t, err)
}

func TestCreate_RejectsOpenHourly(t *testing.T) {
	svc := newService(t)

	event := closedDailyEvent()
	event.Status = model.EventOpen
	event.Type = model.EventHourly
	event.StartTime = "09:00"
	event.EndTime = "13:00"

	_, err := svc.Create(context.Background(), event)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestCreate_RejectsInvertedWindow(t *testing.T) {
	svc := newService(t)

	event := closedDailyEvent()
	event.Type = model.EventHourly
	event.StartTime = "14:00"
	event.EndTime = "12:00"

	_, err := svc.Create(context.Background(), event)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestCreate_RejectsMalformedDate(t *testing.T) {
	svc := newService(t)

	event := closedDailyEvent()
	event.Date = "07/09/2026"

	_, err := svc.Create(context.Background(), event)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestGet_ScopedToCondominium(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), closedDailyEvent())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), condoID, created.ID)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), "other-condo", created.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestUpdate_ReplacesShape(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), closedDailyEvent())
	require.NoError(t, err)

	replacement := &model.Event{
		ResourceIDs: []string{"resource-1", "resource-2"},
		Type:        model.EventHourly,
		Status:      model.EventClosed,
		Date:        "2026-09-08",
		StartTime:   "08:00",
		EndTime:     "12:00",
	}

	updated, err := svc.Update(context.Background(), condoID, created.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, model.EventHourly, updated.Type)
	assert.Equal(t, "2026-09-08", updated.Date)
	assert.Equal(t, "12:00", updated.EndTime)
	assert.Equal(t, condoID, updated.CondominiumID)
	assert.Len(t, updated.ResourceIDs, 2)
}

func TestUpdate_CannotMoveToAnotherCondominium(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), closedDailyEvent())
	require.NoError(t, err)

	replacement := closedDailyEvent()
	replacement.CondominiumID = "other-condo"

	updated, err := svc.Update(context.Background(), condoID, created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, condoID, updated.CondominiumID)
}

func TestDelete_RemovesEvent(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), closedDailyEvent())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), condoID, created.ID))

	_, err = svc.Get(context.Background(), condoID, created.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
