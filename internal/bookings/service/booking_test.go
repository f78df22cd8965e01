package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"condohub/internal/bookings/repository"
	"condohub/internal/bookings/service"
	"condohub/internal/bookings/validator"
	condorepo "condohub/internal/condominiums/repository"
	eventrepo "condohub/internal/events/repository"
	resourcerepo "condohub/internal/resources/repository"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/notify"
	"condohub/pkg/store"
	"condohub/pkg/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	condoID = "condo-1"

	// Monday, 09:30 local time.
	nowYear  = 2026
	nowMonth = time.August
	nowDay   = 31
)

type fixture struct {
	t            *testing.T
	svc          service.BookingService
	bookings     repository.BookingRepository
	resources    resourcerepo.ResourceRepository
	events       eventrepo.EventRepository
	condominiums condorepo.CondominiumRepository
	now          time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(nowYear, nowMonth, nowDay, 9, 30, 0, 0, time.UTC)
	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"})
	st := memstore.New()

	bookings := repository.NewBookingRepository(st)
	resources := resourcerepo.NewResourceRepository(st)
	events := eventrepo.NewEventRepository(st)
	condominiums := condorepo.NewCondominiumRepository(st)

	require.NoError(t, condominiums.Upsert(context.Background(), condoID, &model.Condominium{
		Name:  "Condomínio Jardim das Flores",
		Email: "sindico@jardim.com.br",
	}))

	svc := service.NewBookingService(
		bookings,
		resources,
		events,
		condominiums,
		validator.NewBookingValidator(log),
		notify.Noop{},
		clock.Fixed{Instant: now},
		log,
	)

	return &fixture{
		t:            t,
		svc:          svc,
		bookings:     bookings,
		resources:    resources,
		events:       events,
		condominiums: condominiums,
		now:          now,
	}
}

func (f *fixture) createResource(resource *model.Resource) string {
	f.t.Helper()
	resource.CondominiumIDs = []string{condoID}
	id, err := f.resources.Create(context.Background(), resource)
	require.NoError(f.t, err)
	return id
}

func (f *fixture) createEvent(event *model.Event) {
	f.t.Helper()
	event.CondominiumID = condoID
	_, err := f.events.Create(context.Background(), event)
	require.NoError(f.t, err)
}

func weekdayWindows(start, end string) map[string]model.TimeWindow {
	windows := map[string]model.TimeWindow{}
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		windows[day] = model.TimeWindow{Start: start, End: end}
	}
	return windows
}

func hourlyCourt(f *fixture) string {
	return f.createResource(&model.Resource{
		Name:         "Quadra de Tênis",
		Period:       model.PeriodHourly,
		Availability: weekdayWindows("08:00", "18:00"),
	})
}

func dailyPartyRoom(f *fixture) string {
	return f.createResource(&model.Resource{
		Name:         "Salão de Festas",
		Period:       model.PeriodDaily,
		Availability: weekdayWindows("08:00", "22:00"),
	})
}

func request(resourceID, userID, date, start, end string) *model.BookingRequest {
	return &model.BookingRequest{
		CondominiumID: condoID,
		UserID:        userID,
		UserName:      "Maria Silva",
		ResourceID:    resourceID,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
	}
}

// nextMonday is a weekday inside every test resource's recurring schedule.
const nextMonday = "2026-09-07"

func TestCreate_HourlyAdmitted(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	result, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "10:00", "11:00"))

	require.NoError(t, err)
	assert.Equal(t, service.MsgCreated, result.Message)
	require.NotNil(t, result.Booking)
	assert.NotEmpty(t, result.Booking.ID)
	assert.Equal(t, nextMonday, result.Booking.Date)
	assert.Equal(t, "10:00", result.Booking.StartTime)
	assert.Equal(t, "11:00", result.Booking.EndTime)
}

func TestCreate_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), &model.BookingRequest{
		CondominiumID: condoID,
		Date:          nextMonday,
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Contains(t, err.Error(), service.MsgMissingFields)
}

func TestCreate_StartAfterEnd(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "11:00", "10:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Contains(t, err.Error(), service.MsgStartBeforeEnd)
}

func TestCreate_PastDate(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	// Rejected with the past-date reason regardless of every other field.
	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", "2026-08-28", "10:00", "11:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePastDate))
}

func TestCreate_CondominiumNotFound(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	req := request(courtID, "user-1", nextMonday, "10:00", "11:00")
	req.CondominiumID = "condo-missing"

	_, err := f.svc.Create(context.Background(), req)

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCreate_ResourceNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), request("resource-missing", "user-1", nextMonday, "10:00", "11:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCreate_ResourceOfAnotherCondominium(t *testing.T) {
	f := newFixture(t)

	id, err := f.resources.Create(context.Background(), &model.Resource{
		Name:           "Quadra Vizinha",
		CondominiumIDs: []string{"condo-other"},
		Period:         model.PeriodHourly,
		Availability:   weekdayWindows("08:00", "18:00"),
	})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), request(id, "user-1", nextMonday, "10:00", "11:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCreate_PastTimeToday(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	// Clock reads 09:30; a slot starting at 09:00 today is already gone.
	today := model.FormatDate(f.now)
	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", today, "09:00", "10:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePastTime))
}

func TestCreate_TodayLaterHourAdmitted(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	today := model.FormatDate(f.now)
	result, err := f.svc.Create(context.Background(), request(courtID, "user-1", today, "10:00", "11:00"))

	require.NoError(t, err)
	assert.Equal(t, service.MsgCreated, result.Message)
}

func TestCreate_AdvanceLimitExceeded(t *testing.T) {
	f := newFixture(t)
	courtID := f.createResource(&model.Resource{
		Name:                    "Churrasqueira",
		Period:                  model.PeriodHourly,
		Availability:            weekdayWindows("08:00", "18:00"),
		BookingAdvanceLimitDays: 7,
	})

	tenDaysOut := model.FormatDate(f.now.AddDate(0, 0, 10))
	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", tenDaysOut, "10:00", "11:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAdvanceLimit))
	assert.Contains(t, err.Error(), "7 dias")
}

func TestCreate_WithinAdvanceLimit(t *testing.T) {
	f := newFixture(t)
	courtID := f.createResource(&model.Resource{
		Name:                    "Churrasqueira",
		Period:                  model.PeriodHourly,
		Availability:            weekdayWindows("08:00", "18:00"),
		BookingAdvanceLimitDays: 7,
	})

	// Seven days out lands on next Monday, still inside the limit.
	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "10:00", "11:00"))

	require.NoError(t, err)
}

func TestCreate_ClosedDailyEvent(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)
	f.createEvent(&model.Event{
		ResourceIDs: []string{courtID},
		Type:        model.EventDaily,
		Status:      model.EventClosed,
		Date:        nextMonday,
	})

	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "10:00", "11:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeResourceClosed))
	assert.Contains(t, err.Error(), service.MsgClosedByEvent)
}

func TestCreate_TemporaryHourlyClose(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)
	f.createEvent(&model.Event{
		ResourceIDs: []string{courtID},
		Type:        model.EventHourly,
		Status:      model.EventClosed,
		Date:        nextMonday,
		StartTime:   "08:00",
		EndTime:     "12:00",
	})

	// A slot under the temporary closure is outside the effective window.
	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "10:00", "11:00"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOutsideWindow))

	// A slot after it is admitted, with the reopening time in the message.
	result, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "13:00", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(service.MsgCreatedOpensLater, "12:00"), result.Message)
}

func TestCreate_NoScheduleForWeekday(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	sunday := "2026-09-06"
	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", sunday, "10:00", "11:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeResourceClosed))
	assert.Contains(t, err.Error(), service.MsgClosedThisDay)
}

func TestCreate_OpenOverrideOutsideSchedule(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	sunday := "2026-09-06"
	f.createEvent(&model.Event{
		ResourceIDs: []string{courtID},
		Type:        model.EventDaily,
		Status:      model.EventOpen,
		Date:        sunday,
		StartTime:   "09:00",
		EndTime:     "13:00",
	})

	result, err := f.svc.Create(context.Background(), request(courtID, "user-1", sunday, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, service.MsgCreated, result.Message)

	// The override window bounds the day, not the weekly schedule.
	_, err = f.svc.Create(context.Background(), request(courtID, "user-2", sunday, "14:00", "15:00"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOutsideWindow))
}

func TestCreate_OutsideWeeklyWindow(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "19:00", "20:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeOutsideWindow))
}

func TestCreate_DailyDuplicateActiveBooking(t *testing.T) {
	f := newFixture(t)
	roomID := dailyPartyRoom(f)

	_, err := f.svc.Create(context.Background(), request(roomID, "user-1", nextMonday, "", ""))
	require.NoError(t, err)

	// Same user, different date: still one active booking per resource.
	_, err = f.svc.Create(context.Background(), request(roomID, "user-1", "2026-09-08", "", ""))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicateBooking))
}

func TestCreate_DailySlotTaken(t *testing.T) {
	f := newFixture(t)
	roomID := dailyPartyRoom(f)

	_, err := f.svc.Create(context.Background(), request(roomID, "user-1", nextMonday, "", ""))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), request(roomID, "user-2", nextMonday, "", ""))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeSlotTaken))
}

func TestCreate_DailyStripsTimes(t *testing.T) {
	f := newFixture(t)
	roomID := dailyPartyRoom(f)

	result, err := f.svc.Create(context.Background(), request(roomID, "user-1", nextMonday, "10:00", "11:00"))

	require.NoError(t, err)
	assert.Empty(t, result.Booking.StartTime)
	assert.Empty(t, result.Booking.EndTime)
}

func TestCreate_HourlySlotTaken(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), request(courtID, "user-2", nextMonday, "10:00", "11:00"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeSlotTaken))
}

func TestCreate_HourlyDuplicateActiveBooking(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	_, err := f.svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "10:00", "11:00"))
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), request(courtID, "user-1", "2026-09-08", "14:00", "15:00"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicateBooking))
}

// After any number of sequential successful admissions, no two bookings of a
// daily resource share a date.
func TestCreate_DailyDatesStayUnique(t *testing.T) {
	f := newFixture(t)
	roomID := dailyPartyRoom(f)
	ctx := context.Background()

	admitted := 0
	for i := 0; i < 5; i++ {
		date := model.FormatDate(f.now.AddDate(0, 0, i))
		for _, user := range []string{fmt.Sprintf("user-a%d", i), fmt.Sprintf("user-b%d", i)} {
			if _, err := f.svc.Create(ctx, request(roomID, user, date, "", "")); err == nil {
				admitted++
			}
		}
	}
	require.Greater(t, admitted, 0)

	bookings, err := f.bookings.ListByCondominium(ctx, condoID)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, booking := range bookings {
		key := booking.ResourceID + "|" + booking.Date
		assert.False(t, seen[key], "two bookings share %s", key)
		seen[key] = true
	}
}

func TestCreate_SanitizesUserName(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	req := request(courtID, "user-1", nextMonday, "10:00", "11:00")
	req.UserName = "  Maria   Silva "

	result, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", result.Booking.UserName)
}

// failingStore simulates an unreachable document database.
type failingStore struct{}

var errStoreDown = fmt.Errorf("store unreachable")

func (failingStore) ReadOne(context.Context, string, string) (store.Record, error) {
	return nil, errStoreDown
}

func (failingStore) ReadAll(context.Context, string, []store.Filter) ([]store.Record, error) {
	return nil, errStoreDown
}

func (failingStore) Create(context.Context, string, store.Record) (string, error) {
	return "", errStoreDown
}

func (failingStore) Update(context.Context, string, string, store.Record) error {
	return errStoreDown
}

func (failingStore) Upsert(context.Context, string, string, store.Record) error {
	return errStoreDown
}

func (failingStore) Delete(context.Context, string, string) error {
	return errStoreDown
}

func TestCreate_StoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	courtID := hourlyCourt(f)

	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"})
	svc := service.NewBookingService(
		repository.NewBookingRepository(failingStore{}),
		f.resources,
		f.events,
		f.condominiums,
		validator.NewBookingValidator(log),
		notify.Noop{},
		clock.Fixed{Instant: f.now},
		log,
	)

	_, err := svc.Create(context.Background(), request(courtID, "user-1", nextMonday, "10:00", "11:00"))

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInternal),
		"store failures must surface as infrastructure errors, not business rejections")
}
