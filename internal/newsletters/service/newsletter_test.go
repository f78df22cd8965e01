package service_test

import (
	"context"
	"testing"
	"time"

	"condohub/internal/newsletters/repository"
	"condohub/internal/newsletters/service"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/notify"

	"condohub/pkg/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const condoID = "condo-1"

type recordingPublisher struct {
	events []string
	keys   []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, key string, _ any) error {
	p.events = append(p.events, eventType)
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type tickingClock struct {
	instant time.Time
}

func (c *tickingClock) Now() time.Time {
	c.instant = c.instant.Add(time.Minute)
	return c.instant
}

func newService(t *testing.T, clk clock.Clock) (service.NewsletterService, *recordingPublisher) {
	t.Helper()

	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"})
	repo := repository.NewNewsletterRepository(memstore.New())
	publisher := &recordingPublisher{}

	return service.NewNewsletterService(repo, publisher, clk, log), publisher
}

func fixedClock() clock.Clock {
	return clock.Fixed{Instant: time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)}
}

func validNewsletter() *model.Newsletter {
	return &model.Newsletter{
		CondominiumID: condoID,
		Title:         "Manutenção do elevador",
		Description:   "O elevador social ficará parado na quinta-feira.",
	}
}

func TestCreate_PublishesEvent(t *testing.T) {
	svc, publisher := newService(t, fixedClock())

	created, err := svc.Create(context.Background(), validNewsletter())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2026-08-31T09:30:00Z", created.CreatedAt)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, notify.EventNewsletterPublished, publisher.events[0])
	assert.Equal(t, condoID, publisher.keys[0])
}

func TestCreate_SanitizesContent(t *testing.T) {
	svc, _ := newService(t, fixedClock())

	newsletter := validNewsletter()
	newsletter.Title = "  Manutenção   do elevador "
	newsletter.Description = "Linha um.\nLinha dois."

	created, err := svc.Create(context.Background(), newsletter)
	require.NoError(t, err)
	assert.Equal(t, "Manutenção do elevador", created.Title)
	assert.Contains(t, created.Description, "\n")
}

func TestCreate_RejectsMissingFields(t *testing.T) {
	svc, publisher := newService(t, fixedClock())

	_, err := svc.Create(context.Background(), &model.Newsletter{CondominiumID: condoID})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Empty(t, publisher.events)
}

func TestList_NewestFirst(t *testing.T) {
	svc, _ := newService(t, &tickingClock{instant: time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)})

	first := validNewsletter()
	first.Title = "Primeiro aviso"
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := validNewsletter()
	second.Title = "Segundo aviso"
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	listed, err := svc.ListByCondominium(context.Background(), condoID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Segundo aviso", listed[0].Title)
	assert.Equal(t, "Primeiro aviso", listed[1].Title)
}

func TestDelete_ScopedToCondominium(t *testing.T) {
	svc, _ := newService(t, fixedClock())

	created, err := svc.Create(context.Background(), validNewsletter())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "other-condo", created.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	require.NoError(t, svc.Delete(context.Background(), condoID, created.ID))

	listed, err := svc.ListByCondominium(context.Background(), condoID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
