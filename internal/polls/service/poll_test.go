package service_test

import (
	"context"
	"testing"
	"time"

	"condohub/internal/polls/repository"
	"condohub/internal/polls/service"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"

	"condohub/pkg/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const condoID = "condo-1"

func newService(t *testing.T) service.PollService {
	t.Helper()

	log := logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"})
	repo := repository.NewPollRepository(memstore.New())
	now := time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)

	return service.NewPollService(repo, clock.Fixed{Instant: now}, log)
}

func validPoll(expiresAt string) *model.Poll {
	return &model.Poll{
		CondominiumID: condoID,
		Title:         "Reforma da piscina",
		Description:   "Aprovar o orçamento apresentado na assembleia.",
		Options: []model.PollOption{
			{Text: "Sim"},
			{Text: "Não"},
		},
		ExpiresAt: expiresAt,
	}
}

func TestCreate_AssignsOptionIDsAndActivates(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validPoll("2026-09-30T23:59:59Z"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, "2026-08-31T09:30:00Z", created.CreatedAt)
	require.Len(t, created.Options, 2)
	assert.NotEmpty(t, created.Options[0].ID)
	assert.NotEqual(t, created.Options[0].ID, created.Options[1].ID)
	assert.Zero(t, created.Options[0].Votes)
}

func TestCreate_RejectsSingleOption(t *testing.T) {
	svc := newService(t)

	poll := validPoll("2026-09-30T23:59:59Z")
	poll.Options = poll.Options[:1]

	_, err := svc.Create(context.Background(), poll)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestCreate_RejectsPastExpiry(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), validPoll("2026-08-30T00:00:00Z"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestListActive_ExcludesExpiredEvenIfFlaggedActive(t *testing.T) {
	svc := newService(t)

	fresh, err := svc.Create(context.Background(), validPoll("2026-09-30T23:59:59Z"))
	require.NoError(t, err)

	soonExpired, err := svc.Create(context.Background(), validPoll("2026-08-31T10:00:00Z"))
	require.NoError(t, err)

	// Flip the second poll past its expiry without running the sweep by
	// shortening its window below the fixed clock.
	_, err = svc.Update(context.Background(), condoID, soonExpired.ID, &model.PollUpdate{
		ExpiresAt: "2026-08-31T09:00:00Z",
	})
	require.NoError(t, err)

	active, err := svc.ListActive(context.Background(), condoID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, fresh.ID, active[0].ID)
}

func TestExpirePolls_SweepsOnlyPastExpiry(t *testing.T) {
	svc := newService(t)

	fresh, err := svc.Create(context.Background(), validPoll("2026-09-30T23:59:59Z"))
	require.NoError(t, err)

	stale, err := svc.Create(context.Background(), validPoll("2026-09-01T00:00:00Z"))
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), condoID, stale.ID, &model.PollUpdate{
		ExpiresAt: "2026-08-31T09:00:00Z",
	})
	require.NoError(t, err)

	swept, err := svc.ExpirePolls(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	sweptPoll, err := svc.Get(context.Background(), condoID, stale.ID)
	require.NoError(t, err)
	assert.False(t, sweptPoll.IsActive)

	freshPoll, err := svc.Get(context.Background(), condoID, fresh.ID)
	require.NoError(t, err)
	assert.True(t, freshPoll.IsActive)
}

func TestExpirePolls_Idempotent(t *testing.T) {
	svc := newService(t)

	stale, err := svc.Create(context.Background(), validPoll("2026-09-01T00:00:00Z"))
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), condoID, stale.ID, &model.PollUpdate{
		ExpiresAt: "2026-08-31T09:00:00Z",
	})
	require.NoError(t, err)

	first, err := svc.ExpirePolls(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := svc.ExpirePolls(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second)
}

func TestUpdate_ScopedToCondominium(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validPoll("2026-09-30T23:59:59Z"))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "other-condo", created.ID, &model.PollUpdate{
		Title: "Novo título",
	})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDelete_RemovesPoll(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), validPoll("2026-09-30T23:59:59Z"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), condoID, created.ID))

	_, err = svc.Get(context.Background(), condoID, created.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
