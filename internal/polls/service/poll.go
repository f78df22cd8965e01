package service

import (
	"context"
	"errors"
	"time"

	"condohub/internal/polls/repository"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/sanitize"
	"condohub/pkg/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	MsgInvalidPoll  = "Dados da enquete inválidos."
	MsgPollNotFound = "Enquete não encontrada ou sem dados."
)

type PollService interface {
	Create(ctx context.Context, poll *model.Poll) (*model.Poll, error)
	Get(ctx context.Context, condominiumID, id string) (*model.Poll, error)
	ListActive(ctx context.Context, condominiumID string) ([]model.Poll, error)
	Update(ctx context.Context, condominiumID, id string, updates *model.PollUpdate) (*model.Poll, error)
	Delete(ctx context.Context, condominiumID, id string) error
	// ExpirePolls flips is_active off on every poll past its expiry and
	// returns how many were swept.
	ExpirePolls(ctx context.Context) (int, error)
}

type pollService struct {
	repo     repository.PollRepository
	validate *validator.Validate
	clock    clock.Clock
	log      *logger.Logger
}

func NewPollService(repo repository.PollRepository, clk clock.Clock, log *logger.Logger) PollService {
	return &pollService{
		repo:     repo,
		validate: validator.New(),
		clock:    clk,
		log:      log,
	}
}

func (s *pollService) Create(ctx context.Context, poll *model.Poll) (*model.Poll, error) {
	poll.Title = sanitize.Name(poll.Title)
	poll.Description = sanitize.Text(poll.Description)
	for i := range poll.Options {
		poll.Options[i].Text = sanitize.Name(poll.Options[i].Text)
		poll.Options[i].ID = uuid.NewString()
		poll.Options[i].Votes = 0
	}

	if details, err := s.check(poll); err != nil {
		s.log.Warn("Poll validation failed", "title", poll.Title, "error", err)
		return nil, apperrors.Validation(MsgInvalidPoll, details)
	}

	now := s.clock.Now().UTC()
	if poll.ExpiresAt <= now.Format(time.RFC3339) {
		return nil, apperrors.Validation(MsgInvalidPoll, map[string]any{
			"expires_at": "expiração deve ser uma data futura",
		})
	}

	poll.CreatedAt = now.Format(time.RFC3339)
	poll.IsActive = true

	if _, err := s.repo.Create(ctx, poll); err != nil {
		s.log.Error("Failed to create poll", "title", poll.Title, "error", err)
		return nil, apperrors.Internal("Falha ao criar a enquete.", err)
	}

	s.log.Info("Poll created", "poll_id", poll.ID, "condominium_id", poll.CondominiumID, "expires_at", poll.ExpiresAt)
	return poll, nil
}

func (s *pollService) Get(ctx context.Context, condominiumID, id string) (*model.Poll, error) {
	poll, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(MsgPollNotFound)
		}
		return nil, apperrors.Internal("Falha ao consultar a enquete.", err)
	}
	if poll.CondominiumID != condominiumID {
		return nil, apperrors.NotFound(MsgPollNotFound)
	}
	return poll, nil
}

func (s *pollService) ListActive(ctx context.Context, condominiumID string) ([]model.Poll, error) {
	now := s.clock.Now().UTC().Format(time.RFC3339)
	polls, err := s.repo.ListActive(ctx, condominiumID, now)
	if err != nil {
		return nil, apperrors.Internal("Falha ao listar as enquetes.", err)
	}
	if polls == nil {
		polls = []model.Poll{}
	}
	return polls, nil
}

func (s *pollService) Update(ctx context.Context, condominiumID, id string, updates *model.PollUpdate) (*model.Poll, error) {
	if err := s.validate.Struct(updates); err != nil {
		s.log.Warn("Poll update validation failed", "poll_id", id, "error", err)
		return nil, apperrors.Validation(MsgInvalidPoll, nil)
	}

	if _, err := s.Get(ctx, condominiumID, id); err != nil {
		return nil, err
	}

	partial := store.Record{}
	if updates.Title != "" {
		partial["title"] = sanitize.Name(updates.Title)
	}
	if updates.Description != "" {
		partial["description"] = sanitize.Text(updates.Description)
	}
	if updates.Options != nil {
		options := make([]any, 0, len(*updates.Options))
		for _, option := range *updates.Options {
			optionID := option.ID
			if optionID == "" {
				optionID = uuid.NewString()
			}
			options = append(options, map[string]any{
				"id":    optionID,
				"text":  sanitize.Name(option.Text),
				"votes": option.Votes,
			})
		}
		partial["options"] = options
	}
	if updates.ExpiresAt != "" {
		partial["expires_at"] = updates.ExpiresAt
	}
	if updates.IsActive != nil {
		partial["is_active"] = *updates.IsActive
	}
	if len(partial) == 0 {
		return nil, apperrors.InvalidInput("Nenhum campo para atualizar.")
	}

	if err := s.repo.Update(ctx, id, partial); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(MsgPollNotFound)
		}
		return nil, apperrors.Internal("Falha ao atualizar a enquete.", err)
	}

	return s.Get(ctx, condominiumID, id)
}

func (s *pollService) Delete(ctx context.Context, condominiumID, id string) error {
	if _, err := s.Get(ctx, condominiumID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(MsgPollNotFound)
		}
		return apperrors.Internal("Falha ao excluir a enquete.", err)
	}

	s.log.Info("Poll deleted", "poll_id", id)
	return nil
}

func (s *pollService) ExpirePolls(ctx context.Context) (int, error) {
	now := s.clock.Now().UTC().Format(time.RFC3339)

	expired, err := s.repo.ListExpiredActive(ctx, now)
	if err != nil {
		return 0, apperrors.Internal("Falha ao varrer as enquetes expiradas.", err)
	}

	swept := 0
	for _, poll := range expired {
		if err := s.repo.Update(ctx, poll.ID, store.Record{"is_active": false}); err != nil {
			s.log.Error("Failed to expire poll", "poll_id", poll.ID, "error", err)
			continue
		}
		swept++
	}

	if swept > 0 {
		s.log.Info("Expired polls swept", "count", swept)
	}
	return swept, nil
}

func (s *pollService) check(poll *model.Poll) (map[string]any, error) {
	err := s.validate.Struct(poll)
	if err == nil {
		return nil, nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil, err
	}

	details := map[string]any{}
	for _, fieldErr := range fieldErrors {
		switch fieldErr.Tag() {
		case "required":
			details[fieldErr.Field()] = "campo obrigatório"
		case "min":
			details[fieldErr.Field()] = "quantidade mínima não atingida"
		default:
			details[fieldErr.Field()] = "valor inválido"
		}
	}
	return details, err
}
