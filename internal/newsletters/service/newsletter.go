package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"condohub/internal/newsletters/repository"
	"condohub/pkg/clock"
	apperrors "condohub/pkg/errors"
	"condohub/pkg/logger"
	"condohub/pkg/model"
	"condohub/pkg/notify"
	"condohub/pkg/sanitize"

	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidNewsletter  = "Dados do comunicado inválidos."
	MsgNewsletterNotFound = "Comunicado não encontrado ou sem dados."
)

type NewsletterService interface {
	Create(ctx context.Context, newsletter *model.Newsletter) (*model.Newsletter, error)
	ListByCondominium(ctx context.Context, condominiumID string) ([]model.Newsletter, error)
	Delete(ctx context.Context, condominiumID, id string) error
}

type newsletterService struct {
	repo      repository.NewsletterRepository
	validate  *validator.Validate
	publisher notify.Publisher
	clock     clock.Clock
	log       *logger.Logger
}

func NewNewsletterService(
	repo repository.NewsletterRepository,
	publisher notify.Publisher,
	clk clock.Clock,
	log *logger.Logger,
) NewsletterService {
	return &newsletterService{
		repo:      repo,
		validate:  validator.New(),
		publisher: publisher,
		clock:     clk,
		log:       log,
	}
}

func (s *newsletterService) Create(ctx context.Context, newsletter *model.Newsletter) (*model.Newsletter, error) {
	newsletter.Title = sanitize.Name(newsletter.Title)
	newsletter.Description = sanitize.Text(newsletter.Description)

	if err := s.validate.Struct(newsletter); err != nil {
		var fieldErrors validator.ValidationErrors
		details := map[string]any{}
		if errors.As(err, &fieldErrors) {
			for _, fieldErr := range fieldErrors {
				details[fieldErr.Field()] = "valor inválido"
			}
		}
		s.log.Warn("Newsletter validation failed", "title", newsletter.Title, "error", err)
		return nil, apperrors.Validation(MsgInvalidNewsletter, details)
	}

	newsletter.CreatedAt = s.clock.Now().UTC().Format(time.RFC3339)

	if _, err := s.repo.Create(ctx, newsletter); err != nil {
		s.log.Error("Failed to create newsletter", "title", newsletter.Title, "error", err)
		return nil, apperrors.Internal("Falha ao criar o comunicado.", err)
	}

	// Residents are notified out of band; a broker hiccup must not undo the post.
	if err := s.publisher.Publish(ctx, notify.EventNewsletterPublished, newsletter.CondominiumID, newsletter); err != nil {
		s.log.Warn("Failed to publish newsletter event",
			"newsletter_id", newsletter.ID,
			"error", err,
		)
	}

	s.log.Info("Newsletter published", "newsletter_id", newsletter.ID, "condominium_id", newsletter.CondominiumID)
	return newsletter, nil
}

func (s *newsletterService) ListByCondominium(ctx context.Context, condominiumID string) ([]model.Newsletter, error) {
	newsletters, err := s.repo.ListByCondominium(ctx, condominiumID)
	if err != nil {
		return nil, apperrors.Internal("Falha ao listar os comunicados.", err)
	}
	if newsletters == nil {
		newsletters = []model.Newsletter{}
	}
	// Newest first; ISO timestamps sort lexicographically.
	sort.Slice(newsletters, func(i, j int) bool {
		return newsletters[i].CreatedAt > newsletters[j].CreatedAt
	})
	return newsletters, nil
}

func (s *newsletterService) Delete(ctx context.Context, condominiumID, id string) error {
	newsletter, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(MsgNewsletterNotFound)
		}
		return apperrors.Internal("Falha ao consultar o comunicado.", err)
	}
	if newsletter.CondominiumID != condominiumID {
		return apperrors.NotFound(MsgNewsletterNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(MsgNewsletterNotFound)
		}
		return apperrors.Internal("Falha ao excluir o comunicado.", err)
	}

	s.log.Info("Newsletter deleted", "newsletter_id", id)
	return nil
}
