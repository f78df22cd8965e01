package handler

import (
	"encoding/json"
	"net/http"

	"condohub/internal/newsletters/service"
	"condohub/pkg/auth"
	apperrors "condohub/pkg/errors"
	httputil "condohub/pkg/http"
	"condohub/pkg/logger"
	"condohub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type NewsletterHandler struct {
	service service.NewsletterService
	log     *logger.Logger
}

func NewNewsletterHandler(service service.NewsletterService, log *logger.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		service: service,
		log:     log,
	}
}

func condominiumOf(r *http.Request) string {
	if id := r.URL.Query().Get("condominium_id"); id != "" {
		return id
	}
	if principal, ok := auth.FromContext(r.Context()); ok {
		return principal.UID
	}
	return ""
}

func (h *NewsletterHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var newsletter model.Newsletter
	if err := json.NewDecoder(r.Body).Decode(&newsletter); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Corpo da requisição inválido.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if newsletter.CondominiumID == "" {
		newsletter.CondominiumID = condominiumOf(r)
	}

	created, err := h.service.Create(r.Context(), &newsletter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	condominiumID := condominiumOf(r)
	if condominiumID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Parâmetro condominium_id é obrigatório.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	newsletters, err := h.service.ListByCondominium(r.Context(), condominiumID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, newsletters); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *NewsletterHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), condominiumOf(r), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *NewsletterHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/newsletters", h.Create)
	router.GET("/api/v1/newsletters", h.List)
	router.DELETE("/api/v1/newsletters/:id", h.Delete)
}
