package handler

import (
	"encoding/json"
	"net/http"

	"condohub/internal/polls/service"
	"condohub/pkg/auth"
	apperrors "condohub/pkg/errors"
	httputil "condohub/pkg/http"
	"condohub/pkg/logger"
	"condohub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PollHandler struct {
	service service.PollService
	log     *logger.Logger
}

func NewPollHandler(service service.PollService, log *logger.Logger) *PollHandler {
	return &PollHandler{
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

func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var poll model.Poll
	if err := json.NewDecoder(r.Body).Decode(&poll); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Corpo da requisição inválido.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if poll.CondominiumID == "" {
		poll.CondominiumID = condominiumOf(r)
	}

	created, err := h.service.Create(r.Context(), &poll)
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

func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	poll, err := h.service.Get(r.Context(), condominiumOf(r), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, poll); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PollHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	condominiumID := condominiumOf(r)
	if condominiumID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Parâmetro condominium_id é obrigatório.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	polls, err := h.service.ListActive(r.Context(), condominiumID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, polls); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PollUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Corpo da requisição inválido.")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	updated, err := h.service.Update(r.Context(), condominiumOf(r), ps.ByName("id"), &updates)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), condominiumOf(r), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// Expire runs the expiry sweep on demand. In production a scheduler hits
// this endpoint; it is idempotent.
func (h *PollHandler) Expire(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	swept, err := h.service.ExpirePolls(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Expire", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]int{"expired": swept}); err != nil {
		h.log.Error("failed to write success response", "handler", "Expire", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PollHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/polls", h.Create)
	router.GET("/api/v1/polls", h.List)
	router.GET("/api/v1/polls/:id", h.Get)
	router.PATCH("/api/v1/polls/:id", h.Update)
	router.DELETE("/api/v1/polls/:id", h.Delete)
	router.POST("/api/v1/polls/expire", h.Expire)
}
