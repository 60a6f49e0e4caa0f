package counters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type identity interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
}

type Handler struct {
	service  *Service
	identity identity
}

func NewHandler(service *Service, identity identity) *Handler {
	return &Handler{
		service:  service,
		identity: identity,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/counters", h.HandleList).Methods("GET", "OPTIONS").Name("list-counters")
	r.HandleFunc("/counters", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-counter")
	r.HandleFunc("/counters/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-counter")
	r.HandleFunc("/counters/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-counter")
	r.HandleFunc("/counters/{id}/increment", h.HandleIncrement).Methods("POST", "OPTIONS").Name("increment-counter")
	r.HandleFunc("/counters/{id}/decrement", h.HandleDecrement).Methods("POST", "OPTIONS").Name("decrement-counter")
	r.HandleFunc("/counters/{id}/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("counter-stats")
}

type nameRequest struct {
	Name string `json:"name"`
}

type amountRequest struct {
	Amount int `json:"amount"`
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, err := h.identity.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return "", false
	}
	return user.ID, true
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.counters.list")
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	counters, err := h.service.List(ctx, userID)
	if err != nil {
		log.Errorf("list counters for [%s]: %s", userID, err)
		http.Error(w, "failed to list counters", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, counters, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.counters.create")
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Create(ctx, userID, req.Name)
	if err != nil {
		h.writeError(w, "create counter", err)
		return
	}
	pkg.WriteJSONResponse(w, c, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.counters.update")
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.service.Update(ctx, userID, mux.Vars(r)["id"], req.Name)
	if err != nil {
		h.writeError(w, "update counter", err)
		return
	}
	pkg.WriteJSONResponse(w, c, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.counters.delete")
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, userID, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, "delete counter", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	h.handleStep(w, r, "handler.counters.increment", h.service.Increment)
}

func (h *Handler) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	h.handleStep(w, r, "handler.counters.decrement", h.service.Decrement)
}

func (h *Handler) handleStep(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	step func(ctx context.Context, userID, id string, amount int) (*Counter, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	// empty body means a step of one
	req := amountRequest{Amount: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	c, err := step(ctx, userID, mux.Vars(r)["id"], req.Amount)
	if err != nil {
		h.writeError(w, spanName, err)
		return
	}
	pkg.WriteJSONResponse(w, c, http.StatusOK)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.counters.stats")
	defer span.End()

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, "counter stats", err)
		return
	}
	pkg.WriteJSONResponse(w, stats, http.StatusOK)
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrCounterNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrConcurrentUpdate):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
