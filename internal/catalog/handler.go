package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"
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
	r.HandleFunc("/exercises", h.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises/search", h.HandleSearch).Methods("GET", "OPTIONS").Name("search-exercises")
	r.HandleFunc("/exercises", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-exercise")
	// public, builtin exercises only
	r.HandleFunc("/catalog/exercises", h.HandlePublicList).Methods("GET", "OPTIONS").Name("public-exercises")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.list")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	h.writeExercises(ctx, w, user.ID, "")
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.search")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	h.writeExercises(ctx, w, user.ID, r.URL.Query().Get("q"))
}

func (h *Handler) HandlePublicList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.public-list")
	defer span.End()

	// empty user id only matches rows with no owner
	h.writeExercises(ctx, w, "", r.URL.Query().Get("q"))
}

func (h *Handler) writeExercises(ctx context.Context, w http.ResponseWriter, userID, query string) {
	exercises, err := h.service.SearchExercises(ctx, userID, query)
	if err != nil {
		log.Errorf("search exercises [%s]: %s", query, err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, exercises, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.create")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var ex workout.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateCustom(ctx, user.ID, ex)
	switch {
	case errors.Is(err, ErrEmptyName):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrExerciseExists):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Errorf("create exercise for [%s]: %s", user.ID, err)
		http.Error(w, "failed to create exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, created, http.StatusCreated)
}
