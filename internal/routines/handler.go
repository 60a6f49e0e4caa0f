package routines

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
	r.HandleFunc("/routines", h.HandleList).Methods("GET", "OPTIONS").Name("list-routines")
	r.HandleFunc("/routines", h.HandleCreate).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/routines/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-routine")
	r.HandleFunc("/routines/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-routine")
	r.HandleFunc("/routines/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-routine")
}

type routineRequest struct {
	Name      string                    `json:"name"`
	Exercises []workout.WorkoutExercise `json:"exercises"`
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.list")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	list, err := h.service.List(ctx, user.ID)
	if err != nil {
		log.Errorf("list routines for [%s]: %s", user.ID, err)
		http.Error(w, "failed to list routines", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []workout.Workout{}
	}
	pkg.WriteJSONResponse(w, list, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.create")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req routineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(ctx, user.ID, req.Name, req.Exercises)
	if err != nil {
		writeError(w, "create routine", err)
		return
	}
	pkg.WriteJSONResponse(w, created, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.get")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	routine, err := h.service.GetWorkoutByID(ctx, user.ID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get routine", err)
		return
	}
	pkg.WriteJSONResponse(w, routine, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.update")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req routineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(ctx, user.ID, mux.Vars(r)["id"], req.Name, req.Exercises)
	if err != nil {
		writeError(w, "update routine", err)
		return
	}
	pkg.WriteJSONResponse(w, updated, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.delete")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if err := h.service.Delete(ctx, user.ID, mux.Vars(r)["id"]); err != nil {
		writeError(w, "delete routine", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrRoutineNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrNoExercises):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUpgradeRequired):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, ErrRoutineExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrUnknownOwner):
		// account removed while its token is still alive
		http.Error(w, "no can do", http.StatusUnauthorized)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
