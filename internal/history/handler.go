package history

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/workout"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxListLimit = 100

type historyRepo interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]workout.WorkoutHistory, error)
	Get(ctx context.Context, userID, id string) (*workout.WorkoutHistory, error)
}

type identity interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
}

type Handler struct {
	repo     historyRepo
	identity identity
}

func NewHandler(repo historyRepo, identity identity) *Handler {
	return &Handler{
		repo:     repo,
		identity: identity,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/history", h.HandleList).Methods("GET", "OPTIONS").Name("list-history")
	r.HandleFunc("/history/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-history")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.list")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	limit := DefaultLookback
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			http.Error(w, "error, limit invalid", http.StatusBadRequest)
			return
		}
	}
	limit = min(limit, maxListLimit)

	histories, err := h.repo.ListRecent(ctx, user.ID, limit)
	if err != nil {
		log.Errorf("list history for [%s]: %s", user.ID, err)
		http.Error(w, "failed to list history", http.StatusInternalServerError)
		return
	}
	if histories == nil {
		histories = []workout.WorkoutHistory{}
	}
	pkg.WriteJSONResponse(w, histories, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.history.get")
	defer span.End()

	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	entry, err := h.repo.Get(ctx, user.ID, mux.Vars(r)["id"])
	if errors.Is(err, ErrHistoryNotFound) {
		http.Error(w, "workout history not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("get history for [%s]: %s", user.ID, err)
		http.Error(w, "failed to get history", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponse(w, entry, http.StatusOK)
}
