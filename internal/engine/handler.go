package engine

import (
	"context"
	"encoding/json"
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

type identity interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
}

type Handler struct {
	manager  *Manager
	identity identity
}

func NewHandler(manager *Manager, identity identity) *Handler {
	return &Handler{
		manager:  manager,
		identity: identity,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/session", h.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/session/status", h.HandleCompletionStatus).Methods("GET", "OPTIONS").Name("session-status")
	r.HandleFunc("/session/start", h.HandleStart).Methods("POST", "OPTIONS").Name("start-session")
	r.HandleFunc("/session/conflict/{resolution}", h.HandleResolveConflict).Methods("POST", "OPTIONS").Name("resolve-conflict")

	r.HandleFunc("/session/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-exercise")
	r.HandleFunc("/session/exercises/{exid}", h.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-exercise")
	r.HandleFunc("/session/exercises/{exid}/sets", h.HandleAddSet).Methods("POST", "OPTIONS").Name("add-set")
	r.HandleFunc("/session/exercises/{exid}/sets/{set}", h.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")
	r.HandleFunc("/session/exercises/{exid}/sets/{set}", h.HandleUpdateSet).Methods("PUT", "OPTIONS").Name("update-set")
	r.HandleFunc("/session/exercises/{exid}/notes", h.HandleUpdateNotes).Methods("PUT", "OPTIONS").Name("update-notes")
	r.HandleFunc("/session/exercises/{exid}/superset", h.HandleSuperset).Methods("POST", "OPTIONS").Name("toggle-superset")
	r.HandleFunc("/session/exercises/{exid}/dropset", h.HandleDropset).Methods("POST", "OPTIONS").Name("toggle-dropset")
	r.HandleFunc("/session/exercises/{exid}/replace", h.HandleReplace).Methods("POST", "OPTIONS").Name("replace-exercise")
	r.HandleFunc("/session/replace/confirm", h.HandleConfirmReplace).Methods("POST", "OPTIONS").Name("confirm-replace")
	r.HandleFunc("/session/replace/cancel", h.HandleCancelReplace).Methods("POST", "OPTIONS").Name("cancel-replace")

	r.HandleFunc("/session/reorder", h.HandleReorder).Methods("POST", "OPTIONS").Name("reorder-exercises")
	r.HandleFunc("/session/reorder/start", h.HandleArrange).Methods("POST", "OPTIONS").Name("arrange-exercises")
	r.HandleFunc("/session/reorder/done", h.HandleExitReorder).Methods("POST", "OPTIONS").Name("exit-reorder")

	r.HandleFunc("/session/finish", h.HandleFinish).Methods("POST", "OPTIONS").Name("finish-session")
	r.HandleFunc("/session/finish/confirm", h.HandleConfirmFinish).Methods("POST", "OPTIONS").Name("confirm-finish")
	r.HandleFunc("/session/finish/cancel", h.HandleCancelFinish).Methods("POST", "OPTIONS").Name("cancel-finish")
	r.HandleFunc("/session/routine/update", h.HandleUpdateRoutine).Methods("POST", "OPTIONS").Name("update-routine-from-session")
	r.HandleFunc("/session/routine/dismiss", h.HandleDismissRoutineUpdate).Methods("POST", "OPTIONS").Name("dismiss-routine-update")
	r.HandleFunc("/session/discard", h.HandleDiscard).Methods("POST", "OPTIONS").Name("discard-session")
	r.HandleFunc("/session/pause", h.HandlePause).Methods("POST", "OPTIONS").Name("pause-session")
	r.HandleFunc("/session/resume", h.HandleResume).Methods("POST", "OPTIONS").Name("resume-session")
	r.HandleFunc("/session/save-routine", h.HandleSaveRoutine).Methods("POST", "OPTIONS").Name("save-as-routine")
}

type setUpdateRequest struct {
	Weight    *float64 `json:"weight"`
	Reps      *int     `json:"reps"`
	Distance  *float64 `json:"distance"`
	Time      *int     `json:"time"`
	Completed *bool    `json:"completed"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type conflictResponse struct {
	Error    string         `json:"error"`
	Conflict *ConflictError `json:"conflict"`
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, err := h.identity.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return "", false
	}
	return user.ID, true
}

// withEngine resolves the caller's engine, runs fn and answers with the fresh view.
func (h *Handler) withEngine(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, eng *Engine) error) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session."+op)
	defer span.End()

	userID, ok := h.userID(w, r.WithContext(ctx))
	if !ok {
		return
	}

	eng := h.manager.Current(ctx, userID)
	if err := fn(ctx, eng); err != nil {
		writeError(w, op, err)
		return
	}
	pkg.WriteJSONResponse(w, eng.View(), http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "get", func(context.Context, *Engine) error {
		return nil
	})
}

func (h *Handler) HandleCompletionStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.status")
	defer span.End()

	userID, ok := h.userID(w, r.WithContext(ctx))
	if !ok {
		return
	}
	pkg.WriteJSONResponse(w, h.manager.Current(ctx, userID).CompletionStatus(), http.StatusOK)
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.start")
	defer span.End()

	userID, ok := h.userID(w, r.WithContext(ctx))
	if !ok {
		return
	}

	var req StartRequest
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := h.manager.Start(ctx, userID, req)
	if err != nil {
		writeError(w, "start", err)
		return
	}
	pkg.WriteJSONResponse(w, eng.View(), http.StatusOK)
}

func (h *Handler) HandleResolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.resolve-conflict")
	defer span.End()

	userID, ok := h.userID(w, r.WithContext(ctx))
	if !ok {
		return
	}

	resolution, err := ParseResolution(mux.Vars(r)["resolution"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req StartRequest
	if err := decodeOptional(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	eng, err := h.manager.ResolveConflict(ctx, userID, req, resolution)
	if err != nil {
		writeError(w, "resolve-conflict", err)
		return
	}
	pkg.WriteJSONResponse(w, eng.View(), http.StatusOK)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	var exercise workout.Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.withEngine(w, r, "add-exercise", func(ctx context.Context, eng *Engine) error {
		return eng.AddExercise(ctx, exercise)
	})
}

func (h *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "remove-exercise", func(ctx context.Context, eng *Engine) error {
		return eng.RemoveExercise(ctx, mux.Vars(r)["exid"])
	})
}

func (h *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "add-set", func(ctx context.Context, eng *Engine) error {
		return eng.AddSet(ctx, mux.Vars(r)["exid"])
	})
}

func (h *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	setNumber, err := strconv.Atoi(mux.Vars(r)["set"])
	if err != nil {
		http.Error(w, "invalid set number", http.StatusBadRequest)
		return
	}
	h.withEngine(w, r, "delete-set", func(ctx context.Context, eng *Engine) error {
		return eng.DeleteSet(ctx, mux.Vars(r)["exid"], setNumber)
	})
}

// HandleUpdateSet applies each present field in turn; completion goes last
// so that a combined edit-and-complete ratchets the new values.
func (h *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	setNumber, err := strconv.Atoi(mux.Vars(r)["set"])
	if err != nil {
		http.Error(w, "invalid set number", http.StatusBadRequest)
		return
	}
	var req setUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	exerciseID := mux.Vars(r)["exid"]
	h.withEngine(w, r, "update-set", func(ctx context.Context, eng *Engine) error {
		if req.Weight != nil {
			if err := eng.UpdateWeight(ctx, exerciseID, setNumber, *req.Weight); err != nil {
				return err
			}
		}
		if req.Reps != nil {
			if err := eng.UpdateReps(ctx, exerciseID, setNumber, *req.Reps); err != nil {
				return err
			}
		}
		if req.Distance != nil {
			if err := eng.UpdateDistance(ctx, exerciseID, setNumber, *req.Distance); err != nil {
				return err
			}
		}
		if req.Time != nil {
			if err := eng.UpdateTime(ctx, exerciseID, setNumber, *req.Time); err != nil {
				return err
			}
		}
		if req.Completed != nil {
			return eng.SetCompleted(ctx, exerciseID, setNumber, *req.Completed)
		}
		return nil
	})
}

func (h *Handler) HandleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.withEngine(w, r, "update-notes", func(ctx context.Context, eng *Engine) error {
		return eng.UpdateNotes(ctx, mux.Vars(r)["exid"], req.Notes)
	})
}

func (h *Handler) HandleSuperset(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "superset", func(ctx context.Context, eng *Engine) error {
		return eng.AddToSuperset(ctx, mux.Vars(r)["exid"])
	})
}

func (h *Handler) HandleDropset(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "dropset", func(ctx context.Context, eng *Engine) error {
		return eng.ToggleDropset(ctx, mux.Vars(r)["exid"])
	})
}

func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "replace", func(ctx context.Context, eng *Engine) error {
		return eng.ReplaceExercise(ctx, mux.Vars(r)["exid"])
	})
}

func (h *Handler) HandleConfirmReplace(w http.ResponseWriter, r *http.Request) {
	var exercise workout.Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.withEngine(w, r, "confirm-replace", func(ctx context.Context, eng *Engine) error {
		return eng.ConfirmReplaceExercise(ctx, exercise)
	})
}

func (h *Handler) HandleCancelReplace(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "cancel-replace", func(ctx context.Context, eng *Engine) error {
		return eng.CancelReplaceExercise(ctx)
	})
}

func (h *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.withEngine(w, r, "reorder", func(ctx context.Context, eng *Engine) error {
		return eng.ReorderExercises(ctx, req.From, req.To)
	})
}

func (h *Handler) HandleArrange(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "arrange", func(ctx context.Context, eng *Engine) error {
		return eng.ArrangeExercise(ctx)
	})
}

func (h *Handler) HandleExitReorder(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "exit-reorder", func(ctx context.Context, eng *Engine) error {
		return eng.ExitReorderMode(ctx)
	})
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	h.writeFinish(w, r, "finish", (*Engine).RequestFinish)
}

func (h *Handler) HandleConfirmFinish(w http.ResponseWriter, r *http.Request) {
	h.writeFinish(w, r, "confirm-finish", (*Engine).ConfirmFinish)
}

func (h *Handler) writeFinish(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	finish func(eng *Engine, ctx context.Context) (*FinishResult, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session."+op)
	defer span.End()

	userID, ok := h.userID(w, r.WithContext(ctx))
	if !ok {
		return
	}

	result, err := finish(h.manager.Current(ctx, userID), ctx)
	if err != nil {
		writeError(w, op, err)
		return
	}
	pkg.WriteJSONResponse(w, result, http.StatusOK)
}

func (h *Handler) HandleCancelFinish(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "cancel-finish", func(_ context.Context, eng *Engine) error {
		eng.CancelFinish()
		return nil
	})
}

func (h *Handler) HandleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "update-routine", func(ctx context.Context, eng *Engine) error {
		return eng.UpdateRoutineFromSession(ctx)
	})
}

func (h *Handler) HandleDismissRoutineUpdate(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "dismiss-routine-update", func(_ context.Context, eng *Engine) error {
		eng.DismissRoutineUpdate()
		return nil
	})
}

func (h *Handler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "discard", func(ctx context.Context, eng *Engine) error {
		eng.Discard(ctx)
		return nil
	})
}

func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "pause", func(ctx context.Context, eng *Engine) error {
		return eng.Pause(ctx)
	})
}

func (h *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	h.withEngine(w, r, "resume", func(ctx context.Context, eng *Engine) error {
		return eng.Resume(ctx)
	})
}

func (h *Handler) HandleSaveRoutine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.save-routine")
	defer span.End()

	userID, ok := h.userID(w, r.WithContext(ctx))
	if !ok {
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.manager.Current(ctx, userID).SaveAsRoutine(ctx, req.Name)
	if err != nil {
		writeError(w, "save-routine", err)
		return
	}
	pkg.WriteJSONResponse(w, created, http.StatusCreated)
}

// decodeOptional accepts an empty body as the zero value.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, op string, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		pkg.WriteJSONResponse(w, conflictResponse{Error: conflict.Error(), Conflict: conflict}, http.StatusConflict)
	case errors.Is(err, auth.ErrUserNotAuthenticated), errors.Is(err, ErrUnknownOwner):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, ErrNoActiveSession), errors.Is(err, ErrRoutineNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoCompletedSets),
		errors.Is(err, ErrEmptyRoutineName),
		errors.Is(err, ErrNoExercises),
		errors.Is(err, ErrUnknownResolution):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUpgradeRequired):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, ErrNothingToConfirm),
		errors.Is(err, ErrSessionInProgress),
		errors.Is(err, ErrRoutineExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("session %s: %s", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
