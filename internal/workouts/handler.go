package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

type workoutsRepo interface {
	List(ctx context.Context, params ListParams) (_ []Workout, total int, err error)
	Get(ctx context.Context, id int) (*Workout, error)
	Create(ctx context.Context, workout *Workout) (int, error)
	Update(ctx context.Context, workout *Workout, replaceExercises bool) error
	Delete(ctx context.Context, id int) error
	ListCatalog(ctx context.Context, filter CatalogFilter) ([]CatalogExercise, error)
}

type recomputer interface {
	Recompute(ctx context.Context, userID int) error
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
	Pages    int       `json:"pages"`
}

type MutationResponse struct {
	Message   string `json:"message"`
	WorkoutID int    `json:"workout_id,omitempty"`
}

type Handler struct {
	repo       workoutsRepo
	recomputer recomputer
}

func NewHandler(repo workoutsRepo, recomputer recomputer) *Handler {
	return &Handler{
		repo:       repo,
		recomputer: recomputer,
	}
}

// recompute refreshes the user's rankings after a committed ledger change. The ledger
// change stands even if this fails; the next successful recompute catches up.
func (handler *Handler) recompute(ctx context.Context, userID int) {
	if err := handler.recomputer.Recompute(ctx, userID); err != nil {
		log.Errorf("recompute rankings for user %d after workout change: %s", userID, err)
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, err := pkg.QueryInt(r, "page", 1)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	perPage, err := pkg.QueryInt(r, "per_page", 10)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if page < 1 || perPage < 1 {
		pkg.WriteJSONError(w, "page and per_page must be positive integers", http.StatusBadRequest)
		return
	}

	workouts, total, err := handler.repo.List(ctx, ListParams{
		UserID:  userID,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}
	if workouts == nil {
		workouts = []Workout{}
	}

	pkg.WriteJSON(w, ListResponse{
		Workouts: workouts,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		Pages:    int(math.Ceil(float64(total) / float64(perPage))),
	}, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid workout json", http.StatusBadRequest)
		return
	}

	workout, err := req.ToWorkout(userID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	id, err := handler.repo.Create(ctx, workout)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}
	span.SetAttributes(attribute.Int("workout.id", id))
	log.Debugf("new workout %d added for user %d", id, userID)

	handler.recompute(ctx, userID)

	pkg.WriteJSON(w, MutationResponse{
		Message:   "Workout created successfully",
		WorkoutID: id,
	}, http.StatusCreated)
}

// ownedWorkout loads the workout from the {id} path var. Another user's workout is
// reported as not found.
func (handler *Handler) ownedWorkout(ctx context.Context, r *http.Request, userID int) (*Workout, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, fmt.Errorf("workout id must be a number: %w", apperr.ErrValidation)
	}

	workout, err := handler.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		log.Debugf("user %d tried to access workout %d of user %d", userID, id, workout.UserID)
		return nil, fmt.Errorf("workout %d: %w", id, apperr.ErrNotFound)
	}

	return workout, nil
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workout, err := handler.ownedWorkout(ctx, r, userID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid workout json", http.StatusBadRequest)
		return
	}

	workout, err := handler.ownedWorkout(ctx, r, userID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	replaceExercises, err := req.ApplyTo(workout)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	if err := handler.repo.Update(ctx, workout, replaceExercises); err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	handler.recompute(ctx, userID)

	pkg.WriteJSON(w, MutationResponse{
		Message:   "Workout updated successfully",
		WorkoutID: workout.ID,
	}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	workout, err := handler.ownedWorkout(ctx, r, userID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	if err := handler.repo.Delete(ctx, workout.ID); err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	handler.recompute(ctx, userID)

	pkg.WriteJSONMessage(w, "Workout deleted successfully", http.StatusOK)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list_exercises")
	defer span.End()

	exercises, err := handler.repo.ListCatalog(ctx, CatalogFilter{
		MuscleGroup: strings.TrimSpace(r.URL.Query().Get("muscle_group")),
		Search:      strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}
