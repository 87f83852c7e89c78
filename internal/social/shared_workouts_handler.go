package social

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=shared_workouts_handler_mocks_test.go -package=social_test

type CreateSharedWorkoutBody struct {
	WorkoutName *string `json:"workout_name"`
}

type SharedWorkoutResponse struct {
	Message         string `json:"message"`
	SharedWorkoutID int    `json:"shared_workout_id"`
}

type sharedWorkoutsService interface {
	List(ctx context.Context, userID int) ([]SharedWorkout, error)
	Create(ctx context.Context, userID int, name string) (int, error)
	Join(ctx context.Context, userID, sharedWorkoutID int) error
}

type SharedWorkoutsHandler struct {
	service sharedWorkoutsService
}

func NewSharedWorkoutsHandler(service sharedWorkoutsService) *SharedWorkoutsHandler {
	return &SharedWorkoutsHandler{
		service: service,
	}
}

func (handler *SharedWorkoutsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.list_shared_workouts")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sessions, err := handler.service.List(ctx, userID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, sessions, http.StatusOK)
}

func (handler *SharedWorkoutsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.create_shared_workout")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body CreateSharedWorkoutBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Tracef("shared workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid shared workout json", http.StatusBadRequest)
		return
	}
	if body.WorkoutName == nil {
		pkg.WriteJSONError(w, "Missing required field: workout_name", http.StatusBadRequest)
		return
	}

	id, err := handler.service.Create(ctx, userID, *body.WorkoutName)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, SharedWorkoutResponse{
		Message:         "Shared workout created successfully",
		SharedWorkoutID: id,
	}, http.StatusCreated)
}

func (handler *SharedWorkoutsHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.join_shared_workout")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sharedWorkoutID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Join(ctx, userID, sharedWorkoutID); err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, SharedWorkoutResponse{
		Message:         "Joined shared workout successfully",
		SharedWorkoutID: sharedWorkoutID,
	}, http.StatusOK)
}
