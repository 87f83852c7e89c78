package ranking

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	"github.com/gorilla/mux"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=ranking_test

type rankingsService interface {
	Recompute(ctx context.Context, userID int) error
	UserRankings(ctx context.Context, userID int) ([]Ranking, error)
}

type UserRankingsResponse struct {
	UserID   int       `json:"user_id"`
	Rankings []Ranking `json:"rankings"`
}

type Handler struct {
	service rankingsService
}

func NewHandler(service rankingsService) *Handler {
	return &Handler{
		service: service,
	}
}

func userIDVar(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("user id must be a positive number: %w", apperr.ErrValidation)
	}
	return id, nil
}

func (handler *Handler) HandleUserRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ranking.user_rankings")
	defer span.End()

	userID, err := userIDVar(r)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	rankings, err := handler.service.UserRankings(ctx, userID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, UserRankingsResponse{
		UserID:   userID,
		Rankings: rankings,
	}, http.StatusOK)
}

// HandleRecompute lets users force a recompute of their own rankings.
func (handler *Handler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ranking.recompute")
	defer span.End()

	requesterID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := userIDVar(r)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}
	if userID != requesterID {
		apperr.WriteHTTP(w, fmt.Errorf("cannot recompute rankings of another user: %w", apperr.ErrForbidden))
		return
	}

	if err := handler.service.Recompute(ctx, userID); err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	rankings, err := handler.service.UserRankings(ctx, userID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, UserRankingsResponse{
		UserID:   userID,
		Rankings: rankings,
	}, http.StatusOK)
}
