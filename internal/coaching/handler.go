package coaching

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=coaching_test

type advisor interface {
	Recommendations(ctx context.Context, userID int) ([]Recommendation, error)
	Progress(ctx context.Context, userID int, period Period) (*Progress, error)
}

type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type Handler struct {
	advisor advisor
}

func NewHandler(advisor advisor) *Handler {
	return &Handler{
		advisor: advisor,
	}
}

func (handler *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.recommendations")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	recommendations, err := handler.advisor.Recommendations(ctx, userID)
	if errors.Is(err, apperr.ErrNoData) {
		pkg.WriteJSONMessage(w, NoRecommendationsMessage, http.StatusOK)
		return
	}
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, RecommendationsResponse{
		Recommendations: recommendations,
	}, http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.progress")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	period, err := ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	progress, err := handler.advisor.Progress(ctx, userID, period)
	if errors.Is(err, apperr.ErrNoData) {
		pkg.WriteJSONMessage(w, NoProgressMessage, http.StatusOK)
		return
	}
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, progress, http.StatusOK)
}
