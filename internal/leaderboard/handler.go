package leaderboard

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/auth"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=leaderboard_test

type leaderboardService interface {
	Query(ctx context.Context, q Query) (*Page, error)
}

type GlobalResponse struct {
	Leaderboard []Row  `json:"leaderboard"`
	Total       int    `json:"total"`
	Pages       int    `json:"pages"`
	CurrentPage int    `json:"current_page"`
	MuscleGroup string `json:"muscle_group"`
}

type FriendsResponse struct {
	Leaderboard []Row  `json:"leaderboard"`
	MuscleGroup string `json:"muscle_group"`
}

type Handler struct {
	service leaderboardService
}

func NewHandler(service leaderboardService) *Handler {
	return &Handler{
		service: service,
	}
}

// parseQuery reads the shared leaderboard params. Malformed numbers are rejected,
// never replaced by defaults.
func parseQuery(r *http.Request, scope Scope, requesterID int) (Query, error) {
	q := Query{
		Scope:       scope,
		MuscleGroup: strings.TrimSpace(r.URL.Query().Get("muscle_group")),
		RequesterID: requesterID,
	}
	if q.MuscleGroup == "" {
		q.MuscleGroup = Overall
	}

	var err error
	if q.MinAge, err = pkg.QueryOptionalInt(r, "min_age"); err != nil {
		return Query{}, err
	}
	if q.MaxAge, err = pkg.QueryOptionalInt(r, "max_age"); err != nil {
		return Query{}, err
	}
	if q.Page, err = pkg.QueryInt(r, "page", DefaultPage); err != nil {
		return Query{}, err
	}
	if q.PerPage, err = pkg.QueryInt(r, "per_page", DefaultPerPage); err != nil {
		return Query{}, err
	}
	return q, nil
}

func (handler *Handler) HandleGlobal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.global")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	q, err := parseQuery(r, ScopeGlobal, userID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := handler.service.Query(ctx, q)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, GlobalResponse{
		Leaderboard: page.Rows,
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.Page,
		MuscleGroup: page.MuscleGroup,
	}, http.StatusOK)
}

func (handler *Handler) HandleFriends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.friends")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	q, err := parseQuery(r, ScopeFriends, userID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := handler.service.Query(ctx, q)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}

	pkg.WriteJSON(w, FriendsResponse{
		Leaderboard: page.Rows,
		MuscleGroup: page.MuscleGroup,
	}, http.StatusOK)
}
