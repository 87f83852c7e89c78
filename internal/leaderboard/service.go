package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/ranking"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/internal/users"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=leaderboard_test

type rankingsRepo interface {
	GroupExists(ctx context.Context, muscleGroup string) (bool, error)
	Count(ctx context.Context, f Filter) (int, error)
	Rank(ctx context.Context, f Filter) ([]Entry, error)
}

type friendsRepo interface {
	AcceptedFriends(ctx context.Context, userID int) (map[int]bool, error)
}

type usersRepo interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type Service struct {
	repo    rankingsRepo
	friends friendsRepo
	users   usersRepo
	now     func() time.Time
}

// NewService creates the leaderboard service. A nil now defaults to time.Now; ages are
// computed against it.
func NewService(repo rankingsRepo, friends friendsRepo, users usersRepo, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		friends: friends,
		users:   users,
		now:     now,
	}
}

func validate(q Query) error {
	switch q.Scope {
	case ScopeGlobal:
		if q.Page < 1 {
			return fmt.Errorf("page must be at least 1, got %d: %w", q.Page, apperr.ErrValidation)
		}
		if q.PerPage < 1 {
			return fmt.Errorf("per_page must be at least 1, got %d: %w", q.PerPage, apperr.ErrValidation)
		}
		if q.PerPage > MaxPerPage {
			return fmt.Errorf("per_page must be at most %d, got %d: %w", MaxPerPage, q.PerPage, apperr.ErrValidation)
		}
	case ScopeFriends:
	default:
		return fmt.Errorf("unknown scope [%s]: %w", q.Scope, apperr.ErrValidation)
	}

	if q.MuscleGroup == "" {
		return fmt.Errorf("muscle group is required: %w", apperr.ErrValidation)
	}
	if q.MinAge != nil && *q.MinAge < 0 {
		return fmt.Errorf("min_age must not be negative: %w", apperr.ErrValidation)
	}
	if q.MaxAge != nil && *q.MaxAge < 0 {
		return fmt.Errorf("max_age must not be negative: %w", apperr.ErrValidation)
	}
	if q.MinAge != nil && q.MaxAge != nil && *q.MinAge > *q.MaxAge {
		return fmt.Errorf("min_age %d is greater than max_age %d: %w", *q.MinAge, *q.MaxAge, apperr.ErrValidation)
	}
	return nil
}

// Query validates q before touching any store, then builds the requested view.
func (s *Service) Query(ctx context.Context, q Query) (_ *Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.leaderboard.query")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("scope", string(q.Scope)),
		attribute.String("muscle_group", q.MuscleGroup),
		attribute.Int("user.id", q.RequesterID),
	)

	if err := validate(q); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, q.RequesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", q.RequesterID, apperr.ErrNotFound)
	}

	// a group nobody has a ranking in is unknown; a known group can still filter down to no rows
	if q.MuscleGroup != Overall {
		known, err := s.repo.GroupExists(ctx, q.MuscleGroup)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, fmt.Errorf("muscle group [%s]: %w", q.MuscleGroup, apperr.ErrNotFound)
		}
	}

	now := s.now()
	filter := Filter{MuscleGroup: q.MuscleGroup}
	if q.MinAge != nil {
		bornBefore := users.BornBefore(*q.MinAge, now)
		filter.BornBefore = &bornBefore
	}
	if q.MaxAge != nil {
		bornAfter := users.BornAfter(*q.MaxAge, now)
		filter.BornAfter = &bornAfter
	}

	if q.Scope == ScopeFriends {
		return s.friendsPage(ctx, q, filter, now)
	}
	return s.globalPage(ctx, q, filter, now)
}

func (s *Service) globalPage(ctx context.Context, q Query, filter Filter, now time.Time) (*Page, error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Rows:        []Row{},
		MuscleGroup: q.MuscleGroup,
		Total:       total,
		Pages:       (total + q.PerPage - 1) / q.PerPage,
		Page:        q.Page,
	}

	offset := (q.Page - 1) * q.PerPage
	if offset >= total {
		return page, nil
	}

	filter.Limit = q.PerPage
	filter.Offset = offset
	entries, err := s.repo.Rank(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		page.Rows = append(page.Rows, s.toRow(e, q, now))
	}
	return page, nil
}

func (s *Service) friendsPage(ctx context.Context, q Query, filter Filter, now time.Time) (*Page, error) {
	friends, err := s.friends.AcceptedFriends(ctx, q.RequesterID)
	if err != nil {
		return nil, err
	}

	filter.UserIDs = make([]int, 0, len(friends)+1)
	filter.UserIDs = append(filter.UserIDs, q.RequesterID)
	for id := range friends {
		filter.UserIDs = append(filter.UserIDs, id)
	}

	entries, err := s.repo.Rank(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Rows:        make([]Row, 0, len(entries)),
		MuscleGroup: q.MuscleGroup,
		Total:       len(entries),
		Pages:       1,
		Page:        1,
	}
	for _, e := range entries {
		row := s.toRow(e, q, now)
		if outgoing, ok := friends[e.UserID]; ok && !row.IsCurrentUser {
			row.IsOutgoing = &outgoing
		}
		page.Rows = append(page.Rows, row)
	}
	return page, nil
}

func (s *Service) toRow(e Entry, q Query, now time.Time) Row {
	tier := e.RankTier
	if q.MuscleGroup == Overall || tier == "" {
		tier = ranking.TierFor(e.MMRScore)
	}
	return Row{
		UserID:        e.UserID,
		Username:      e.Username,
		Age:           users.Age(e.DateOfBirth, now),
		MMRScore:      e.MMRScore,
		RankTier:      tier,
		IsCurrentUser: e.UserID == q.RequesterID,
	}
}
