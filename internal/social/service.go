package social

import (
	"context"
	"fmt"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=social_test

type friendsRepo interface {
	List(ctx context.Context, userID int, filter ListFilter) ([]Friend, error)
	Get(ctx context.Context, id int) (*Friendship, error)
	Create(ctx context.Context, userID, friendID int) (int, error)
	SetStatus(ctx context.Context, id int, status Status) error
}

type usersRepo interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type Service struct {
	repo  friendsRepo
	users usersRepo
}

func NewService(repo friendsRepo, users usersRepo) *Service {
	return &Service{
		repo:  repo,
		users: users,
	}
}

func ParseListFilter(s string) (ListFilter, error) {
	switch ListFilter(s) {
	case "":
		return ListAccepted, nil
	case ListAccepted, ListPending, ListAll:
		return ListFilter(s), nil
	default:
		return "", fmt.Errorf("invalid status [%s], use accepted, pending or all: %w", s, apperr.ErrValidation)
	}
}

func (s *Service) List(ctx context.Context, userID int, filter ListFilter) (_ []Friend, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.List(ctx, userID, filter)
}

// SendRequest creates a pending friend request from userID to friendID.
func (s *Service) SendRequest(ctx context.Context, userID, friendID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.send_request")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if friendID <= 0 {
		return 0, fmt.Errorf("friend id is required: %w", apperr.ErrValidation)
	}
	if friendID == userID {
		return 0, fmt.Errorf("cannot send friend request to yourself: %w", apperr.ErrValidation)
	}

	exists, err := s.users.Exists(ctx, friendID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("user %d: %w", friendID, apperr.ErrNotFound)
	}

	id, err := s.repo.Create(ctx, userID, friendID)
	if err != nil {
		return 0, err
	}

	log.Debugf("friend request %d sent: %d -> %d", id, userID, friendID)
	return id, nil
}

// Respond accepts or rejects a pending request addressed to userID.
func (s *Service) Respond(ctx context.Context, userID, friendshipID int, action string) (_ Status, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.respond")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var status Status
	switch action {
	case "accept":
		status = StatusAccepted
	case "reject":
		status = StatusRejected
	case "":
		return "", fmt.Errorf("action is required (accept or reject): %w", apperr.ErrValidation)
	default:
		return "", fmt.Errorf("invalid action [%s], use accept or reject: %w", action, apperr.ErrValidation)
	}

	friendship, err := s.repo.Get(ctx, friendshipID)
	if err != nil {
		return "", err
	}
	if friendship.FriendID != userID {
		return "", fmt.Errorf("friend request %d is not addressed to user %d: %w", friendshipID, userID, apperr.ErrForbidden)
	}
	if friendship.Status != StatusPending {
		return "", fmt.Errorf("friend request is not pending: %w", apperr.ErrValidation)
	}

	if err := s.repo.SetStatus(ctx, friendshipID, status); err != nil {
		return "", err
	}

	log.Debugf("friend request %d: %s by user %d", friendshipID, status, userID)
	return status, nil
}
