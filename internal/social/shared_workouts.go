package social

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=shared_workouts_mocks_test.go -package=social_test

const maxSharedWorkoutNameLen = 100

// SharedWorkout is a group session other users can join. The derived fields
// (ParticipantCount, IsParticipating, IsCreator) are relative to the viewing user.
type SharedWorkout struct {
	ID               int           `json:"shared_workout_id"`
	Name             string        `json:"workout_name"`
	CreatorID        int           `json:"creator_id"`
	CreatorName      string        `json:"creator_name"`
	WorkoutDate      time.Time     `json:"workout_date"`
	IsActive         bool          `json:"is_active"`
	CreatedAt        time.Time     `json:"created_at"`
	ParticipantCount int           `json:"participant_count"`
	IsParticipating  bool          `json:"is_participating"`
	IsCreator        bool          `json:"is_creator"`
	Participants     []Participant `json:"participants"`
}

type Participant struct {
	UserID   int       `json:"user_id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

type sharedWorkoutsRepo interface {
	// ListVisibleSharedWorkouts returns the active sessions created by userID or an
	// accepted friend, plus those userID takes part in, newest first.
	ListVisibleSharedWorkouts(ctx context.Context, userID int) ([]SharedWorkout, error)
	ListParticipants(ctx context.Context, sharedWorkoutIDs []int) (map[int][]Participant, error)
	GetSharedWorkout(ctx context.Context, id int) (*SharedWorkout, error)
	CreateSharedWorkout(ctx context.Context, creatorID int, name string, date time.Time) (int, error)
	AddParticipant(ctx context.Context, sharedWorkoutID, userID int) error
}

type SharedWorkouts struct {
	repo sharedWorkoutsRepo
	now  func() time.Time
}

// NewSharedWorkouts creates the shared workouts service. A nil now defaults to time.Now.
func NewSharedWorkouts(repo sharedWorkoutsRepo, now func() time.Time) *SharedWorkouts {
	if now == nil {
		now = time.Now
	}
	return &SharedWorkouts{
		repo: repo,
		now:  now,
	}
}

func (s *SharedWorkouts) List(ctx context.Context, userID int) (_ []SharedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.list_shared_workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	sessions, err := s.repo.ListVisibleSharedWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return []SharedWorkout{}, nil
	}

	ids := make([]int, 0, len(sessions))
	for _, sw := range sessions {
		ids = append(ids, sw.ID)
	}
	participants, err := s.repo.ListParticipants(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		sw := &sessions[i]
		sw.Participants = participants[sw.ID]
		if sw.Participants == nil {
			sw.Participants = []Participant{}
		}
		sw.ParticipantCount = len(sw.Participants)
		sw.IsCreator = sw.CreatorID == userID
		for _, p := range sw.Participants {
			if p.UserID == userID {
				sw.IsParticipating = true
				break
			}
		}
	}

	span.SetAttributes(attribute.Int("shared_workouts.count", len(sessions)))
	return sessions, nil
}

// Create opens a new active session dated now, with the creator as its first participant.
func (s *SharedWorkouts) Create(ctx context.Context, userID int, name string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.create_shared_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("missing required field: workout_name: %w", apperr.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxSharedWorkoutNameLen {
		return 0, fmt.Errorf("workout_name longer than %d characters: %w", maxSharedWorkoutNameLen, apperr.ErrValidation)
	}

	id, err := s.repo.CreateSharedWorkout(ctx, userID, name, s.now().UTC())
	if err != nil {
		return 0, err
	}

	log.Debugf("shared workout %d [%s] created by user %d", id, name, userID)
	return id, nil
}

// Join adds userID to an active session it is not yet part of.
func (s *SharedWorkouts) Join(ctx context.Context, userID, sharedWorkoutID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.join_shared_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("shared_workout.id", sharedWorkoutID),
	)

	sw, err := s.repo.GetSharedWorkout(ctx, sharedWorkoutID)
	if err != nil {
		return err
	}
	if !sw.IsActive {
		return fmt.Errorf("shared workout %d is not active: %w", sharedWorkoutID, apperr.ErrValidation)
	}

	if err := s.repo.AddParticipant(ctx, sharedWorkoutID, userID); err != nil {
		return err
	}

	log.Debugf("user %d joined shared workout %d", userID, sharedWorkoutID)
	return nil
}
