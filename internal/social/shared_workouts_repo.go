package social

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/db"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

func (r *Repo) ListVisibleSharedWorkouts(ctx context.Context, userID int) (_ []SharedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.list_visible_shared_workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT sw.shared_workout_id, sw.workout_name, sw.creator_id, u.username,
			sw.workout_date, sw.is_active, sw.created_at
		FROM shared_workouts sw
		JOIN users u ON u.user_id = sw.creator_id
		WHERE sw.is_active AND (
			sw.creator_id = $1
			OR EXISTS (
				SELECT 1 FROM friends f
				WHERE f.status = $2 AND (
					(f.user_id = $1 AND f.friend_id = sw.creator_id)
					OR (f.friend_id = $1 AND f.user_id = sw.creator_id)
				)
			)
			OR EXISTS (
				SELECT 1 FROM shared_workout_participants p
				WHERE p.shared_workout_id = sw.shared_workout_id AND p.user_id = $1
			)
		)
		ORDER BY sw.created_at DESC, sw.shared_workout_id DESC`,
		userID, StatusAccepted,
	)
	if err != nil {
		return nil, dependencyErr("list shared workouts", err)
	}
	defer rows.Close()

	sessions := []SharedWorkout{}
	for rows.Next() {
		var sw SharedWorkout
		if err := rows.Scan(
			&sw.ID, &sw.Name, &sw.CreatorID, &sw.CreatorName, &sw.WorkoutDate, &sw.IsActive, &sw.CreatedAt,
		); err != nil {
			return nil, dependencyErr("scan shared workout", err)
		}
		sessions = append(sessions, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, dependencyErr("list shared workouts", err)
	}

	return sessions, nil
}

// ListParticipants groups the participants of the given sessions by session id,
// each group in join order.
func (r *Repo) ListParticipants(ctx context.Context, sharedWorkoutIDs []int) (_ map[int][]Participant, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.list_participants")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("shared_workouts.count", len(sharedWorkoutIDs)))

	rows, err := r.db.Query(
		ctx,
		`SELECT p.shared_workout_id, p.user_id, u.username, p.joined_at
		FROM shared_workout_participants p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.shared_workout_id = ANY($1)
		ORDER BY p.joined_at, p.participant_id`,
		sharedWorkoutIDs,
	)
	if err != nil {
		return nil, dependencyErr("list participants", err)
	}
	defer rows.Close()

	participants := map[int][]Participant{}
	for rows.Next() {
		var (
			sharedWorkoutID int
			p               Participant
		)
		if err := rows.Scan(&sharedWorkoutID, &p.UserID, &p.Username, &p.JoinedAt); err != nil {
			return nil, dependencyErr("scan participant", err)
		}
		participants[sharedWorkoutID] = append(participants[sharedWorkoutID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, dependencyErr("list participants", err)
	}

	return participants, nil
}

func (r *Repo) GetSharedWorkout(ctx context.Context, id int) (_ *SharedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.get_shared_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("shared_workout.id", id))

	var sw SharedWorkout
	if err := r.db.QueryRow(
		ctx,
		`SELECT shared_workout_id, workout_name, creator_id, workout_date, is_active, created_at
		FROM shared_workouts WHERE shared_workout_id = $1`,
		id,
	).Scan(&sw.ID, &sw.Name, &sw.CreatorID, &sw.WorkoutDate, &sw.IsActive, &sw.CreatedAt); err != nil {
		if pkg.IsNoRows(err) {
			return nil, fmt.Errorf("shared workout %d: %w", id, apperr.ErrNotFound)
		}
		return nil, dependencyErr("get shared workout", err)
	}

	return &sw, nil
}

// CreateSharedWorkout stores the session and its creator as the first participant
// in one transaction.
func (r *Repo) CreateSharedWorkout(ctx context.Context, creatorID int, name string, date time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.create_shared_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", creatorID))

	var id int
	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO shared_workouts (creator_id, workout_name, workout_date, is_active)
			VALUES ($1, $2, $3, TRUE) RETURNING shared_workout_id`,
			creatorID, name, date,
		).Scan(&id); err != nil {
			return err
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO shared_workout_participants (shared_workout_id, user_id) VALUES ($1, $2)`,
			id, creatorID,
		)
		return err
	})
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return 0, fmt.Errorf("user %d: %w", creatorID, apperr.ErrNotFound)
		}
		return 0, dependencyErr("create shared workout", err)
	}

	return id, nil
}

// AddParticipant reports ErrValidation when the user already takes part in the session.
func (r *Repo) AddParticipant(ctx context.Context, sharedWorkoutID, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.add_participant")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("shared_workout.id", sharedWorkoutID),
		attribute.Int("user.id", userID),
	)

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO shared_workout_participants (shared_workout_id, user_id) VALUES ($1, $2)`,
		sharedWorkoutID, userID,
	); err != nil {
		switch {
		case pkg.IsUniqueViolationError(err):
			return fmt.Errorf("user is already a participant: %w", apperr.ErrValidation)
		case pkg.IsForeignKeyViolationError(err):
			return fmt.Errorf("shared workout %d: %w", sharedWorkoutID, apperr.ErrNotFound)
		default:
			return dependencyErr("add participant", err)
		}
	}

	return nil
}
