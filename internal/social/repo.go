package social

import (
	"context"
	"fmt"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func dependencyErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrDependency, err)
}

// AcceptedFriends returns the user's accepted friends, each mapped to whether the user
// was the one who sent the request.
func (r *Repo) AcceptedFriends(ctx context.Context, userID int) (_ map[int]bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.accepted_friends")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT
			CASE WHEN user_id = $1 THEN friend_id ELSE user_id END AS other_id,
			user_id = $1 AS is_outgoing
		FROM friends
		WHERE status = $2 AND (user_id = $1 OR friend_id = $1)`,
		userID, StatusAccepted,
	)
	if err != nil {
		return nil, dependencyErr("list accepted friends", err)
	}
	defer rows.Close()

	friends := map[int]bool{}
	for rows.Next() {
		var (
			otherID    int
			isOutgoing bool
		)
		if err := rows.Scan(&otherID, &isOutgoing); err != nil {
			return nil, dependencyErr("scan accepted friend", err)
		}
		friends[otherID] = isOutgoing
	}
	if err := rows.Err(); err != nil {
		return nil, dependencyErr("list accepted friends", err)
	}

	span.SetAttributes(attribute.Int("friends.count", len(friends)))
	return friends, nil
}

func (r *Repo) List(ctx context.Context, userID int, filter ListFilter) (_ []Friend, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("filter", string(filter)),
	)

	query := `
		SELECT f.friendship_id, u.user_id, u.username, f.status, f.user_id = $1, f.created_at,
			(SELECT COUNT(*) FROM workouts w WHERE w.user_id = u.user_id)
		FROM friends f
		JOIN users u ON u.user_id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE (f.user_id = $1 OR f.friend_id = $1)`
	args := []any{userID}
	if filter != ListAll {
		query += ` AND f.status = $2`
		args = append(args, string(filter))
	}
	query += ` ORDER BY f.created_at DESC, f.friendship_id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dependencyErr("list friends", err)
	}
	defer rows.Close()

	friends := []Friend{}
	for rows.Next() {
		var f Friend
		if err := rows.Scan(
			&f.FriendshipID, &f.UserID, &f.Username, &f.Status, &f.IsOutgoing, &f.CreatedAt, &f.WorkoutCount,
		); err != nil {
			return nil, dependencyErr("scan friend", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, dependencyErr("list friends", err)
	}

	return friends, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Friendship, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("friendship.id", id))

	var f Friendship
	if err := r.db.QueryRow(
		ctx,
		`SELECT friendship_id, user_id, friend_id, status, created_at FROM friends WHERE friendship_id = $1`,
		id,
	).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt); err != nil {
		if pkg.IsNoRows(err) {
			return nil, fmt.Errorf("friendship %d: %w", id, apperr.ErrNotFound)
		}
		return nil, dependencyErr("get friendship", err)
	}

	return &f, nil
}

// Create stores a pending request. A friendship between the two users in either
// direction, whatever its status, makes this fail with ErrValidation.
func (r *Repo) Create(ctx context.Context, userID, friendID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("friend.id", friendID),
	)

	var id int
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO friends (user_id, friend_id, status) VALUES ($1, $2, $3) RETURNING friendship_id`,
		userID, friendID, StatusPending,
	).Scan(&id); err != nil {
		switch {
		case pkg.IsUniqueViolationError(err):
			return 0, fmt.Errorf("friendship already exists or pending: %w", apperr.ErrValidation)
		case pkg.IsForeignKeyViolationError(err):
			return 0, fmt.Errorf("user %d: %w", friendID, apperr.ErrNotFound)
		default:
			return 0, dependencyErr("create friendship", err)
		}
	}

	return id, nil
}

// SetStatus moves a pending friendship to status. It reports ErrValidation when the
// friendship is no longer pending.
func (r *Repo) SetStatus(ctx context.Context, id int, status Status) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.social.set_status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("friendship.id", id),
		attribute.String("status", string(status)),
	)

	tag, err := r.db.Exec(
		ctx,
		`UPDATE friends SET status = $1, updated_at = now() WHERE friendship_id = $2 AND status = $3`,
		status, id, StatusPending,
	)
	if err != nil {
		return dependencyErr("update friendship", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("friend request is not pending: %w", apperr.ErrValidation)
	}
	return nil
}
