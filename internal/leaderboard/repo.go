package leaderboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/ranking"
	"github.com/2beens/evolvx/internal/telemetry/tracing"

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

// candidatesQuery builds the select of ranked candidates for the filter, without
// ordering or pagination. The overall board averages over the groups a user has
// rows for and truncates to an integer.
func candidatesQuery(f Filter) (string, []any) {
	var (
		sb    strings.Builder
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.MuscleGroup == Overall {
		sb.WriteString(`SELECT u.user_id, u.username, u.date_of_birth,
			TRUNC(AVG(r.mmr_score))::INTEGER AS score, NULL::VARCHAR AS rank_tier
		FROM users u
		JOIN user_rankings r ON r.user_id = u.user_id`)
	} else {
		sb.WriteString(`SELECT u.user_id, u.username, u.date_of_birth,
			r.mmr_score AS score, r.rank_tier
		FROM users u
		JOIN user_rankings r ON r.user_id = u.user_id AND r.muscle_group = `)
		sb.WriteString(arg(f.MuscleGroup))
	}

	if f.BornBefore != nil {
		where = append(where, "u.date_of_birth <= "+arg(*f.BornBefore)+"::DATE")
	}
	if f.BornAfter != nil {
		where = append(where, "u.date_of_birth > "+arg(*f.BornAfter)+"::DATE")
	}
	if f.UserIDs != nil {
		where = append(where, "u.user_id = ANY("+arg(f.UserIDs)+")")
	}
	if len(where) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	if f.MuscleGroup == Overall {
		sb.WriteString("\n\t\tGROUP BY u.user_id, u.username, u.date_of_birth")
	}

	return sb.String(), args
}

// GroupExists reports whether any user has a ranking in muscleGroup.
func (r *Repo) GroupExists(ctx context.Context, muscleGroup string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.group_exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", muscleGroup))

	var exists bool
	if err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM user_rankings WHERE muscle_group = $1)`,
		muscleGroup,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check muscle group: %w: %w", apperr.ErrDependency, err)
	}

	return exists, nil
}

func (r *Repo) Count(ctx context.Context, f Filter) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", f.MuscleGroup))

	candidates, args := candidatesQuery(f)
	var total int
	if err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM ("+candidates+") AS candidates",
		args...,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("count leaderboard candidates: %w: %w", apperr.ErrDependency, err)
	}

	return total, nil
}

// Rank returns the candidates ordered by score descending, ties broken by user id.
func (r *Repo) Rank(ctx context.Context, f Filter) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.leaderboard.rank")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("muscle_group", f.MuscleGroup),
		attribute.Int("limit", f.Limit),
		attribute.Int("offset", f.Offset),
	)

	query, args := candidatesQuery(f)
	query += "\n\t\tORDER BY score DESC, u.user_id ASC"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf("\n\t\tLIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("rank leaderboard: %w: %w", apperr.ErrDependency, err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e    Entry
			tier *string
		)
		if err := rows.Scan(&e.UserID, &e.Username, &e.DateOfBirth, &e.MMRScore, &tier); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w: %w", apperr.ErrDependency, err)
		}
		if tier != nil {
			e.RankTier = ranking.Tier(*tier)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rank leaderboard: %w: %w", apperr.ErrDependency, err)
	}

	span.SetAttributes(attribute.Int("entries.count", len(entries)))
	return entries, nil
}
