package ranking

import (
	"context"
	"fmt"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/db"
	"github.com/2beens/evolvx/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
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

// Upsert writes all rankings of one recompute run in a single transaction: either every
// muscle group is updated or none is. Groups missing from rankings are left untouched.
func (r *Repo) Upsert(ctx context.Context, userID int, rankings []Ranking) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ranking.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("rankings.count", len(rankings)),
	)

	if len(rankings) == 0 {
		return nil
	}

	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, rk := range rankings {
			batch.Queue(
				`INSERT INTO user_rankings (user_id, muscle_group, mmr_score, rank_tier, updated_at)
					VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (user_id, muscle_group) DO UPDATE
					SET mmr_score = EXCLUDED.mmr_score,
						rank_tier = EXCLUDED.rank_tier,
						updated_at = EXCLUDED.updated_at`,
				userID, rk.MuscleGroup, rk.MMRScore, rk.RankTier, rk.UpdatedAt,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("upsert rankings of user %d: %w: %w", userID, apperr.ErrDependency, err)
	}
	return nil
}

// ListForUser returns the user's rankings ordered by muscle group.
func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []Ranking, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.ranking.list_for_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT user_id, muscle_group, mmr_score, rank_tier, updated_at
			FROM user_rankings WHERE user_id = $1
			ORDER BY muscle_group`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rankings: %w: %w", apperr.ErrDependency, err)
	}
	defer rows.Close()

	rankings := []Ranking{}
	for rows.Next() {
		var rk Ranking
		if err := rows.Scan(&rk.UserID, &rk.MuscleGroup, &rk.MMRScore, &rk.RankTier, &rk.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ranking: %w: %w", apperr.ErrDependency, err)
		}
		rankings = append(rankings, rk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rankings: %w: %w", apperr.ErrDependency, err)
	}

	return rankings, nil
}
