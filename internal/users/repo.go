package users

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

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	var u User
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, username, date_of_birth FROM users WHERE user_id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.DateOfBirth)
	if err != nil {
		if pkg.IsNoRows(err) {
			return nil, fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get user %d: %w: %w", id, apperr.ErrDependency, err)
	}

	return &u, nil
}

func (r *Repo) Exists(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	var exists bool
	if err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`,
		id,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user %d: %w: %w", id, apperr.ErrDependency, err)
	}

	return exists, nil
}
