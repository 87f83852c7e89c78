package workouts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/db"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type ListParams struct {
	UserID  int
	Page    int
	PerPage int
}

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

const workoutLinesQuery = `
	SELECT w.workout_id, w.user_id, w.workout_name, w.workout_date, w.duration, w.notes, w.created_at,
		we.exercise_id, e.name, e.muscle_group, we.sets, we.reps, we.weight
	FROM workouts w
	LEFT JOIN workout_exercises we ON we.workout_id = w.workout_id
	LEFT JOIN exercises e ON e.exercise_id = we.exercise_id
`

// scanWorkouts folds joined workout/exercise rows into workouts, keeping row order.
func scanWorkouts(rows pgx.Rows) ([]Workout, error) {
	defer rows.Close()

	var workouts []Workout
	index := map[int]int{}
	for rows.Next() {
		var (
			w           Workout
			exerciseID  *int
			name        *string
			muscleGroup *string
			sets, reps  *int
			weight      *float64
		)
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.Name, &w.Date, &w.Duration, &w.Notes, &w.CreatedAt,
			&exerciseID, &name, &muscleGroup, &sets, &reps, &weight,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		i, ok := index[w.ID]
		if !ok {
			w.Exercises = []ExerciseSet{}
			workouts = append(workouts, w)
			i = len(workouts) - 1
			index[w.ID] = i
		}
		if exerciseID == nil {
			continue
		}
		workouts[i].Exercises = append(workouts[i].Exercises, ExerciseSet{
			ExerciseID:  *exerciseID,
			Name:        deref(name),
			MuscleGroup: deref(muscleGroup),
			Sets:        deref(sets),
			Reps:        deref(reps),
			Weight:      weight,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workouts, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// ListForUser returns the user's workout history (optionally only workouts dated at or
// after since), oldest first, with each line's muscle group resolved from the catalog.
func (r *Repo) ListForUser(ctx context.Context, userID int, since *time.Time) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list_for_user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	query := workoutLinesQuery + ` WHERE w.user_id = $1`
	args := []any{userID}
	if since != nil {
		query += ` AND w.workout_date >= $2`
		args = append(args, *since)
	}
	query += ` ORDER BY w.workout_date, w.workout_id, we.position`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dependencyErr("list workouts", err)
	}

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, dependencyErr("list workouts", err)
	}
	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))

	return workouts, nil
}

// List returns one page of the user's workouts, newest first, and the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", params.UserID),
		attribute.Int("page", params.Page),
		attribute.Int("per_page", params.PerPage),
	)

	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = $1`,
		params.UserID,
	).Scan(&total); err != nil {
		return nil, 0, dependencyErr("count workouts", err)
	}

	rows, err := r.db.Query(
		ctx,
		`WITH page AS (
			SELECT workout_id FROM workouts
			WHERE user_id = $1
			ORDER BY created_at DESC, workout_id DESC
			LIMIT $2 OFFSET $3
		)`+workoutLinesQuery+`
		JOIN page p ON p.workout_id = w.workout_id
		ORDER BY w.created_at DESC, w.workout_id DESC, we.position`,
		params.UserID, params.PerPage, (params.Page-1)*params.PerPage,
	)
	if err != nil {
		return nil, 0, dependencyErr("list workouts page", err)
	}

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, 0, dependencyErr("list workouts page", err)
	}

	return workouts, total, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", id))

	rows, err := r.db.Query(
		ctx,
		workoutLinesQuery+` WHERE w.workout_id = $1 ORDER BY we.position`,
		id,
	)
	if err != nil {
		return nil, dependencyErr("get workout", err)
	}

	workouts, err := scanWorkouts(rows)
	if err != nil {
		return nil, dependencyErr("get workout", err)
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("workout %d: %w", id, apperr.ErrNotFound)
	}

	return &workouts[0], nil
}

// Create stores the workout and its exercise lines in one transaction.
// An unknown exercise id aborts the whole workout with ErrNotFound.
func (r *Repo) Create(ctx context.Context, workout *Workout) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", workout.UserID))

	var id int
	err = db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO workouts (user_id, workout_name, workout_date, duration, notes)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING workout_id, created_at`,
			workout.UserID, workout.Name, workout.Date, workout.Duration, workout.Notes,
		).Scan(&id, &workout.CreatedAt); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return fmt.Errorf("user %d: %w", workout.UserID, apperr.ErrNotFound)
			}
			return dependencyErr("insert workout", err)
		}
		return insertExerciseLines(ctx, tx, id, workout.Exercises)
	})
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("workout.id", id))
	workout.ID = id
	return id, nil
}

// Update overwrites the workout fields and, when replaceExercises is set, swaps all of
// its exercise lines, in one transaction.
func (r *Repo) Update(ctx context.Context, workout *Workout, replaceExercises bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("workout.id", workout.ID),
		attribute.Bool("replace_exercises", replaceExercises),
	)

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(
			ctx,
			`UPDATE workouts SET workout_name = $1, workout_date = $2, duration = $3, notes = $4
				WHERE workout_id = $5`,
			workout.Name, workout.Date, workout.Duration, workout.Notes, workout.ID,
		)
		if err != nil {
			return dependencyErr("update workout", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("workout %d: %w", workout.ID, apperr.ErrNotFound)
		}

		if !replaceExercises {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workout_exercises WHERE workout_id = $1`, workout.ID); err != nil {
			return dependencyErr("delete workout exercises", err)
		}
		return insertExerciseLines(ctx, tx, workout.ID, workout.Exercises)
	})
}

func insertExerciseLines(ctx context.Context, tx pgx.Tx, workoutID int, lines []ExerciseSet) error {
	for i, line := range lines {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO workout_exercises (workout_id, exercise_id, position, sets, reps, weight)
				VALUES ($1, $2, $3, $4, $5, $6)`,
			workoutID, line.ExerciseID, i, line.Sets, line.Reps, line.Weight,
		); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				return fmt.Errorf("exercise with id %d: %w", line.ExerciseID, apperr.ErrNotFound)
			}
			return dependencyErr("insert workout exercise", err)
		}
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE workout_id = $1`, id)
	if err != nil {
		return dependencyErr("delete workout", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// ListCatalog lists catalog exercises by name, optionally restricted to a muscle group
// and filtered by a case-insensitive name search.
func (r *Repo) ListCatalog(ctx context.Context, filter CatalogFilter) (_ []CatalogExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list_catalog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("muscle_group", filter.MuscleGroup),
		attribute.String("search", filter.Search),
	)

	var (
		conditions []string
		args       []any
	)
	if filter.MuscleGroup != "" {
		args = append(args, filter.MuscleGroup)
		conditions = append(conditions, fmt.Sprintf("muscle_group = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	query := `SELECT exercise_id, name, muscle_group, description, is_compound FROM exercises`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY name, exercise_id`

	return r.queryCatalog(ctx, query, args...)
}

// CatalogByMuscleGroup returns up to limit catalog exercises of the group, ordered by id.
func (r *Repo) CatalogByMuscleGroup(ctx context.Context, muscleGroup string, limit int) (_ []CatalogExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.catalog_by_muscle_group")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", muscleGroup))

	return r.queryCatalog(
		ctx,
		`SELECT exercise_id, name, muscle_group, description, is_compound
			FROM exercises WHERE muscle_group = $1
			ORDER BY exercise_id LIMIT $2`,
		muscleGroup, limit,
	)
}

func (r *Repo) queryCatalog(ctx context.Context, query string, args ...any) ([]CatalogExercise, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dependencyErr("query catalog", err)
	}
	defer rows.Close()

	exercises := []CatalogExercise{}
	for rows.Next() {
		var e CatalogExercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Description, &e.IsCompound); err != nil {
			return nil, dependencyErr("scan catalog", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dependencyErr("query catalog", err)
	}

	return exercises, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
