package workouts

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/evolvx/internal/apperr"
)

// ExerciseSet is one exercise line of a workout. MuscleGroup and Name are resolved
// from the exercise catalog when read, never stored on the line.
type ExerciseSet struct {
	ExerciseID  int      `json:"exercise_id"`
	Name        string   `json:"name,omitempty"`
	MuscleGroup string   `json:"muscle_group,omitempty"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Weight      *float64 `json:"weight"`
}

// Volume is sets x reps x weight; a missing weight counts as zero.
func (s ExerciseSet) Volume() float64 {
	if s.Weight == nil {
		return 0
	}
	return float64(s.Sets) * float64(s.Reps) * *s.Weight
}

type Workout struct {
	ID        int           `json:"workout_id"`
	UserID    int           `json:"user_id"`
	Name      string        `json:"workout_name"`
	Date      time.Time     `json:"workout_date"`
	Duration  *int          `json:"duration"`
	Notes     *string       `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	Exercises []ExerciseSet `json:"exercises"`
}

type CatalogExercise struct {
	ID          int     `json:"exercise_id"`
	Name        string  `json:"name"`
	MuscleGroup string  `json:"muscle_group"`
	Description *string `json:"description"`
	IsCompound  bool    `json:"is_compound"`
}

type CatalogFilter struct {
	MuscleGroup string
	Search      string
}

// ExerciseSetInput is an exercise line as sent by clients; required fields are pointers
// so that a missing field can be told apart from a zero.
type ExerciseSetInput struct {
	ExerciseID *int     `json:"exercise_id"`
	Sets       *int     `json:"sets"`
	Reps       *int     `json:"reps"`
	Weight     *float64 `json:"weight"`
}

type CreateRequest struct {
	Name      *string            `json:"workout_name"`
	Date      *string            `json:"workout_date"`
	Duration  *int               `json:"duration"`
	Notes     *string            `json:"notes"`
	Exercises []ExerciseSetInput `json:"exercises"`
}

// UpdateRequest is a partial update: nil fields are left as they are, a non-nil
// Exercises replaces all exercise lines.
type UpdateRequest struct {
	Name      *string             `json:"workout_name"`
	Date      *string             `json:"workout_date"`
	Duration  *int                `json:"duration"`
	Notes     *string             `json:"notes"`
	Exercises *[]ExerciseSetInput `json:"exercises"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps, ISO 8601 local date-times and plain dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format [%s]: %w", s, apperr.ErrValidation)
}

func (r CreateRequest) ToWorkout(userID int) (*Workout, error) {
	switch {
	case r.Name == nil || strings.TrimSpace(*r.Name) == "":
		return nil, fmt.Errorf("missing required field: workout_name: %w", apperr.ErrValidation)
	case r.Date == nil:
		return nil, fmt.Errorf("missing required field: workout_date: %w", apperr.ErrValidation)
	case r.Exercises == nil:
		return nil, fmt.Errorf("missing required field: exercises: %w", apperr.ErrValidation)
	}

	date, err := ParseDate(*r.Date)
	if err != nil {
		return nil, err
	}
	if r.Duration != nil && *r.Duration < 0 {
		return nil, fmt.Errorf("duration must not be negative: %w", apperr.ErrValidation)
	}

	sets, err := toExerciseSets(r.Exercises)
	if err != nil {
		return nil, err
	}

	return &Workout{
		UserID:    userID,
		Name:      strings.TrimSpace(*r.Name),
		Date:      date,
		Duration:  r.Duration,
		Notes:     r.Notes,
		Exercises: sets,
	}, nil
}

// ApplyTo merges the update into w and reports whether the exercise lines were replaced.
func (r UpdateRequest) ApplyTo(w *Workout) (replaceExercises bool, err error) {
	if r.Name != nil {
		if strings.TrimSpace(*r.Name) == "" {
			return false, fmt.Errorf("workout_name must not be empty: %w", apperr.ErrValidation)
		}
		w.Name = strings.TrimSpace(*r.Name)
	}
	if r.Date != nil {
		date, err := ParseDate(*r.Date)
		if err != nil {
			return false, err
		}
		w.Date = date
	}
	if r.Duration != nil {
		if *r.Duration < 0 {
			return false, fmt.Errorf("duration must not be negative: %w", apperr.ErrValidation)
		}
		w.Duration = r.Duration
	}
	if r.Notes != nil {
		w.Notes = r.Notes
	}
	if r.Exercises != nil {
		sets, err := toExerciseSets(*r.Exercises)
		if err != nil {
			return false, err
		}
		w.Exercises = sets
		return true, nil
	}
	return false, nil
}

func toExerciseSets(inputs []ExerciseSetInput) ([]ExerciseSet, error) {
	sets := make([]ExerciseSet, 0, len(inputs))
	for i, in := range inputs {
		if in.ExerciseID == nil || in.Sets == nil || in.Reps == nil {
			return nil, fmt.Errorf("each exercise must have exercise_id, sets, and reps: %w", apperr.ErrValidation)
		}
		if *in.Sets <= 0 || *in.Reps <= 0 {
			return nil, fmt.Errorf("exercise #%d: sets and reps must be positive: %w", i, apperr.ErrValidation)
		}
		if in.Weight != nil && *in.Weight < 0 {
			return nil, fmt.Errorf("exercise #%d: weight must not be negative: %w", i, apperr.ErrValidation)
		}
		sets = append(sets, ExerciseSet{
			ExerciseID: *in.ExerciseID,
			Sets:       *in.Sets,
			Reps:       *in.Reps,
			Weight:     in.Weight,
		})
	}
	return sets, nil
}
