package coaching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/evolvx/internal/apperr"
	"github.com/2beens/evolvx/internal/ranking"
	"github.com/2beens/evolvx/internal/telemetry/tracing"
	"github.com/2beens/evolvx/internal/workouts"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=coaching_test

const (
	weakestGroupsCount         = 2
	exercisesPerRecommendation = 3
)

const (
	NoRecommendationsMessage = "No workout data available for recommendations"
	NoProgressMessage        = "No workout data available for the selected period"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var periodDays = map[Period]int{
	PeriodWeek:  7,
	PeriodMonth: 30,
	PeriodYear:  365,
}

// ParsePeriod defaults an empty period to a month.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodMonth, nil
	}
	p := Period(s)
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("invalid period [%s], use week, month, or year: %w", s, apperr.ErrValidation)
	}
	return p, nil
}

type Recommendation struct {
	MuscleGroup          string                     `json:"muscle_group"`
	RankTier             ranking.Tier               `json:"rank_tier"`
	MMRScore             int                        `json:"mmr_score"`
	Message              string                     `json:"message"`
	RecommendedExercises []workouts.CatalogExercise `json:"recommended_exercises"`
}

type GroupProgress struct {
	MuscleGroup string  `json:"muscle_group"`
	Volume      float64 `json:"volume"`
	Percentage  float64 `json:"percentage"`
	// RankTier and MMRScore are the current all-time ranking, absent when the group has none.
	RankTier *ranking.Tier `json:"rank_tier,omitempty"`
	MMRScore *int          `json:"mmr_score,omitempty"`
}

type Progress struct {
	Period        Period          `json:"period"`
	TotalWorkouts int             `json:"total_workouts"`
	TotalVolume   float64         `json:"total_volume"`
	MuscleGroups  []GroupProgress `json:"muscle_groups"`
}

type rankingsStore interface {
	ListForUser(ctx context.Context, userID int) ([]ranking.Ranking, error)
}

type ledger interface {
	ListForUser(ctx context.Context, userID int, since *time.Time) ([]workouts.Workout, error)
	CatalogByMuscleGroup(ctx context.Context, muscleGroup string, limit int) ([]workouts.CatalogExercise, error)
}

type Advisor struct {
	rankings rankingsStore
	ledger   ledger
	now      func() time.Time
}

func NewAdvisor(rankings rankingsStore, ledger ledger, now func() time.Time) *Advisor {
	if now == nil {
		now = time.Now
	}
	return &Advisor{
		rankings: rankings,
		ledger:   ledger,
		now:      now,
	}
}

// Recommendations suggests catalog exercises for the two weakest muscle groups.
func (a *Advisor) Recommendations(ctx context.Context, userID int) (_ []Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.recommendations")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rankings, err := a.rankings.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rankings) == 0 {
		return nil, fmt.Errorf("%s: %w", NoRecommendationsMessage, apperr.ErrNoData)
	}

	weakest := append([]ranking.Ranking(nil), rankings...)
	sort.Slice(weakest, func(i, j int) bool {
		if weakest[i].MMRScore != weakest[j].MMRScore {
			return weakest[i].MMRScore < weakest[j].MMRScore
		}
		return weakest[i].MuscleGroup < weakest[j].MuscleGroup
	})
	if len(weakest) > weakestGroupsCount {
		weakest = weakest[:weakestGroupsCount]
	}

	recommendations := make([]Recommendation, 0, len(weakest))
	for _, rk := range weakest {
		exercises, err := a.ledger.CatalogByMuscleGroup(ctx, rk.MuscleGroup, exercisesPerRecommendation)
		if err != nil {
			return nil, err
		}
		if exercises == nil {
			exercises = []workouts.CatalogExercise{}
		}
		recommendations = append(recommendations, Recommendation{
			MuscleGroup:          rk.MuscleGroup,
			RankTier:             rk.RankTier,
			MMRScore:             rk.MMRScore,
			Message:              fmt.Sprintf("Focus on improving your %s strength to increase your rank.", rk.MuscleGroup),
			RecommendedExercises: exercises,
		})
	}

	return recommendations, nil
}

// Progress summarizes the volume trained within the period, per muscle group.
func (a *Advisor) Progress(ctx context.Context, userID int, period Period) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("period", string(period)),
	)

	days, ok := periodDays[period]
	if !ok {
		return nil, fmt.Errorf("invalid period [%s], use week, month, or year: %w", period, apperr.ErrValidation)
	}
	since := a.now().UTC().AddDate(0, 0, -days)

	history, err := a.ledger.ListForUser(ctx, userID, &since)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%s: %w", NoProgressMessage, apperr.ErrNoData)
	}

	rankings, err := a.rankings.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	current := make(map[string]ranking.Ranking, len(rankings))
	for _, rk := range rankings {
		current[rk.MuscleGroup] = rk
	}

	volumes := ranking.Aggregate(history)
	progress := &Progress{
		Period:        period,
		TotalWorkouts: len(history),
		MuscleGroups:  make([]GroupProgress, 0, len(volumes)),
	}
	for _, v := range volumes {
		progress.TotalVolume += v.TotalVolume
	}

	for group, v := range volumes {
		gp := GroupProgress{
			MuscleGroup: group,
			Volume:      v.TotalVolume,
		}
		if progress.TotalVolume > 0 {
			gp.Percentage = v.TotalVolume / progress.TotalVolume * 100
		}
		if rk, ok := current[group]; ok {
			tier, score := rk.RankTier, rk.MMRScore
			gp.RankTier = &tier
			gp.MMRScore = &score
		}
		progress.MuscleGroups = append(progress.MuscleGroups, gp)
	}

	sort.Slice(progress.MuscleGroups, func(i, j int) bool {
		gi, gj := progress.MuscleGroups[i], progress.MuscleGroups[j]
		if gi.Volume != gj.Volume {
			return gi.Volume > gj.Volume
		}
		return gi.MuscleGroup < gj.MuscleGroup
	})

	return progress, nil
}
