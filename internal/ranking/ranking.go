package ranking

import (
	"sort"
	"time"
)

// Ranking is the persisted MMR of one user for one muscle group.
type Ranking struct {
	UserID      int       `json:"user_id"`
	MuscleGroup string    `json:"muscle_group"`
	MMRScore    int       `json:"mmr_score"`
	RankTier    Tier      `json:"rank_tier"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromVolumes derives the rankings for every aggregated muscle group, ordered by group.
func FromVolumes(userID int, volumes map[string]Volume, now time.Time) []Ranking {
	rankings := make([]Ranking, 0, len(volumes))
	for group, v := range volumes {
		score := Score(v)
		rankings = append(rankings, Ranking{
			UserID:      userID,
			MuscleGroup: group,
			MMRScore:    score,
			RankTier:    TierFor(score),
			UpdatedAt:   now,
		})
	}
	sortByMuscleGroup(rankings)
	return rankings
}

func sortByMuscleGroup(rankings []Ranking) {
	sort.Slice(rankings, func(i, j int) bool {
		return rankings[i].MuscleGroup < rankings[j].MuscleGroup
	})
}
