package ranking

import "math"

type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

const (
	silverThreshold = 500
	goldThreshold   = 1000
)

// Score is floor(total_volume * 0.1 + set_count * 10).
func Score(v Volume) int {
	return int(math.Floor(v.TotalVolume/10 + float64(v.SetCount)*10))
}

// TierFor is the only score to tier mapping; stored rows and derived leaderboard
// averages both go through it.
func TierFor(score int) Tier {
	switch {
	case score >= goldThreshold:
		return TierGold
	case score >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}
