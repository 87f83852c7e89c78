package ranking

import "github.com/2beens/evolvx/internal/workouts"

// Volume is the training load of one muscle group.
type Volume struct {
	TotalVolume float64 `json:"total_volume"`
	// SetCount counts exercise lines, not individual sets.
	SetCount int `json:"set_count"`
}

// Aggregate sums volume and exercise lines per muscle group over the given workouts.
func Aggregate(history []workouts.Workout) map[string]Volume {
	volumes := map[string]Volume{}
	for _, w := range history {
		for _, line := range w.Exercises {
			v := volumes[line.MuscleGroup]
			v.TotalVolume += line.Volume()
			v.SetCount++
			volumes[line.MuscleGroup] = v
		}
	}
	return volumes
}
