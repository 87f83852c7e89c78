package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/evolvx/internal/ranking"
	"github.com/2beens/evolvx/internal/ranking/sink"
	"github.com/2beens/evolvx/internal/workouts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seeded catalog ids
const (
	benchPressID = 1
	squatID      = 11
)

func ptr[T any](v T) *T {
	return &v
}

func (s *IntegrationTestSuite) createWorkout(userID int, date string, lines ...workouts.ExerciseSetInput) int {
	var resp workouts.MutationResponse
	status := s.doJSON(userID, http.MethodPost, "/api/workouts", workouts.CreateRequest{
		Name:      ptr("session"),
		Date:      ptr(date),
		Exercises: lines,
	}, &resp)
	require.Equal(s.T(), http.StatusCreated, status)
	require.Positive(s.T(), resp.WorkoutID)
	return resp.WorkoutID
}

func line(exerciseID, sets, reps int, weight float64) workouts.ExerciseSetInput {
	return workouts.ExerciseSetInput{
		ExerciseID: ptr(exerciseID),
		Sets:       ptr(sets),
		Reps:       ptr(reps),
		Weight:     ptr(weight),
	}
}

func (s *IntegrationTestSuite) userRankings(userID int) map[string]ranking.Ranking {
	var resp ranking.UserRankingsResponse
	status := s.doJSON(userID, http.MethodGet, fmt.Sprintf("/api/rankings/user/%d", userID), nil, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	byGroup := make(map[string]ranking.Ranking, len(resp.Rankings))
	for _, r := range resp.Rankings {
		byGroup[r.MuscleGroup] = r
	}
	return byGroup
}

func (s *IntegrationTestSuite) TestWorkoutCreate_RecomputesRankings() {
	userID := s.addUser(bornYearsAgo(25))
	today := time.Now().UTC().Format("2006-01-02")

	s.createWorkout(userID, today, line(benchPressID, 3, 10, 50))

	rankings := s.userRankings(userID)
	require.Len(s.T(), rankings, 1)
	assert.Equal(s.T(), 160, rankings["Chest"].MMRScore)
	assert.Equal(s.T(), ranking.Bronze, rankings["Chest"].RankTier)

	s.createWorkout(userID, today, line(squatID, 10, 9, 50))
	rankings = s.userRankings(userID)
	require.Len(s.T(), rankings, 2)
	assert.Equal(s.T(), 160, rankings["Chest"].MMRScore)
	assert.Equal(s.T(), 460, rankings["Legs"].MMRScore)
	assert.Equal(s.T(), ranking.Bronze, rankings["Legs"].RankTier)

	// 9800 volume over two lines
	s.createWorkout(userID, today, line(squatID, 10, 10, 53))
	rankings = s.userRankings(userID)
	assert.Equal(s.T(), 1000, rankings["Legs"].MMRScore)
	assert.Equal(s.T(), ranking.Gold, rankings["Legs"].RankTier)
}

func (s *IntegrationTestSuite) TestRecompute_IsIdempotentAndPublishesSnapshot() {
	userID := s.addUser(bornYearsAgo(31))
	s.createWorkout(userID, "2024-03-01", line(benchPressID, 5, 10, 100))
	before := s.userRankings(userID)

	var resp ranking.UserRankingsResponse
	status := s.doJSON(userID, http.MethodPost, fmt.Sprintf("/api/rankings/user/%d/recompute", userID), nil, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), resp.Rankings, 1)
	assert.Equal(s.T(), before["Chest"].MMRScore, resp.Rankings[0].MMRScore)
	assert.Equal(s.T(), 510, resp.Rankings[0].MMRScore)
	assert.Equal(s.T(), ranking.Silver, resp.Rankings[0].RankTier)

	var snapshot sink.Snapshot
	require.Eventually(s.T(), func() bool {
		raw, err := s.redisClient.HGet(context.Background(), sink.LatestKey(userID), "snapshot").Result()
		if err != nil {
			return false
		}
		return json.Unmarshal([]byte(raw), &snapshot) == nil
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(s.T(), userID, snapshot.UserID)
	assert.Equal(s.T(), sink.GroupRank{MMRScore: 510, RankTier: "Silver"}, snapshot.MuscleGroups["Chest"])
	assert.NotEmpty(s.T(), snapshot.EventID)
}

func (s *IntegrationTestSuite) TestRecompute_OtherUserForbidden() {
	userID := s.addUser(bornYearsAgo(20))
	otherID := s.addUser(bornYearsAgo(21))

	status, _ := s.do(userID, http.MethodPost, fmt.Sprintf("/api/rankings/user/%d/recompute", otherID), nil)
	assert.Equal(s.T(), http.StatusForbidden, status)
}

func (s *IntegrationTestSuite) TestUserRankings_UnknownUser() {
	userID := s.addUser(bornYearsAgo(20))
	status, _ := s.do(userID, http.MethodGet, "/api/rankings/user/987654", nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestWorkout_DeleteRecomputesAndKeepsStaleGroup() {
	userID := s.addUser(bornYearsAgo(40))
	s.createWorkout(userID, "2024-05-01", line(benchPressID, 3, 10, 50))
	chestID := s.createWorkout(userID, "2024-05-02", line(benchPressID, 3, 10, 50))
	legsID := s.createWorkout(userID, "2024-05-03", line(squatID, 10, 9, 50))
	rankings := s.userRankings(userID)
	require.Equal(s.T(), 320, rankings["Chest"].MMRScore)
	require.Equal(s.T(), 460, rankings["Legs"].MMRScore)

	for _, id := range []int{chestID, legsID} {
		status, _ := s.do(userID, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", id), nil)
		require.Equal(s.T(), http.StatusOK, status)
	}

	rankings = s.userRankings(userID)
	assert.Equal(s.T(), 160, rankings["Chest"].MMRScore)
	// no Legs history left, the row is kept as it was
	assert.Equal(s.T(), 460, rankings["Legs"].MMRScore)
}

func (s *IntegrationTestSuite) TestWorkout_ForeignWorkoutNotFound() {
	ownerID := s.addUser(bornYearsAgo(33))
	otherID := s.addUser(bornYearsAgo(34))
	workoutID := s.createWorkout(ownerID, "2024-05-01", line(benchPressID, 1, 1, 1))

	status, _ := s.do(otherID, http.MethodGet, fmt.Sprintf("/api/workouts/%d", workoutID), nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
	status, _ = s.do(otherID, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", workoutID), nil)
	assert.Equal(s.T(), http.StatusNotFound, status)

	var workout workouts.Workout
	status = s.doJSON(ownerID, http.MethodGet, fmt.Sprintf("/api/workouts/%d", workoutID), nil, &workout)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), workout.Exercises, 1)
	assert.Equal(s.T(), "Chest", workout.Exercises[0].MuscleGroup)
}

func (s *IntegrationTestSuite) TestWorkout_UnknownExercise() {
	userID := s.addUser(bornYearsAgo(33))
	status, _ := s.do(userID, http.MethodPost, "/api/workouts", workouts.CreateRequest{
		Name:      ptr("session"),
		Date:      ptr("2024-05-01"),
		Exercises: []workouts.ExerciseSetInput{line(99999, 1, 1, 1)},
	})
	assert.Equal(s.T(), http.StatusNotFound, status)
	assert.Empty(s.T(), s.userRankings(userID))
}
