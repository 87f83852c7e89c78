package test

import (
	"net/http"
	"time"

	"github.com/2beens/evolvx/internal/coaching"
	"github.com/2beens/evolvx/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestProgress_NoData() {
	userID := s.addUser(bornYearsAgo(22))

	var resp map[string]string
	status := s.doJSON(userID, http.MethodGet, "/api/coaching/progress?period=week", nil, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), coaching.NoProgressMessage, resp["message"])

	status = s.doJSON(userID, http.MethodGet, "/api/coaching/recommendations", nil, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), coaching.NoRecommendationsMessage, resp["message"])
}

func (s *IntegrationTestSuite) TestProgress_WindowedVolumes() {
	userID := s.addUser(bornYearsAgo(22))
	now := time.Now().UTC()
	s.createWorkout(userID, now.AddDate(0, 0, -2).Format("2006-01-02"), line(squatID, 4, 10, 50), line(benchPressID, 3, 10, 50))
	// outside the week, inside the month
	s.createWorkout(userID, now.AddDate(0, 0, -20).Format("2006-01-02"), line(benchPressID, 1, 10, 100))

	var progress coaching.Progress
	status := s.doJSON(userID, http.MethodGet, "/api/coaching/progress?period=week", nil, &progress)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), coaching.PeriodWeek, progress.Period)
	assert.Equal(s.T(), 1, progress.TotalWorkouts)
	assert.InDelta(s.T(), 3500.0, progress.TotalVolume, 0.001)
	require.Len(s.T(), progress.MuscleGroups, 2)
	assert.Equal(s.T(), "Legs", progress.MuscleGroups[0].MuscleGroup)
	assert.InDelta(s.T(), 57.142, progress.MuscleGroups[0].Percentage, 0.01)
	require.NotNil(s.T(), progress.MuscleGroups[0].MMRScore)
	assert.Equal(s.T(), 210, *progress.MuscleGroups[0].MMRScore)
	// all-time ranking, not the window
	assert.Equal(s.T(), 270, *progress.MuscleGroups[1].MMRScore)

	status = s.doJSON(userID, http.MethodGet, "/api/coaching/progress", nil, &progress)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), coaching.PeriodMonth, progress.Period)
	assert.Equal(s.T(), 2, progress.TotalWorkouts)

	status, _ = s.do(userID, http.MethodGet, "/api/coaching/progress?period=decade", nil)
	assert.Equal(s.T(), http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestRecommendations_TwoWeakestGroups() {
	userID := s.addUser(bornYearsAgo(22))
	s.addRanking(userID, "Chest", 1100, "Gold")
	s.addRanking(userID, "Back", 300, "Bronze")
	s.addRanking(userID, "Arms", 300, "Bronze")
	s.addRanking(userID, "Legs", 600, "Silver")

	var resp coaching.RecommendationsResponse
	status := s.doJSON(userID, http.MethodGet, "/api/coaching/recommendations", nil, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), resp.Recommendations, 2)

	arms := resp.Recommendations[0]
	assert.Equal(s.T(), "Arms", arms.MuscleGroup)
	assert.Equal(s.T(), ranking.Bronze, arms.RankTier)
	assert.Equal(s.T(), "Focus on improving your Arms strength to increase your rank.", arms.Message)
	require.Len(s.T(), arms.RecommendedExercises, 3)
	assert.Equal(s.T(), "Bicep Curl", arms.RecommendedExercises[0].Name)
	assert.Equal(s.T(), "Back", resp.Recommendations[1].MuscleGroup)
	assert.Equal(s.T(), "Pull-Up", resp.Recommendations[1].RecommendedExercises[0].Name)
}
