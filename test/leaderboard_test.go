package test

import (
	"fmt"
	"net/http"

	"github.com/2beens/evolvx/internal/leaderboard"
	"github.com/2beens/evolvx/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestLeaderboard_Pagination() {
	group := s.uniqueGroup()
	var requesterID int
	for i := 0; i < 12; i++ {
		userID := s.addUser(bornYearsAgo(20 + i))
		if i == 0 {
			requesterID = userID
		}
		s.addRanking(userID, group, 100*(i+1), string(ranking.TierFor(100*(i+1))))
	}

	var resp leaderboard.GlobalResponse
	status := s.doJSON(
		requesterID, http.MethodGet,
		fmt.Sprintf("/api/rankings/leaderboard?muscle_group=%s&page=2&per_page=5", group),
		nil, &resp,
	)
	require.Equal(s.T(), http.StatusOK, status)

	assert.Equal(s.T(), 12, resp.Total)
	assert.Equal(s.T(), 3, resp.Pages)
	assert.Equal(s.T(), 2, resp.CurrentPage)
	assert.Equal(s.T(), group, resp.MuscleGroup)
	require.Len(s.T(), resp.Leaderboard, 5)
	for i, row := range resp.Leaderboard {
		assert.Equal(s.T(), 700-100*i, row.MMRScore)
		assert.Nil(s.T(), row.IsOutgoing)
	}
	assert.Equal(s.T(), ranking.Silver, resp.Leaderboard[0].RankTier)
	assert.Equal(s.T(), ranking.Bronze, resp.Leaderboard[4].RankTier)

	status = s.doJSON(
		requesterID, http.MethodGet,
		fmt.Sprintf("/api/rankings/leaderboard?muscle_group=%s&page=3&per_page=5", group),
		nil, &resp,
	)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), resp.Leaderboard, 2)
	assert.True(s.T(), resp.Leaderboard[1].IsCurrentUser)
	assert.Equal(s.T(), 100, resp.Leaderboard[1].MMRScore)
}

func (s *IntegrationTestSuite) TestLeaderboard_InvalidPage() {
	userID := s.addUser(bornYearsAgo(20))
	for _, query := range []string{"page=0", "per_page=0", "per_page=101", "min_age=40&max_age=30"} {
		status, _ := s.do(userID, http.MethodGet, "/api/rankings/leaderboard?"+query, nil)
		assert.Equal(s.T(), http.StatusBadRequest, status, query)
	}
}

func (s *IntegrationTestSuite) TestLeaderboard_UnknownMuscleGroup() {
	userID := s.addUser(bornYearsAgo(20))
	group := s.uniqueGroup()

	status, _ := s.do(userID, http.MethodGet, "/api/rankings/leaderboard?muscle_group="+group, nil)
	assert.Equal(s.T(), http.StatusNotFound, status)
	status, _ = s.do(userID, http.MethodGet, "/api/rankings/leaderboard/friends?muscle_group="+group, nil)
	assert.Equal(s.T(), http.StatusNotFound, status)

	// known group filtered down to nothing is still a board
	s.addRanking(s.addUser(bornYearsAgo(60)), group, 300, string(ranking.TierFor(300)))
	var resp leaderboard.GlobalResponse
	status = s.doJSON(
		userID, http.MethodGet,
		fmt.Sprintf("/api/rankings/leaderboard?muscle_group=%s&max_age=25", group),
		nil, &resp,
	)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Zero(s.T(), resp.Total)
	assert.Empty(s.T(), resp.Leaderboard)
}

func (s *IntegrationTestSuite) TestLeaderboard_AgeFilter() {
	group := s.uniqueGroup()
	young := s.addUser(bornYearsAgo(25))
	thirty := s.addUser(bornYearsAgo(30))
	old := s.addUser(bornYearsAgo(45))
	s.addRanking(young, group, 900, "Silver")
	s.addRanking(thirty, group, 800, "Silver")
	s.addRanking(old, group, 700, "Silver")

	var resp leaderboard.GlobalResponse
	status := s.doJSON(
		young, http.MethodGet,
		fmt.Sprintf("/api/rankings/leaderboard?muscle_group=%s&min_age=30", group),
		nil, &resp,
	)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), resp.Leaderboard, 2)
	assert.Equal(s.T(), thirty, resp.Leaderboard[0].UserID)
	assert.Equal(s.T(), 30, resp.Leaderboard[0].Age)
	assert.Equal(s.T(), old, resp.Leaderboard[1].UserID)
	assert.Equal(s.T(), 2, resp.Total)

	status = s.doJSON(
		young, http.MethodGet,
		fmt.Sprintf("/api/rankings/leaderboard?muscle_group=%s&min_age=30&max_age=30", group),
		nil, &resp,
	)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), resp.Leaderboard, 1)
	assert.Equal(s.T(), thirty, resp.Leaderboard[0].UserID)
}

func (s *IntegrationTestSuite) TestLeaderboard_OverallAveragesPresentGroups() {
	requester := s.addUser(bornYearsAgo(28))
	friend := s.addUser(bornYearsAgo(29))
	stranger := s.addUser(bornYearsAgo(30))
	s.addFriendship(requester, friend, "accepted")

	// stranger ranks only inside the global scope
	s.addRanking(requester, "Chest", 1200, "Gold")
	s.addRanking(requester, "Legs", 301, "Bronze")
	s.addRanking(friend, "Back", 500, "Silver")
	s.addRanking(stranger, "Chest", 5000, "Gold")

	var resp leaderboard.FriendsResponse
	status := s.doJSON(requester, http.MethodGet, "/api/rankings/leaderboard/friends", nil, &resp)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), leaderboard.Overall, resp.MuscleGroup)
	require.Len(s.T(), resp.Leaderboard, 2)

	assert.Equal(s.T(), requester, resp.Leaderboard[0].UserID)
	assert.Equal(s.T(), 750, resp.Leaderboard[0].MMRScore)
	assert.Equal(s.T(), ranking.Silver, resp.Leaderboard[0].RankTier)
	assert.True(s.T(), resp.Leaderboard[0].IsCurrentUser)
	assert.Nil(s.T(), resp.Leaderboard[0].IsOutgoing)

	assert.Equal(s.T(), friend, resp.Leaderboard[1].UserID)
	assert.False(s.T(), resp.Leaderboard[1].IsCurrentUser)
	require.NotNil(s.T(), resp.Leaderboard[1].IsOutgoing)
	assert.True(s.T(), *resp.Leaderboard[1].IsOutgoing)
}

func (s *IntegrationTestSuite) TestLeaderboard_FriendsScopeRestriction() {
	group := s.uniqueGroup()
	requester := s.addUser(bornYearsAgo(28))
	accepted := s.addUser(bornYearsAgo(29))
	pending := s.addUser(bornYearsAgo(30))
	stranger := s.addUser(bornYearsAgo(31))
	s.addFriendship(accepted, requester, "accepted")
	s.addFriendship(requester, pending, "pending")

	for i, userID := range []int{requester, accepted, pending, stranger} {
		s.addRanking(userID, group, 100+i, "Bronze")
	}

	var resp leaderboard.FriendsResponse
	status := s.doJSON(
		requester, http.MethodGet,
		"/api/rankings/leaderboard/friends?muscle_group="+group,
		nil, &resp,
	)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), resp.Leaderboard, 2)
	assert.Equal(s.T(), accepted, resp.Leaderboard[0].UserID)
	require.NotNil(s.T(), resp.Leaderboard[0].IsOutgoing)
	assert.False(s.T(), *resp.Leaderboard[0].IsOutgoing)
	assert.Equal(s.T(), requester, resp.Leaderboard[1].UserID)
}
