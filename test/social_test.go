package test

import (
	"fmt"
	"net/http"

	"github.com/2beens/evolvx/internal/social"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestFriendRequest_Flow() {
	sender := s.addUser(bornYearsAgo(26))
	recipient := s.addUser(bornYearsAgo(27))
	outsider := s.addUser(bornYearsAgo(28))

	var sent social.RequestResponse
	status := s.doJSON(sender, http.MethodPost, "/api/social/friends/request", social.SendRequestBody{FriendID: recipient}, &sent)
	require.Equal(s.T(), http.StatusCreated, status)
	require.Positive(s.T(), sent.FriendshipID)

	// duplicate in the reverse direction
	status, _ = s.do(recipient, http.MethodPost, "/api/social/friends/request", social.SendRequestBody{FriendID: sender})
	assert.Equal(s.T(), http.StatusBadRequest, status)
	status, _ = s.do(sender, http.MethodPost, "/api/social/friends/request", social.SendRequestBody{FriendID: sender})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	respondPath := fmt.Sprintf("/api/social/friends/request/%d", sent.FriendshipID)
	status, _ = s.do(outsider, http.MethodPut, respondPath, social.RespondBody{Action: "accept"})
	assert.Equal(s.T(), http.StatusForbidden, status)
	status, _ = s.do(sender, http.MethodPut, respondPath, social.RespondBody{Action: "accept"})
	assert.Equal(s.T(), http.StatusForbidden, status)

	var pending []social.Friend
	status = s.doJSON(recipient, http.MethodGet, "/api/social/friends?status=pending", nil, &pending)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), pending, 1)
	assert.Equal(s.T(), sender, pending[0].UserID)
	assert.False(s.T(), pending[0].IsOutgoing)

	status, _ = s.do(recipient, http.MethodPut, respondPath, social.RespondBody{Action: "accept"})
	require.Equal(s.T(), http.StatusOK, status)
	status, _ = s.do(recipient, http.MethodPut, respondPath, social.RespondBody{Action: "reject"})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	var friends []social.Friend
	status = s.doJSON(sender, http.MethodGet, "/api/social/friends", nil, &friends)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), friends, 1)
	assert.Equal(s.T(), recipient, friends[0].UserID)
	assert.True(s.T(), friends[0].IsOutgoing)
	assert.Equal(s.T(), social.StatusAccepted, friends[0].Status)
}

func (s *IntegrationTestSuite) TestSharedWorkout_Flow() {
	creator := s.addUser(bornYearsAgo(30))
	friend := s.addUser(bornYearsAgo(31))
	stranger := s.addUser(bornYearsAgo(32))
	s.addFriendship(creator, friend, string(social.StatusAccepted))

	name := "Leg day"
	status, _ := s.do(creator, http.MethodPost, "/api/social/shared-workouts", social.CreateSharedWorkoutBody{})
	assert.Equal(s.T(), http.StatusBadRequest, status)

	var created social.SharedWorkoutResponse
	status = s.doJSON(creator, http.MethodPost, "/api/social/shared-workouts", social.CreateSharedWorkoutBody{WorkoutName: &name}, &created)
	require.Equal(s.T(), http.StatusCreated, status)
	require.Positive(s.T(), created.SharedWorkoutID)

	var visible []social.SharedWorkout
	status = s.doJSON(friend, http.MethodGet, "/api/social/shared-workouts", nil, &visible)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), visible, 1)
	assert.Equal(s.T(), creator, visible[0].CreatorID)
	assert.Equal(s.T(), 1, visible[0].ParticipantCount)
	assert.False(s.T(), visible[0].IsParticipating)

	status = s.doJSON(stranger, http.MethodGet, "/api/social/shared-workouts", nil, &visible)
	require.Equal(s.T(), http.StatusOK, status)
	assert.Empty(s.T(), visible)

	joinPath := fmt.Sprintf("/api/social/shared-workouts/%d/join", created.SharedWorkoutID)
	status, _ = s.do(creator, http.MethodPost, joinPath, nil)
	assert.Equal(s.T(), http.StatusBadRequest, status)
	status, _ = s.do(stranger, http.MethodPost, joinPath, nil)
	require.Equal(s.T(), http.StatusOK, status)
	status, _ = s.do(stranger, http.MethodPost, fmt.Sprintf("/api/social/shared-workouts/%d/join", created.SharedWorkoutID+1000), nil)
	assert.Equal(s.T(), http.StatusNotFound, status)

	// participating makes the session visible without a friendship
	status = s.doJSON(stranger, http.MethodGet, "/api/social/shared-workouts", nil, &visible)
	require.Equal(s.T(), http.StatusOK, status)
	require.Len(s.T(), visible, 1)
	assert.True(s.T(), visible[0].IsParticipating)
	assert.False(s.T(), visible[0].IsCreator)
	assert.Equal(s.T(), 2, visible[0].ParticipantCount)
	require.Len(s.T(), visible[0].Participants, 2)
	assert.Equal(s.T(), creator, visible[0].Participants[0].UserID)
}
