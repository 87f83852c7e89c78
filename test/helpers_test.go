package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-test-secret"

func (s *IntegrationTestSuite) tokenFor(userID int) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ID:        s.faker.UUID(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(s.T(), err)
	return token
}

// do sends an authenticated request and returns the status code and raw body.
func (s *IntegrationTestSuite) do(userID int, method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reader)
	require.NoError(s.T(), err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set("Authorization", "Bearer "+s.tokenFor(userID))
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer func() {
		require.NoError(s.T(), resp.Body.Close())
	}()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) doJSON(userID int, method, path string, body any, out any) int {
	status, respBytes := s.do(userID, method, path, body)
	if out != nil && len(respBytes) > 0 {
		require.NoError(s.T(), json.Unmarshal(respBytes, out), string(respBytes))
	}
	return status
}

// addUser inserts a user born on dateOfBirth and returns its id.
func (s *IntegrationTestSuite) addUser(dateOfBirth time.Time) int {
	var id int
	err := s.DB.QueryRow(
		`INSERT INTO users (username, email, date_of_birth) VALUES ($1, $2, $3) RETURNING user_id`,
		fmt.Sprintf("%s_%d", s.faker.Username(), s.faker.Number(1, 1_000_000)),
		fmt.Sprintf("%d_%s", s.faker.Number(1, 1_000_000), s.faker.Email()),
		dateOfBirth,
	).Scan(&id)
	require.NoError(s.T(), err)
	return id
}

// bornYearsAgo is a date of birth giving exactly years of age today.
func bornYearsAgo(years int) time.Time {
	return time.Now().UTC().AddDate(-years, 0, -1)
}

func (s *IntegrationTestSuite) addRanking(userID int, muscleGroup string, score int, tier string) {
	_, err := s.DB.Exec(
		`INSERT INTO user_rankings (user_id, muscle_group, mmr_score, rank_tier) VALUES ($1, $2, $3, $4)`,
		userID, muscleGroup, score, tier,
	)
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) addFriendship(userID, friendID int, status string) int {
	var id int
	err := s.DB.QueryRow(
		`INSERT INTO friends (user_id, friend_id, status) VALUES ($1, $2, $3) RETURNING friendship_id`,
		userID, friendID, status,
	).Scan(&id)
	require.NoError(s.T(), err)
	return id
}

// uniqueGroup keeps leaderboard tests on a muscle group no other test writes to.
func (s *IntegrationTestSuite) uniqueGroup() string {
	return fmt.Sprintf("group-%s", s.faker.LetterN(10))
}
