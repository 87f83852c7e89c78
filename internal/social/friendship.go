package social

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ListFilter selects friendships by status; ListAll returns every status.
type ListFilter string

const (
	ListAccepted ListFilter = "accepted"
	ListPending  ListFilter = "pending"
	ListAll      ListFilter = "all"
)

// Friendship is a directed request from UserID to FriendID. Once accepted it is
// treated as symmetric.
type Friendship struct {
	ID        int       `json:"friendship_id"`
	UserID    int       `json:"user_id"`
	FriendID  int       `json:"friend_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Friend is a friendship as seen from one of its two users.
type Friend struct {
	FriendshipID int       `json:"friendship_id"`
	UserID       int       `json:"user_id"`
	Username     string    `json:"username"`
	Status       Status    `json:"status"`
	IsOutgoing   bool      `json:"is_outgoing"`
	CreatedAt    time.Time `json:"created_at"`
	WorkoutCount int       `json:"workout_count"`
}
