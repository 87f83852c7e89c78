package leaderboard

import (
	"time"

	"github.com/2beens/evolvx/internal/ranking"
)

type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeFriends Scope = "friends"
)

// Overall ranks users by the average score over all their muscle groups.
const Overall = "overall"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

type Query struct {
	Scope       Scope
	MuscleGroup string
	// MinAge and MaxAge are inclusive calendar-year ages.
	MinAge      *int
	MaxAge      *int
	Page        int
	PerPage     int
	RequesterID int
}

type Row struct {
	UserID        int          `json:"user_id"`
	Username      string       `json:"username"`
	Age           int          `json:"age"`
	MMRScore      int          `json:"mmr_score"`
	RankTier      ranking.Tier `json:"rank_tier"`
	IsCurrentUser bool         `json:"is_current_user"`
	// IsOutgoing is set on friends rows only, and never on the requester's own row.
	IsOutgoing *bool `json:"is_outgoing,omitempty"`
}

type Page struct {
	Rows        []Row
	MuscleGroup string
	Total       int
	Pages       int
	Page        int
}

// Filter is what the store needs to select and order candidates. A nil UserIDs
// means every user; a zero Limit means no limit.
type Filter struct {
	MuscleGroup string
	BornBefore  *time.Time
	BornAfter   *time.Time
	UserIDs     []int
	Limit       int
	Offset      int
}

// Entry is one ranked candidate. RankTier is empty for the overall board.
type Entry struct {
	UserID      int
	Username    string
	DateOfBirth time.Time
	MMRScore    int
	RankTier    ranking.Tier
}
