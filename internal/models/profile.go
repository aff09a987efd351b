package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserRole is the coarse permission level of a profile.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "user"
	RoleGuest  UserRole = "guest"
)

// UserStats are the aggregate statistics derived from a profile's debate
// history. StrongestCategory/WeakestCategory are the categories with the
// highest and lowest average overall score.
type UserStats struct {
	TotalDebates      int     `json:"total_debates"`
	Wins              int     `json:"wins"`
	WinRate           float64 `json:"win_rate"`
	StrongestCategory string  `json:"strongest_category"`
	WeakestCategory   string  `json:"weakest_category"`
}

// UserProfile is one user's persisted profile in the store. BestOverall and
// WinRate are maintained on append so leaderboards can sort without scanning
// debate history.
type UserProfile struct {
	ID           surrealmodels.RecordID `json:"id,omitempty"`
	Name         string                 `json:"name"`
	Role         UserRole               `json:"role"`
	TotalDebates int                    `json:"total_debates"`
	Wins         int                    `json:"wins"`
	WinRate      float64                `json:"win_rate"`
	BestOverall  int                    `json:"best_overall"`
	Created      time.Time              `json:"created,omitempty"`
	Updated      time.Time              `json:"updated,omitempty"`
}
