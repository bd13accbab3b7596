package models

import "time"

// Practice statuses accepted on a journal entry.
const (
	StatusYes = "yes"
	StatusNo  = "no"
)

// Chanting records whether the user chanted and, if so, how many rounds.
type Chanting struct {
	Status string `json:"status"`
	Rounds int    `json:"rounds,omitempty"`
}

// Practice records a yes/no daily practice.
type Practice struct {
	Status string `json:"status"`
}

// JournalEntry is a single day's journal for one user. Date is the UTC
// calendar date as "2006-01-02"; the pair (UserID, Date) is unique.
type JournalEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      string    `json:"date"`
	Chanting  Chanting  `json:"chanting"`
	Reading   Practice  `json:"reading"`
	Katha     Practice  `json:"katha"`
	Gratitude string    `json:"gratitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
