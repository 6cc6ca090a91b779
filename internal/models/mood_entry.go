package models

import (
	"time"

	"gorm.io/datatypes"
)

// Journal moods and their numeric weights for averaging.
var MoodScores = map[string]int{
	"great":   5,
	"happy":   4,
	"okay":    3,
	"anxious": 2,
	"sad":     1,
}

// ValidMood reports whether mood is one of the journal moods.
func ValidMood(mood string) bool {
	_, ok := MoodScores[mood]
	return ok
}

// MoodEntry is one journal entry per user per calendar day. Date is
// normalized to UTC midnight; the unique index enforces the one-per-day
// invariant at the storage layer.
type MoodEntry struct {
	ID         string                     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     string                     `gorm:"type:char(36);not null;uniqueIndex:idx_mood_user_date" json:"userId"`
	Date       time.Time                  `gorm:"not null;uniqueIndex:idx_mood_user_date" json:"date"`
	Mood       string                     `gorm:"size:16;not null" json:"mood"`
	Notes      string                     `gorm:"size:300" json:"notes,omitempty"`
	Triggers   datatypes.JSONSlice[string] `gorm:"type:json" json:"triggers"`
	Activities datatypes.JSONSlice[string] `gorm:"type:json" json:"activities"`
	CreatedAt  time.Time                  `json:"createdAt"`
	UpdatedAt  time.Time                  `json:"updatedAt"`
}

// NormalizeDate truncates t to the start of its UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TableName overrides the table name for MoodEntry
func (MoodEntry) TableName() string {
	return "mood_entries"
}
