package models

import (
	"time"

	"gorm.io/datatypes"
)

// SavedTherapist is a bookmarked therapist with a snapshot of the
// directory fields at save time. The snapshot is never refreshed from the
// provider; re-saving the same pair updates it in place.
type SavedTherapist struct {
	ID                 string                     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID             string                     `gorm:"type:char(36);not null;uniqueIndex:idx_saved_user_therapist" json:"userId"`
	TherapistID        string                     `gorm:"size:64;not null;uniqueIndex:idx_saved_user_therapist" json:"therapistId"`
	TherapistName      string                     `gorm:"size:255;not null" json:"therapistName"`
	TherapistSpecialty string                     `gorm:"size:255" json:"therapistSpecialty"`
	TherapistRating    float64                    `json:"therapistRating"`
	TherapistLocation  string                     `gorm:"size:255" json:"therapistLocation"`
	Moods              datatypes.JSONSlice[string] `gorm:"type:json" json:"moods"`
	Notes              string                     `gorm:"size:300" json:"notes,omitempty"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

// TableName overrides the table name for SavedTherapist
func (SavedTherapist) TableName() string {
	return "saved_therapists"
}
