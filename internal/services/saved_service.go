package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/therapick/therapick-api/internal/directory"
	"github.com/therapick/therapick-api/internal/models"
	"github.com/therapick/therapick-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedTherapistInput is the save/bookmark request payload. The therapist*
// fields are the caller-supplied fallback used when the directory lookup
// fails.
type SavedTherapistInput struct {
	TherapistID        string                 `json:"therapistId"`
	Moods              types.FlexList[string] `json:"moods"`
	Notes              *string                `json:"notes"`
	TherapistName      string                 `json:"therapistName"`
	TherapistSpecialty string                 `json:"therapistSpecialty"`
	TherapistRating    float64                `json:"therapistRating"`
	TherapistLocation  string                 `json:"therapistLocation"`
}

// SavedTherapistService owns the bookmarked-therapist collection. Saving
// is idempotent per (user, therapist): a re-save refreshes the snapshot
// instead of duplicating.
type SavedTherapistService interface {
	Save(ctx context.Context, userID string, in SavedTherapistInput) (*models.SavedTherapist, bool, error)
	List(userID string) ([]models.SavedTherapist, error)
	Check(userID, therapistID string) (*models.SavedTherapist, error)
	Remove(userID, therapistID string) error
}

type savedTherapistService struct {
	db  *gorm.DB
	dir directory.Client
}

// NewSavedTherapistService builds the GORM-backed saved-therapist service.
func NewSavedTherapistService(db *gorm.DB, dir directory.Client) SavedTherapistService {
	return &savedTherapistService{db: db, dir: dir}
}

func (s *savedTherapistService) Save(ctx context.Context, userID string, in SavedTherapistInput) (*models.SavedTherapist, bool, error) {
	if in.TherapistID == "" {
		return nil, false, types.BadRequest("Please provide therapist ID")
	}
	if in.Notes != nil && len(*in.Notes) > maxMoodNotes {
		return nil, false, types.BadRequest("Notes cannot exceed 300 characters")
	}

	name, specialty, rating, location := s.snapshot(ctx, in)

	var existing models.SavedTherapist
	err := s.db.Where("user_id = ? AND therapist_id = ?", userID, in.TherapistID).First(&existing).Error
	created := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !created {
		return nil, false, types.Internal("Could not save therapist")
	}

	saved := models.SavedTherapist{
		ID:                 existing.ID,
		UserID:             userID,
		TherapistID:        in.TherapistID,
		TherapistName:      name,
		TherapistSpecialty: specialty,
		TherapistRating:    rating,
		TherapistLocation:  location,
		Moods:              existing.Moods,
		Notes:              existing.Notes,
	}
	if created {
		saved.ID = uuid.NewString()
	}
	if in.Moods != nil {
		saved.Moods = in.Moods.Slice()
	}
	if in.Notes != nil {
		saved.Notes = *in.Notes
	}

	// Unique (user_id, therapist_id) index makes a concurrent double-save
	// collapse into one row.
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "therapist_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"therapist_name", "therapist_specialty", "therapist_rating",
			"therapist_location", "moods", "notes", "updated_at",
		}),
	}).Create(&saved).Error
	if err != nil {
		return nil, false, types.Internal("Could not save therapist")
	}
	return &saved, created, nil
}

// snapshot fetches the therapist from the directory, degrading to the
// caller-supplied fields when the provider is unreachable. This is the one
// intentionally swallowed failure in the service.
func (s *savedTherapistService) snapshot(ctx context.Context, in SavedTherapistInput) (name, specialty string, rating float64, location string) {
	therapist, err := s.dir.GetByID(ctx, in.TherapistID)
	if err == nil {
		specialty = therapist.Specialty
		if specialty == "" && len(therapist.Tags) > 0 {
			specialty = therapist.Tags[0]
		}
		return therapist.Name, specialty, therapist.Rating, therapist.Location
	}
	log.Printf("save therapist %s: directory lookup failed, using caller data: %v", in.TherapistID, err)

	name = in.TherapistName
	if name == "" {
		name = "Unknown"
	}
	specialty = in.TherapistSpecialty
	if specialty == "" {
		specialty = "Unknown"
	}
	location = in.TherapistLocation
	if location == "" {
		location = "Unknown"
	}
	return name, specialty, in.TherapistRating, location
}

func (s *savedTherapistService) List(userID string) ([]models.SavedTherapist, error) {
	var saved []models.SavedTherapist
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	if err != nil {
		return nil, types.Internal("Could not list saved therapists")
	}
	return saved, nil
}

// Check returns the saved record for the pair, or nil when not saved.
func (s *savedTherapistService) Check(userID, therapistID string) (*models.SavedTherapist, error) {
	var saved models.SavedTherapist
	err := s.db.Where("user_id = ? AND therapist_id = ?", userID, therapistID).First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, types.Internal("Could not check saved therapist")
	}
	return &saved, nil
}

func (s *savedTherapistService) Remove(userID, therapistID string) error {
	result := s.db.Where("user_id = ? AND therapist_id = ?", userID, therapistID).Delete(&models.SavedTherapist{})
	if result.Error != nil {
		return types.Internal("Could not remove saved therapist")
	}
	if result.RowsAffected == 0 {
		return types.NotFound("Saved therapist not found")
	}
	return nil
}
