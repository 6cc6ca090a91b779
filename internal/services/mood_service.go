package services

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/therapick/therapick-api/internal/models"
	"github.com/therapick/therapick-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxMoodNotes       = 300
	defaultMoodWindow  = 30 * 24 * time.Hour
	defaultMoodLimit   = 30
	topTagCount        = 5
	neutralMoodScore   = 3
)

// MoodInput is the journal request payload. Triggers and activities accept
// a single value or an array; nil means "leave unchanged" on update.
type MoodInput struct {
	Date       string                 `json:"date"`
	Mood       string                 `json:"mood"`
	Notes      *string                `json:"notes"`
	Triggers   types.FlexList[string] `json:"triggers"`
	Activities types.FlexList[string] `json:"activities"`
}

// MoodCount is a per-mood tally within a range.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// TriggerCount is a trigger frequency within a range.
type TriggerCount struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

// ActivityCount is an activity frequency within a range.
type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// DateRange echoes the stats window back to the caller.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MoodStats aggregates a user's journal over a date range.
type MoodStats struct {
	Stats         []MoodCount     `json:"stats"`
	AverageScore  string          `json:"averageScore"`
	TotalEntries  int             `json:"totalEntries"`
	DateRange     DateRange       `json:"dateRange"`
	TopTriggers   []TriggerCount  `json:"topTriggers"`
	TopActivities []ActivityCount `json:"topActivities"`
}

// MoodService owns the daily mood journal: one entry per user per calendar
// day with upsert semantics, plus range statistics.
type MoodService interface {
	Log(userID string, in MoodInput) (*models.MoodEntry, bool, error)
	List(userID string, start, end *time.Time, limit int) ([]models.MoodEntry, error)
	Stats(userID string, start, end time.Time) (*MoodStats, error)
	Delete(userID, id string) error
}

type moodService struct {
	db *gorm.DB
}

// NewMoodService builds the GORM-backed mood journal service.
func NewMoodService(db *gorm.DB) MoodService {
	return &moodService{db: db}
}

// Log upserts the entry for (user, day). The bool result reports whether a
// new row was created. Mood always replaces; notes, triggers, and
// activities replace only when provided.
func (s *moodService) Log(userID string, in MoodInput) (*models.MoodEntry, bool, error) {
	if in.Mood == "" {
		return nil, false, types.BadRequest("Please provide a mood")
	}
	if !models.ValidMood(in.Mood) {
		return nil, false, types.BadRequest("Mood must be one of: great, happy, okay, anxious, sad")
	}
	if in.Notes != nil && len(*in.Notes) > maxMoodNotes {
		return nil, false, types.BadRequest("Notes cannot exceed 300 characters")
	}

	date := time.Now()
	if in.Date != "" {
		parsed, err := ParseFlexibleTime(in.Date)
		if err != nil {
			return nil, false, types.BadRequest("Invalid date format")
		}
		date = parsed
	}
	day := models.NormalizeDate(date)

	var existing models.MoodEntry
	err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&existing).Error
	created := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !created {
		return nil, false, types.Internal("Could not log mood")
	}

	entry := models.MoodEntry{
		ID:         existing.ID,
		UserID:     userID,
		Date:       day,
		Mood:       in.Mood,
		Notes:      existing.Notes,
		Triggers:   existing.Triggers,
		Activities: existing.Activities,
	}
	if created {
		entry.ID = uuid.NewString()
	}
	if in.Notes != nil {
		entry.Notes = *in.Notes
	}
	if in.Triggers != nil {
		entry.Triggers = in.Triggers.Slice()
	}
	if in.Activities != nil {
		entry.Activities = in.Activities.Slice()
	}

	// The unique (user_id, date) index plus the conflict clause keeps the
	// one-entry-per-day invariant under concurrent first logs.
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "notes", "triggers", "activities", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, false, types.Internal("Could not log mood")
	}
	return &entry, created, nil
}

func (s *moodService) List(userID string, start, end *time.Time, limit int) ([]models.MoodEntry, error) {
	query := s.db.Where("user_id = ?", userID)
	if start == nil && end == nil {
		query = query.Where("date >= ?", time.Now().UTC().Add(-defaultMoodWindow))
	} else {
		if start != nil {
			query = query.Where("date >= ?", start.UTC())
		}
		if end != nil {
			query = query.Where("date <= ?", end.UTC())
		}
	}
	if limit <= 0 {
		limit = defaultMoodLimit
	}

	var entries []models.MoodEntry
	if err := query.Order("date DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, types.Internal("Could not list mood entries")
	}
	return entries, nil
}

func (s *moodService) Stats(userID string, start, end time.Time) (*MoodStats, error) {
	var entries []models.MoodEntry
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start.UTC(), end.UTC()).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, types.Internal("Could not compute mood statistics")
	}

	stats := &MoodStats{
		Stats:         []MoodCount{},
		TotalEntries:  len(entries),
		DateRange:     DateRange{Start: start, End: end},
		TopTriggers:   []TriggerCount{},
		TopActivities: []ActivityCount{},
	}

	moodCounts := map[string]int{}
	var moodOrder []string
	scoreSum := 0
	triggers := newTagTally()
	activities := newTagTally()

	for _, entry := range entries {
		if moodCounts[entry.Mood] == 0 {
			moodOrder = append(moodOrder, entry.Mood)
		}
		moodCounts[entry.Mood]++

		if score, ok := models.MoodScores[entry.Mood]; ok {
			scoreSum += score
		} else {
			scoreSum += neutralMoodScore
		}

		for _, t := range entry.Triggers {
			triggers.add(t)
		}
		for _, a := range entry.Activities {
			activities.add(a)
		}
	}

	for _, mood := range moodOrder {
		stats.Stats = append(stats.Stats, MoodCount{Mood: mood, Count: moodCounts[mood]})
	}

	average := float64(neutralMoodScore)
	if len(entries) > 0 {
		average = float64(scoreSum) / float64(len(entries))
	}
	stats.AverageScore = strconv.FormatFloat(average, 'f', 2, 64)

	for _, tc := range triggers.top(topTagCount) {
		stats.TopTriggers = append(stats.TopTriggers, TriggerCount{Trigger: tc.name, Count: tc.count})
	}
	for _, ac := range activities.top(topTagCount) {
		stats.TopActivities = append(stats.TopActivities, ActivityCount{Activity: ac.name, Count: ac.count})
	}
	return stats, nil
}

func (s *moodService) Delete(userID, id string) error {
	var entry models.MoodEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("Mood entry not found")
		}
		return types.Internal("Could not delete mood entry")
	}
	if entry.UserID != userID {
		return types.Forbidden("Not authorized to delete this mood entry")
	}
	if err := s.db.Delete(&entry).Error; err != nil {
		return types.Internal("Could not delete mood entry")
	}
	return nil
}

// tagTally counts tags preserving first-encountered order so frequency
// ties resolve deterministically.
type tagTally struct {
	counts map[string]int
	order  []string
}

type tagCount struct {
	name  string
	count int
}

func newTagTally() *tagTally {
	return &tagTally{counts: map[string]int{}}
}

func (t *tagTally) add(name string) {
	if t.counts[name] == 0 {
		t.order = append(t.order, name)
	}
	t.counts[name]++
}

func (t *tagTally) top(n int) []tagCount {
	out := make([]tagCount, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, tagCount{name: name, count: t.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
