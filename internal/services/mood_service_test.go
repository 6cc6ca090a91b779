package services

import (
	"strings"
	"testing"
	"time"

	"github.com/therapick/therapick-api/internal/types"
)

func strPtr(s string) *string { return &s }

func TestLogMoodCreatesEntry(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewMoodService(db)

	entry, created, err := svc.Log(userID, MoodInput{
		Mood:     "anxious",
		Notes:    strPtr("rough morning"),
		Triggers: types.FlexList[string]{"work"},
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !created {
		t.Error("first log of the day must report created")
	}
	if entry.Date.Hour() != 0 || entry.Date.Minute() != 0 || entry.Date.Location() != time.UTC {
		t.Errorf("date = %v, want UTC midnight", entry.Date)
	}
	if len(entry.Triggers) != 1 || entry.Triggers[0] != "work" {
		t.Errorf("triggers = %v", entry.Triggers)
	}
}

func TestLogMoodSameDayUpserts(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewMoodService(db)

	first, created, err := svc.Log(userID, MoodInput{
		Mood:     "sad",
		Notes:    strPtr("morning entry"),
		Triggers: types.FlexList[string]{"sleep"},
	})
	if err != nil || !created {
		t.Fatalf("first log: created=%v err=%v", created, err)
	}

	// Second log the same day updates mood but keeps omitted fields
	second, created, err := svc.Log(userID, MoodInput{Mood: "okay"})
	if err != nil {
		t.Fatalf("second log: %v", err)
	}
	if created {
		t.Error("second log of the day must report updated, not created")
	}
	if second.ID != first.ID {
		t.Error("same-day log must reuse the existing row")
	}
	if second.Mood != "okay" {
		t.Errorf("mood = %q, want okay", second.Mood)
	}
	if second.Notes != "morning entry" {
		t.Errorf("omitted notes were replaced: %q", second.Notes)
	}
	if len(second.Triggers) != 1 || second.Triggers[0] != "sleep" {
		t.Errorf("omitted triggers were replaced: %v", second.Triggers)
	}

	entries, err := svc.List(userID, nil, nil, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("day holds %d entries, want 1", len(entries))
	}
}

func TestLogMoodValidation(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewMoodService(db)

	_, _, err := svc.Log(userID, MoodInput{})
	wantAppError(t, err, 400, "validation")

	_, _, err = svc.Log(userID, MoodInput{Mood: "ecstatic"})
	wantAppError(t, err, 400, "validation")

	_, _, err = svc.Log(userID, MoodInput{Mood: "happy", Date: "yesterday"})
	wantAppError(t, err, 400, "validation")

	long := strings.Repeat("x", 301)
	_, _, err = svc.Log(userID, MoodInput{Mood: "happy", Notes: &long})
	wantAppError(t, err, 400, "validation")
}

func logOnDay(t *testing.T, svc MoodService, userID string, daysAgo int, mood string, triggers, activities []string) {
	t.Helper()
	date := time.Now().UTC().AddDate(0, 0, -daysAgo).Format("2006-01-02")
	_, _, err := svc.Log(userID, MoodInput{
		Date:       date,
		Mood:       mood,
		Triggers:   types.FlexList[string](triggers),
		Activities: types.FlexList[string](activities),
	})
	if err != nil {
		t.Fatalf("log %s on day -%d: %v", mood, daysAgo, err)
	}
}

func TestMoodStats(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewMoodService(db)

	logOnDay(t, svc, userID, 3, "great", []string{"exercise"}, []string{"running"})
	logOnDay(t, svc, userID, 2, "sad", []string{"work", "sleep"}, nil)
	logOnDay(t, svc, userID, 1, "sad", []string{"work"}, []string{"reading"})

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -7)
	stats, err := svc.Stats(userID, start, end)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalEntries != 3 {
		t.Errorf("totalEntries = %d, want 3", stats.TotalEntries)
	}
	// great=5, sad=1, sad=1 -> 7/3 = 2.33
	if stats.AverageScore != "2.33" {
		t.Errorf("averageScore = %q, want 2.33", stats.AverageScore)
	}

	counts := map[string]int{}
	for _, mc := range stats.Stats {
		counts[mc.Mood] = mc.Count
	}
	if counts["sad"] != 2 || counts["great"] != 1 {
		t.Errorf("mood counts = %v", counts)
	}

	if len(stats.TopTriggers) == 0 || stats.TopTriggers[0].Trigger != "work" || stats.TopTriggers[0].Count != 2 {
		t.Errorf("topTriggers = %v, want work first with count 2", stats.TopTriggers)
	}
	if len(stats.TopActivities) != 2 {
		t.Errorf("topActivities = %v, want 2 entries", stats.TopActivities)
	}
}

func TestMoodStatsEmptyRange(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewMoodService(db)

	end := time.Now().UTC()
	stats, err := svc.Stats(userID, end.AddDate(0, 0, -7), end)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("totalEntries = %d, want 0", stats.TotalEntries)
	}
	if stats.AverageScore != "3.00" {
		t.Errorf("averageScore = %q, want neutral 3.00", stats.AverageScore)
	}
	if stats.Stats == nil || stats.TopTriggers == nil || stats.TopActivities == nil {
		t.Error("empty stats must serialize as empty arrays, not null")
	}
}

func TestMoodStatsTopFiveCap(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewMoodService(db)

	triggers := []string{"work", "sleep", "family", "health", "money", "weather", "news"}
	for i, trig := range triggers {
		logOnDay(t, svc, userID, i+1, "okay", []string{trig}, nil)
	}

	end := time.Now().UTC()
	stats, err := svc.Stats(userID, end.AddDate(0, 0, -10), end)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.TopTriggers) != 5 {
		t.Errorf("topTriggers has %d entries, want capped at 5", len(stats.TopTriggers))
	}
}

func TestDeleteMoodEntry(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewMoodService(db)

	entry, _, err := svc.Log(userID, MoodInput{Mood: "happy"})
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	err = svc.Delete("intruder", entry.ID)
	wantAppError(t, err, 403, "authorization")

	if err := svc.Delete(userID, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.Delete(userID, entry.ID)
	wantAppError(t, err, 404, "not_found")
}
