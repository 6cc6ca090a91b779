package services

import (
	"strings"
	"testing"
	"time"

	"github.com/therapick/therapick-api/internal/models"
)

func bookingInput(date time.Time) AppointmentInput {
	return AppointmentInput{
		TherapistID:        "1",
		TherapistName:      "Dr. Sarah Johnson",
		TherapistSpecialty: "Depression & Mood Disorders",
		Date:               date.UTC().Format(time.RFC3339),
		Time:               "10:00 AM",
	}
}

func TestCreateAppointment(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewAppointmentService(db)

	appt, err := svc.Create(userID, bookingInput(time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if appt.Status != models.AppointmentUpcoming {
		t.Errorf("status = %q, want upcoming", appt.Status)
	}
	if appt.ID == "" {
		t.Error("appointment must get an ID")
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewAppointmentService(db)

	_, err := svc.Create(userID, AppointmentInput{TherapistID: "1"})
	wantAppError(t, err, 400, "validation")

	in := bookingInput(time.Now().Add(48 * time.Hour))
	in.Date = "not-a-date"
	_, err = svc.Create(userID, in)
	wantAppError(t, err, 400, "validation")

	// Past dates are rejected
	_, err = svc.Create(userID, bookingInput(time.Now().Add(-time.Hour)))
	wantAppError(t, err, 400, "validation")

	long := strings.Repeat("x", 501)
	in = bookingInput(time.Now().Add(48 * time.Hour))
	in.Notes = &long
	_, err = svc.Create(userID, in)
	wantAppError(t, err, 400, "validation")
}

func TestListAndUpcomingAppointments(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewAppointmentService(db)

	later := time.Now().Add(72 * time.Hour)
	sooner := time.Now().Add(48 * time.Hour)
	if _, err := svc.Create(userID, bookingInput(later)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(userID, bookingInput(sooner)); err != nil {
		t.Fatalf("create: %v", err)
	}

	appts, err := svc.List(userID, AppointmentFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("listed %d appointments, want 2", len(appts))
	}
	if !appts[0].Date.Before(appts[1].Date) {
		t.Error("list must be ordered by date ascending")
	}

	upcoming, err := svc.Upcoming(userID)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Errorf("upcoming = %d, want 2", len(upcoming))
	}

	// Other users never see these rows
	other := "someone-else"
	appts, err = svc.List(other, AppointmentFilter{})
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(appts) != 0 {
		t.Errorf("other user sees %d appointments, want 0", len(appts))
	}
}

func TestListAppointmentsByStatus(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewAppointmentService(db)

	appt, err := svc.Create(userID, bookingInput(time.Now().Add(96*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(userID, bookingInput(time.Now().Add(48*time.Hour))); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Cancel(userID, appt.ID, "schedule conflict"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	cancelled, err := svc.List(userID, AppointmentFilter{Status: models.AppointmentCancelled})
	if err != nil {
		t.Fatalf("list cancelled: %v", err)
	}
	if len(cancelled) != 1 || cancelled[0].ID != appt.ID {
		t.Errorf("cancelled filter returned %d rows", len(cancelled))
	}
}

func TestUpdateAppointmentReschedules(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewAppointmentService(db)

	appt, err := svc.Create(userID, bookingInput(time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newDate := time.Now().Add(96 * time.Hour).UTC().Format(time.RFC3339)
	updated, err := svc.Update(userID, appt.ID, AppointmentUpdate{Date: &newDate})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.AppointmentRescheduled {
		t.Errorf("status after date change = %q, want rescheduled", updated.Status)
	}

	// Notes-only update keeps the status
	notes := "bring intake forms"
	updated, err = svc.Update(userID, appt.ID, AppointmentUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if updated.Status != models.AppointmentRescheduled {
		t.Errorf("notes update changed status to %q", updated.Status)
	}
	if updated.Notes != notes {
		t.Errorf("notes = %q", updated.Notes)
	}
}

func TestCancelAppointmentWindow(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewAppointmentService(db)

	// Outside the 24h window, cancellation succeeds
	appt, err := svc.Create(userID, bookingInput(time.Now().Add(25*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	cancelled, err := svc.Cancel(userID, appt.ID, "feeling better")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.AppointmentCancelled {
		t.Errorf("status = %q, want cancelled", cancelled.Status)
	}
	if cancelled.CancellationReason != "feeling better" {
		t.Errorf("reason = %q", cancelled.CancellationReason)
	}
	if cancelled.CancelledAt == nil {
		t.Error("cancel must stamp cancelled_at")
	}

	// Inside the window, cancellation is a policy violation
	appt, err = svc.Create(userID, bookingInput(time.Now().Add(23*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.Cancel(userID, appt.ID, "")
	wantAppError(t, err, 400, "policy")

	// The row keeps its upcoming status
	kept, err := svc.Get(userID, appt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept.Status != models.AppointmentUpcoming {
		t.Errorf("status after refused cancel = %q, want upcoming", kept.Status)
	}
}

func TestAppointmentOwnership(t *testing.T) {
	db := setupDB(t)
	userID := registerTestUser(t, db)
	svc := NewAppointmentService(db)

	appt, err := svc.Create(userID, bookingInput(time.Now().Add(48*time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Get("intruder", appt.ID)
	wantAppError(t, err, 403, "authorization")

	_, err = svc.Cancel("intruder", appt.ID, "")
	wantAppError(t, err, 403, "authorization")

	_, err = svc.Get(userID, "missing-id")
	wantAppError(t, err, 404, "not_found")
}
