package models

import "time"

// Appointment statuses. "completed" is never set by this service; an
// out-of-band scheduler owns that transition.
const (
	AppointmentUpcoming    = "upcoming"
	AppointmentCompleted   = "completed"
	AppointmentCancelled   = "cancelled"
	AppointmentRescheduled = "rescheduled"
)

// CancellationWindow is the minimum lead time for a cancellation.
const CancellationWindow = 24 * time.Hour

// Appointment is a booking against a directory therapist. The therapist
// fields are a snapshot taken at booking time. Cancellation flips status
// rather than deleting the row.
type Appointment struct {
	ID                 string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID             string     `gorm:"type:char(36);not null;index:idx_appointments_user_date" json:"userId"`
	TherapistID        string     `gorm:"size:64;not null" json:"therapistId"`
	TherapistName      string     `gorm:"size:255;not null" json:"therapistName"`
	TherapistSpecialty string     `gorm:"size:255;not null" json:"therapistSpecialty"`
	Date               time.Time  `gorm:"not null;index:idx_appointments_user_date" json:"date"`
	Time               string     `gorm:"size:32;not null" json:"time"`
	Status             string     `gorm:"size:20;not null;default:upcoming;index" json:"status"`
	Notes              string     `gorm:"size:500" json:"notes,omitempty"`
	ReminderSent       bool       `gorm:"not null;default:false" json:"reminderSent"`
	CancellationReason string     `gorm:"size:200" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// CanBeCancelled reports whether the appointment is outside the
// cancellation window at instant now.
func (a *Appointment) CanBeCancelled(now time.Time) bool {
	return a.Date.Sub(now) > CancellationWindow
}

// TableName overrides the table name for Appointment
func (Appointment) TableName() string {
	return "appointments"
}
