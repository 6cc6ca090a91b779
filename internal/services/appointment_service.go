package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/therapick/therapick-api/internal/models"
	"github.com/therapick/therapick-api/internal/types"
	"gorm.io/gorm"
)

const (
	maxAppointmentNotes   = 500
	maxCancellationReason = 200
)

// AppointmentInput is the booking request payload.
type AppointmentInput struct {
	TherapistID        string  `json:"therapistId"`
	TherapistName      string  `json:"therapistName"`
	TherapistSpecialty string  `json:"therapistSpecialty"`
	Date               string  `json:"date"`
	Time               string  `json:"time"`
	Notes              *string `json:"notes"`
}

// AppointmentUpdate carries a partial reschedule/edit. Nil means "leave
// unchanged".
type AppointmentUpdate struct {
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	Notes *string `json:"notes"`
}

// AppointmentFilter narrows a listing.
type AppointmentFilter struct {
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// AppointmentService owns the booking lifecycle. Every mutation verifies
// the requesting user owns the row; a wrong owner is an authorization
// failure, not a not-found.
type AppointmentService interface {
	Create(userID string, in AppointmentInput) (*models.Appointment, error)
	List(userID string, f AppointmentFilter) ([]models.Appointment, error)
	Upcoming(userID string) ([]models.Appointment, error)
	Get(userID, id string) (*models.Appointment, error)
	Update(userID, id string, in AppointmentUpdate) (*models.Appointment, error)
	Cancel(userID, id, reason string) (*models.Appointment, error)
}

type appointmentService struct {
	db *gorm.DB
}

// NewAppointmentService builds the GORM-backed appointment service.
func NewAppointmentService(db *gorm.DB) AppointmentService {
	return &appointmentService{db: db}
}

func (s *appointmentService) Create(userID string, in AppointmentInput) (*models.Appointment, error) {
	if in.TherapistID == "" || in.TherapistName == "" || in.TherapistSpecialty == "" || in.Date == "" || in.Time == "" {
		return nil, types.BadRequest("Please provide all required fields")
	}

	date, err := ParseFlexibleTime(in.Date)
	if err != nil {
		return nil, types.BadRequest("Invalid appointment date")
	}
	if !date.After(time.Now()) {
		return nil, types.BadRequest("Appointment date must be in the future")
	}

	notes := ""
	if in.Notes != nil {
		notes = *in.Notes
	}
	if len(notes) > maxAppointmentNotes {
		return nil, types.BadRequest("Notes cannot exceed 500 characters")
	}

	appt := models.Appointment{
		ID:                 uuid.NewString(),
		UserID:             userID,
		TherapistID:        in.TherapistID,
		TherapistName:      in.TherapistName,
		TherapistSpecialty: in.TherapistSpecialty,
		Date:               date.UTC(),
		Time:               in.Time,
		Status:             models.AppointmentUpcoming,
		Notes:              notes,
	}
	if err := s.db.Create(&appt).Error; err != nil {
		return nil, types.Internal("Could not create appointment")
	}
	return &appt, nil
}

func (s *appointmentService) List(userID string, f AppointmentFilter) ([]models.Appointment, error) {
	query := s.db.Where("user_id = ?", userID)
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		query = query.Where("date >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		query = query.Where("date <= ?", f.EndDate.UTC())
	}

	var appts []models.Appointment
	if err := query.Order("date ASC").Find(&appts).Error; err != nil {
		return nil, types.Internal("Could not list appointments")
	}
	return appts, nil
}

func (s *appointmentService) Upcoming(userID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.
		Where("user_id = ? AND status = ? AND date >= ?", userID, models.AppointmentUpcoming, time.Now().UTC()).
		Order("date ASC").
		Find(&appts).Error
	if err != nil {
		return nil, types.Internal("Could not list appointments")
	}
	return appts, nil
}

func (s *appointmentService) Get(userID, id string) (*models.Appointment, error) {
	return s.findOwned(userID, id)
}

func (s *appointmentService) Update(userID, id string, in AppointmentUpdate) (*models.Appointment, error) {
	appt, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Date != nil {
		date, err := ParseFlexibleTime(*in.Date)
		if err != nil {
			return nil, types.BadRequest("Invalid appointment date")
		}
		if !date.After(time.Now()) {
			return nil, types.BadRequest("Appointment date must be in the future")
		}
		appt.Date = date.UTC()
		appt.Status = models.AppointmentRescheduled
		updates["date"] = appt.Date
		updates["status"] = appt.Status
	}
	if in.Time != nil {
		appt.Time = *in.Time
		updates["time"] = appt.Time
	}
	if in.Notes != nil {
		if len(*in.Notes) > maxAppointmentNotes {
			return nil, types.BadRequest("Notes cannot exceed 500 characters")
		}
		appt.Notes = *in.Notes
		updates["notes"] = appt.Notes
	}

	if len(updates) == 0 {
		return appt, nil
	}
	if err := s.db.Model(appt).Updates(updates).Error; err != nil {
		return nil, types.Internal("Could not update appointment")
	}
	return appt, nil
}

func (s *appointmentService) Cancel(userID, id, reason string) (*models.Appointment, error) {
	appt, err := s.findOwned(userID, id)
	if err != nil {
		return nil, err
	}
	if len(reason) > maxCancellationReason {
		return nil, types.BadRequest("Cancellation reason cannot exceed 200 characters")
	}
	if !appt.CanBeCancelled(time.Now()) {
		return nil, types.PolicyViolation("Appointments must be cancelled at least 24 hours in advance")
	}

	now := time.Now().UTC()
	appt.Status = models.AppointmentCancelled
	appt.CancellationReason = reason
	appt.CancelledAt = &now
	err = s.db.Model(appt).Updates(map[string]interface{}{
		"status":              appt.Status,
		"cancellation_reason": appt.CancellationReason,
		"cancelled_at":        now,
	}).Error
	if err != nil {
		return nil, types.Internal("Could not cancel appointment")
	}
	return appt, nil
}

func (s *appointmentService) findOwned(userID, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("Appointment not found")
		}
		return nil, types.Internal("Could not load appointment")
	}
	if appt.UserID != userID {
		return nil, types.Forbidden("Not authorized to access this appointment")
	}
	return &appt, nil
}
