package models

import (
	"time"

	"github.com/google/uuid"
)

type InterviewState string

const (
	InterviewScheduled  InterviewState = "Programada"
	InterviewInProgress InterviewState = "En Proceso"
	InterviewFinished   InterviewState = "Finalizada"
	InterviewCancelled  InterviewState = "Cancelada"
)

var interviewColors = map[InterviewState]string{
	InterviewScheduled:  "#48b93d",
	InterviewInProgress: "#3d6ab9",
	InterviewFinished:   "#eed238",
	InterviewCancelled:  "#ff2e00",
}

// Valid reports whether s is one of the known labels. The empty state is
// valid and means no state was picked.
func (s InterviewState) Valid() bool {
	if s == "" {
		return true
	}
	_, ok := interviewColors[s]
	return ok
}

// Color returns the display tint paired with the state.
func (s InterviewState) Color() string {
	return interviewColors[s]
}

// Offer is a tracked job application.
type Offer struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID             string         `gorm:"type:text;not null;index" json:"owner_id"`
	Position            string         `gorm:"type:text" json:"position"`
	Company             string         `gorm:"type:text" json:"company"`
	Schedule            string         `gorm:"type:text" json:"schedule"`
	JobAddress          string         `gorm:"type:text" json:"job_address"`
	JobLatitude         *float64       `json:"job_latitude,omitempty"`
	JobLongitude        *float64       `json:"job_longitude,omitempty"`
	RegistrationDate    string         `gorm:"type:text" json:"registration_date"`
	MandatoryEducation  bool           `gorm:"not null;default:false" json:"mandatory_education"`
	RequiredEducation   string         `gorm:"type:text" json:"required_education"`
	MandatoryExperience bool           `gorm:"not null;default:false" json:"mandatory_experience"`
	RequiredExperience  string         `gorm:"type:text" json:"required_experience"`
	InterviewDate       string         `gorm:"type:text" json:"interview_date"`
	InterviewHour       string         `gorm:"type:text" json:"interview_hour"`
	ContactPerson       string         `gorm:"type:text" json:"contact_person"`
	InterviewAddress    string         `gorm:"type:text" json:"interview_address"`
	InterviewLatitude   *float64       `json:"interview_latitude,omitempty"`
	InterviewLongitude  *float64       `json:"interview_longitude,omitempty"`
	InterviewState      InterviewState `gorm:"type:text" json:"interview_state"`
	InterviewColor      string         `gorm:"type:text" json:"interview_color"`
	NotionPageID        string         `gorm:"type:text" json:"-"`
	CreatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Offer) TableName() string {
	return "offers"
}

// Draft returns the editable form state of a stored offer.
func (o *Offer) Draft() OfferDraft {
	return OfferDraft{
		Position:            o.Position,
		Company:             o.Company,
		Schedule:            o.Schedule,
		JobAddress:          o.JobAddress,
		JobLatitude:         o.JobLatitude,
		JobLongitude:        o.JobLongitude,
		RegistrationDate:    o.RegistrationDate,
		MandatoryEducation:  o.MandatoryEducation,
		RequiredEducation:   o.RequiredEducation,
		MandatoryExperience: o.MandatoryExperience,
		RequiredExperience:  o.RequiredExperience,
		InterviewDate:       o.InterviewDate,
		InterviewHour:       o.InterviewHour,
		ContactPerson:       o.ContactPerson,
		InterviewAddress:    o.InterviewAddress,
		InterviewLatitude:   o.InterviewLatitude,
		InterviewLongitude:  o.InterviewLongitude,
		InterviewState:      o.InterviewState,
	}
}

// OfferDraft is the in-memory state of the new/edit offer form. It is also
// the request body of the create and update endpoints.
type OfferDraft struct {
	Position            string         `json:"position" validate:"max=200"`
	Company             string         `json:"company" validate:"max=200"`
	Schedule            string         `json:"schedule" validate:"max=500"`
	JobAddress          string         `json:"job_address" validate:"max=500"`
	JobLatitude         *float64       `json:"job_latitude,omitempty" validate:"omitempty,latitude"`
	JobLongitude        *float64       `json:"job_longitude,omitempty" validate:"omitempty,longitude"`
	RegistrationDate    string         `json:"registration_date"`
	MandatoryEducation  bool           `json:"mandatory_education"`
	RequiredEducation   string         `json:"required_education" validate:"max=1000"`
	MandatoryExperience bool           `json:"mandatory_experience"`
	RequiredExperience  string         `json:"required_experience" validate:"max=1000"`
	InterviewDate       string         `json:"interview_date"`
	InterviewHour       string         `json:"interview_hour"`
	ContactPerson       string         `json:"contact_person" validate:"max=200"`
	InterviewAddress    string         `json:"interview_address" validate:"max=500"`
	InterviewLatitude   *float64       `json:"interview_latitude,omitempty" validate:"omitempty,latitude"`
	InterviewLongitude  *float64       `json:"interview_longitude,omitempty" validate:"omitempty,longitude"`
	InterviewState      InterviewState `json:"interview_state"`
}

// HasInterview reports whether both interview date and hour were entered.
func (d OfferDraft) HasInterview() bool {
	return d.InterviewDate != "" && d.InterviewHour != ""
}

// Record converts the draft into the field map handed to persistence. Fields
// with no value (nil coordinates) are left out entirely.
func (d OfferDraft) Record() map[string]interface{} {
	record := map[string]interface{}{
		"position":             d.Position,
		"company":              d.Company,
		"schedule":             d.Schedule,
		"job_address":          d.JobAddress,
		"registration_date":    d.RegistrationDate,
		"mandatory_education":  d.MandatoryEducation,
		"required_education":   d.RequiredEducation,
		"mandatory_experience": d.MandatoryExperience,
		"required_experience":  d.RequiredExperience,
		"interview_date":       d.InterviewDate,
		"interview_hour":       d.InterviewHour,
		"contact_person":       d.ContactPerson,
		"interview_address":    d.InterviewAddress,
		"interview_state":      string(d.InterviewState),
		"interview_color":      d.InterviewState.Color(),
	}

	optional := map[string]*float64{
		"job_latitude":        d.JobLatitude,
		"job_longitude":       d.JobLongitude,
		"interview_latitude":  d.InterviewLatitude,
		"interview_longitude": d.InterviewLongitude,
	}
	for key, value := range optional {
		if value != nil {
			record[key] = *value
		}
	}

	return record
}
