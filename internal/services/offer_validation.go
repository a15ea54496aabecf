package services

import (
	"time"

	"alfredoptarigan/offer-tracker/internal/models"
)

const (
	MsgInvalidSchedule         = "Horario erroneo."
	MsgInvalidRegistrationDate = "Fecha de inscripción erronea. formato 01-10-2022"
	MsgMissingEducation        = "Campo formación no puede estar vacío si está activado"
	MsgMissingExperience       = "Campo experiencia no puede estar vacío si está activado"
	MsgInvalidInterviewDate    = "Fecha de entrevista erronea. Formato 01-12-2020"
	MsgInvalidInterviewHour    = "Hora de entrevista erronea. formato hh:mm formato 24 horas."
	MsgPastInterviewDate       = "Fecha de entrevista erronea. Introduce una fecha mayor."
	MsgInvalidInterviewState   = "Estado de entrevista erroneo."
)

// ValidationResult is either valid or carries the one message to show.
type ValidationResult struct {
	Valid   bool
	Message string
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(message string) ValidationResult {
	return ValidationResult{Message: message}
}

// ValidateOffer runs the submission rules in order and stops at the first
// failure. now is the submission time used by the future-interview check.
//
// The interview hour is checked before it is combined with the date, and a
// date without an hour is rejected.
func ValidateOffer(draft models.OfferDraft, now time.Time) ValidationResult {
	if !IsNonBlank(draft.Schedule) {
		return invalid(MsgInvalidSchedule)
	}

	if !IsValidCalendarDate(draft.RegistrationDate) {
		return invalid(MsgInvalidRegistrationDate)
	}

	if draft.MandatoryEducation && !IsNonBlank(draft.RequiredEducation) {
		return invalid(MsgMissingEducation)
	}

	if draft.MandatoryExperience && !IsNonBlank(draft.RequiredExperience) {
		return invalid(MsgMissingExperience)
	}

	if draft.InterviewDate != "" {
		if !IsValidCalendarDate(draft.InterviewDate) {
			return invalid(MsgInvalidInterviewDate)
		}
		if !IsValidClockTime(draft.InterviewHour) {
			return invalid(MsgInvalidInterviewHour)
		}
		if !IsFutureMoment(draft.InterviewDate, draft.InterviewHour, now) {
			return invalid(MsgPastInterviewDate)
		}
	} else if draft.InterviewHour != "" {
		return invalid(MsgInvalidInterviewDate)
	}

	if !draft.InterviewState.Valid() {
		return invalid(MsgInvalidInterviewState)
	}

	return valid()
}
