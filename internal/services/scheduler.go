package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
)

const (
	fallbackLead  = 2 * time.Hour
	minDelay      = int64(1)
	identifierTag = "interview-reminder"
)

var ErrMissingOfferID = errors.New("offer id is required to schedule a reminder")

// ReminderContext carries the offer fields used in the notification copy.
type ReminderContext struct {
	OfferID          uuid.UUID
	Position         string
	Company          string
	InterviewAddress string
}

type ReminderScheduler interface {
	Schedule(interview, now time.Time, offer ReminderContext) (models.ReminderRequest, error)
}

type reminderScheduler struct{}

func NewReminderScheduler() ReminderScheduler {
	return &reminderScheduler{}
}

// ReminderIdentifier is the key a reminder is registered under. It only
// depends on the offer, so rescheduling replaces the pending reminder.
func ReminderIdentifier(offerID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", identifierTag, offerID)
}

// Schedule picks the reminder trigger for an interview. The default is the
// same time on the previous day; when that moment has passed it falls back
// to two hours before the interview. The delay is never below one second.
func (s *reminderScheduler) Schedule(interview, now time.Time, offer ReminderContext) (models.ReminderRequest, error) {
	if interview.IsZero() {
		return models.ReminderRequest{}, ErrNoInterview
	}
	if offer.OfferID == uuid.Nil {
		return models.ReminderRequest{}, ErrMissingOfferID
	}

	req := models.ReminderRequest{
		Identifier: ReminderIdentifier(offer.OfferID),
	}

	dayBefore := interview.AddDate(0, 0, -1)
	delay := floorSeconds(dayBefore.Sub(now))

	if delay > 0 {
		req.Kind = models.ReminderDayBefore
		req.TriggerDelaySeconds = delay
		req.Title = fmt.Sprintf("Recuerda mañana es tu entrevista para %s en %s", offer.Position, offer.Company)
		req.Body = fmt.Sprintf("En la dirección %s. ¡A por ello!", offer.InterviewAddress)
		return req, nil
	}

	twoHoursBefore := interview.Add(-fallbackLead)
	delay = floorSeconds(twoHoursBefore.Sub(now))

	req.Kind = models.ReminderTwoHoursBefore
	req.Title = fmt.Sprintf("Recuerda que en menos de 2 horas es tu entrevista para %s en %s", offer.Position, offer.Company)
	req.Body = fmt.Sprintf("En la dirección %s. ¡Buena suerte!", offer.InterviewAddress)

	if delay < minDelay {
		req.TriggerDelaySeconds = minDelay
		req.Clamped = true
		log.WithFields(log.Fields{
			"offer_id":  offer.OfferID,
			"interview": interview.Format(time.RFC3339),
			"now":       now.Format(time.RFC3339),
		}).Warn("⚠️  Two-hour reminder point already passed, firing immediately")
		return req, nil
	}

	req.TriggerDelaySeconds = delay
	return req, nil
}

func floorSeconds(d time.Duration) int64 {
	return int64(math.Floor(d.Seconds()))
}
