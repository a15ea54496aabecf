package models

import (
	"time"

	"github.com/google/uuid"
)

type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderSent      ReminderStatus = "sent"
	ReminderCancelled ReminderStatus = "cancelled"
)

// ReminderKind names the trigger point the scheduler picked.
type ReminderKind string

const (
	ReminderDayBefore      ReminderKind = "day_before"
	ReminderTwoHoursBefore ReminderKind = "two_hours_before"
)

// ReminderRequest is the scheduler output. It is never stored; the
// dispatcher consumes it right away.
type ReminderRequest struct {
	TriggerDelaySeconds int64        `json:"trigger_delay_seconds"`
	Title               string       `json:"title"`
	Body                string       `json:"body"`
	Identifier          string       `json:"identifier"`
	Kind                ReminderKind `json:"kind"`
	Clamped             bool         `json:"clamped"`
}

// TriggerDelay returns the delay as a duration.
func (r ReminderRequest) TriggerDelay() time.Duration {
	return time.Duration(r.TriggerDelaySeconds) * time.Second
}

// ScheduledReminder is a registration held by the notification registry
// until it is delivered or replaced.
type ScheduledReminder struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Identifier string         `gorm:"type:text;not null;uniqueIndex" json:"identifier"`
	OwnerID    string         `gorm:"type:text;not null;index" json:"owner_id"`
	OfferID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"offer_id"`
	Token      string         `gorm:"type:text" json:"-"`
	Title      string         `gorm:"type:text" json:"title"`
	Body       string         `gorm:"type:text" json:"body"`
	FireAt     time.Time      `gorm:"not null;index" json:"fire_at"`
	Status     ReminderStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	SentAt     *time.Time     `json:"sent_at,omitempty"`
	CreatedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ScheduledReminder) TableName() string {
	return "scheduled_reminders"
}
