package repositories

import "errors"

var (
	ErrOfferNotFound      = errors.New("offer not found")
	ErrReminderNotFound   = errors.New("reminder not found")
	ErrReminderNotPending = errors.New("reminder is not pending")
	ErrDeviceNotFound     = errors.New("device not found")
	ErrProfileNotFound    = errors.New("profile not found")
)
