package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
)

const (
	MsgReminderPermission = "No se pudo programar el recordatorio: permiso de notificaciones no concedido"
	MsgReminderFailed     = "No se pudo programar el recordatorio"
)

// DispatchError is a failed registration together with the message shown to
// the user.
type DispatchError struct {
	Message string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// NotificationDispatcher hands scheduler output to the notification service.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, ownerID string, offerID uuid.UUID, req models.ReminderRequest) error
	Cancel(ctx context.Context, offerID uuid.UUID) error
	Pending(ctx context.Context, offerID uuid.UUID) (*models.ScheduledReminder, error)
}

type notificationDispatcher struct {
	notifications NotificationService
	timeout       time.Duration
}

func NewNotificationDispatcher(notifications NotificationService, timeout time.Duration) NotificationDispatcher {
	return &notificationDispatcher{
		notifications: notifications,
		timeout:       timeout,
	}
}

// Dispatch registers req under its identifier. Registering again with the
// same identifier replaces the earlier request.
func (d *notificationDispatcher) Dispatch(ctx context.Context, ownerID string, offerID uuid.UUID, req models.ReminderRequest) error {
	if req.TriggerDelaySeconds < 1 {
		return &DispatchError{
			Message: MsgReminderFailed,
			Err:     fmt.Errorf("invalid trigger delay %ds", req.TriggerDelaySeconds),
		}
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	token, err := d.notifications.RegisterToken(ctx, ownerID)
	if err != nil {
		message := MsgReminderFailed
		if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrTokenUnavailable) {
			message = MsgReminderPermission
		}
		return &DispatchError{Message: message, Err: err}
	}

	err = d.notifications.Schedule(ctx, ScheduleParams{
		Identifier: req.Identifier,
		OwnerID:    ownerID,
		OfferID:    offerID,
		Token:      token,
		Title:      req.Title,
		Body:       req.Body,
		Delay:      req.TriggerDelay(),
	})
	if err != nil {
		return &DispatchError{Message: MsgReminderFailed, Err: err}
	}

	log.WithFields(log.Fields{
		"offer_id":   offerID,
		"identifier": req.Identifier,
		"kind":       req.Kind,
		"delay_s":    req.TriggerDelaySeconds,
	}).Info("📨 Reminder dispatched")

	return nil
}

// Cancel removes the pending reminder of an offer.
func (d *notificationDispatcher) Cancel(ctx context.Context, offerID uuid.UUID) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if err := d.notifications.Cancel(ctx, ReminderIdentifier(offerID)); err != nil {
		return &DispatchError{Message: MsgReminderFailed, Err: err}
	}
	return nil
}

func (d *notificationDispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

// Pending returns the reminder still waiting to fire for an offer.
func (d *notificationDispatcher) Pending(ctx context.Context, offerID uuid.UUID) (*models.ScheduledReminder, error) {
	return d.notifications.Pending(ctx, ReminderIdentifier(offerID))
}
