package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/offer-tracker/internal/models"
	"alfredoptarigan/offer-tracker/internal/repositories"
)

var (
	ErrPermissionDenied = errors.New("notification permission not granted")
	ErrTokenUnavailable = errors.New("no push token registered")
)

// ScheduleParams describes one notification registration.
type ScheduleParams struct {
	Identifier string
	OwnerID    string
	OfferID    uuid.UUID
	Token      string
	Title      string
	Body       string
	Delay      time.Duration
}

// NotificationService registers, replaces and cancels pending notifications.
type NotificationService interface {
	RegisterToken(ctx context.Context, ownerID string) (string, error)
	Schedule(ctx context.Context, params ScheduleParams) error
	Cancel(ctx context.Context, identifier string) error
	Pending(ctx context.Context, identifier string) (*models.ScheduledReminder, error)
}

type notificationService struct {
	reminderRepo repositories.ReminderRepository
	deviceRepo   repositories.DeviceRepository
	clock        Clock
}

func NewNotificationService(
	reminderRepo repositories.ReminderRepository,
	deviceRepo repositories.DeviceRepository,
	clock Clock,
) NotificationService {
	return &notificationService{
		reminderRepo: reminderRepo,
		deviceRepo:   deviceRepo,
		clock:        clock,
	}
}

// RegisterToken returns the push token of the owner's device.
func (n *notificationService) RegisterToken(ctx context.Context, ownerID string) (string, error) {
	device, err := n.deviceRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrDeviceNotFound) {
			return "", ErrTokenUnavailable
		}
		return "", fmt.Errorf("failed to load device token: %w", err)
	}

	if device.Permission != models.PermissionGranted {
		return "", ErrPermissionDenied
	}
	if device.Token == "" {
		return "", ErrTokenUnavailable
	}

	return device.Token, nil
}

// Schedule registers the notification under params.Identifier, replacing
// whatever was registered under it before.
func (n *notificationService) Schedule(ctx context.Context, params ScheduleParams) error {
	if params.Identifier == "" {
		return errors.New("notification identifier is required")
	}
	if params.Delay < time.Second {
		return fmt.Errorf("notification delay must be at least 1s, got %s", params.Delay)
	}

	reminder := &models.ScheduledReminder{
		Identifier: params.Identifier,
		OwnerID:    params.OwnerID,
		OfferID:    params.OfferID,
		Token:      params.Token,
		Title:      params.Title,
		Body:       params.Body,
		FireAt:     n.clock.Now().Add(params.Delay),
	}

	if err := n.reminderRepo.Upsert(ctx, reminder); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"identifier": params.Identifier,
		"fire_at":    reminder.FireAt.Format(time.RFC3339),
	}).Info("🔔 Notification scheduled")

	return nil
}

// Cancel drops the pending notification under identifier, if any.
func (n *notificationService) Cancel(ctx context.Context, identifier string) error {
	cancelled, err := n.reminderRepo.Cancel(ctx, identifier)
	if err != nil {
		return err
	}
	if cancelled {
		log.WithField("identifier", identifier).Info("🔕 Notification cancelled")
	}
	return nil
}

// Pending returns the reminder under identifier when it has not fired yet.
func (n *notificationService) Pending(ctx context.Context, identifier string) (*models.ScheduledReminder, error) {
	reminder, err := n.reminderRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if reminder.Status != models.ReminderPending {
		return nil, repositories.ErrReminderNotFound
	}
	return reminder, nil
}
