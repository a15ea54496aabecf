package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/offer-tracker/internal/models"
)

type ReminderRepository interface {
	Upsert(ctx context.Context, reminder *models.ScheduledReminder) error
	Cancel(ctx context.Context, identifier string) (bool, error)
	FindByIdentifier(ctx context.Context, identifier string) (*models.ScheduledReminder, error)
	FindDue(ctx context.Context, now time.Time, limit int) ([]models.ScheduledReminder, error)
	Claim(ctx context.Context, id uuid.UUID, now time.Time) error
	Release(ctx context.Context, id uuid.UUID) error
}

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

// Upsert stores the reminder under its identifier. A row already holding the
// identifier is overwritten and set back to pending, so each identifier has
// at most one pending reminder. The stored id is read back, so on conflict
// reminder.ID is the id of the existing row.
func (r *reminderRepository) Upsert(ctx context.Context, reminder *models.ScheduledReminder) error {
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	reminder.Status = models.ReminderPending
	reminder.SentAt = nil
	reminder.UpdatedAt = time.Now()
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = reminder.UpdatedAt
	}

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "identifier"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"owner_id", "offer_id", "token", "title", "body",
					"fire_at", "status", "sent_at", "updated_at",
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}}},
		).
		Create(reminder).Error
	if err != nil {
		return fmt.Errorf("failed to upsert reminder: %w", err)
	}

	return nil
}

// Cancel marks the pending reminder under identifier as cancelled. It
// reports whether a pending reminder existed.
func (r *reminderRepository) Cancel(ctx context.Context, identifier string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ScheduledReminder{}).
		Where("identifier = ? AND status = ?", identifier, models.ReminderPending).
		Updates(map[string]interface{}{
			"status":     models.ReminderCancelled,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel reminder: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *reminderRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.ScheduledReminder, error) {
	var reminder models.ScheduledReminder
	err := r.db.WithContext(ctx).
		Where("identifier = ?", identifier).
		First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to find reminder: %w", err)
	}

	return &reminder, nil
}

func (r *reminderRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]models.ScheduledReminder, error) {
	var reminders []models.ScheduledReminder
	err := r.db.WithContext(ctx).
		Where("status = ? AND fire_at <= ?", models.ReminderPending, now).
		Order("fire_at ASC").
		Limit(limit).
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due reminders: %w", err)
	}

	return reminders, nil
}

// Claim moves a due pending reminder to sent. A reminder that was
// rescheduled into the future or cancelled since it was read is not claimed.
func (r *reminderRepository) Claim(ctx context.Context, id uuid.UUID, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.ScheduledReminder{}).
		Where("id = ? AND status = ? AND fire_at <= ?", id, models.ReminderPending, now).
		Updates(map[string]interface{}{
			"status":     models.ReminderSent,
			"sent_at":    now,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to claim reminder: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrReminderNotPending
	}

	return nil
}

// Release puts a claimed reminder back to pending after a failed delivery.
func (r *reminderRepository) Release(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.ScheduledReminder{}).
		Where("id = ? AND status = ?", id, models.ReminderSent).
		Updates(map[string]interface{}{
			"status":     models.ReminderPending,
			"sent_at":    nil,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to release reminder: %w", result.Error)
	}

	return nil
}
