package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/offer-tracker/internal/models"
)

type DeviceRepository interface {
	Upsert(ctx context.Context, device *models.DeviceToken) error
	FindByOwner(ctx context.Context, ownerID string) (*models.DeviceToken, error)
}

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Upsert(ctx context.Context, device *models.DeviceToken) error {
	device.UpdatedAt = time.Now()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = device.UpdatedAt
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "permission", "updated_at"}),
		}).
		Create(device).Error
	if err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}

	return nil
}

func (r *deviceRepository) FindByOwner(ctx context.Context, ownerID string) (*models.DeviceToken, error) {
	var device models.DeviceToken
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to find device: %w", err)
	}

	return &device, nil
}
