package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/offer-tracker/internal/models"
)

// OfferRepository stores offers as field maps so that callers decide which
// columns are written.
type OfferRepository interface {
	Create(ctx context.Context, ownerID string, record map[string]interface{}) (uuid.UUID, error)
	Update(ctx context.Context, ownerID string, id uuid.UUID, record map[string]interface{}) error
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*models.Offer, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Offer, error)
	SetNotionPageID(ctx context.Context, id uuid.UUID, pageID string) error
}

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create implements OfferRepository. The identifier is assigned here.
func (r *offerRepository) Create(ctx context.Context, ownerID string, record map[string]interface{}) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()

	values := copyRecord(record)
	values["id"] = id
	values["owner_id"] = ownerID
	values["created_at"] = now
	values["updated_at"] = now

	if err := r.db.WithContext(ctx).Model(&models.Offer{}).Create(values).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return id, nil
}

// Update implements OfferRepository.
func (r *offerRepository) Update(ctx context.Context, ownerID string, id uuid.UUID, record map[string]interface{}) error {
	values := copyRecord(record)
	delete(values, "id")
	delete(values, "owner_id")
	values["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&models.Offer{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(values)

	if result.Error != nil {
		return fmt.Errorf("failed to update offer: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}

	return nil
}

// FindByID implements OfferRepository.
func (r *offerRepository) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}

	return &offer, nil
}

// FindByOwner implements OfferRepository.
func (r *offerRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find offers: %w", err)
	}

	return offers, nil
}

// SetNotionPageID implements OfferRepository.
func (r *offerRepository) SetNotionPageID(ctx context.Context, id uuid.UUID, pageID string) error {
	result := r.db.WithContext(ctx).Model(&models.Offer{}).
		Where("id = ?", id).
		Update("notion_page_id", pageID)

	if result.Error != nil {
		return fmt.Errorf("failed to save notion page id: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrOfferNotFound
	}

	return nil
}

func copyRecord(record map[string]interface{}) map[string]interface{} {
	values := make(map[string]interface{}, len(record)+4)
	for k, v := range record {
		values[k] = v
	}
	return values
}
