package models

import "time"

type PermissionStatus string

const (
	PermissionGranted      PermissionStatus = "granted"
	PermissionDenied       PermissionStatus = "denied"
	PermissionUndetermined PermissionStatus = "undetermined"
)

// DeviceToken is the push token registered by an owner's device together
// with the notification permission the device reported.
type DeviceToken struct {
	OwnerID    string           `gorm:"type:text;primary_key" json:"owner_id"`
	Token      string           `gorm:"type:text" json:"token"`
	Permission PermissionStatus `gorm:"type:text;not null;default:'undetermined'" json:"permission"`
	CreatedAt  time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
