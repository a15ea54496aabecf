package models

import "time"

// Profile holds the free-text CV summary an owner keeps next to their offers.
type Profile struct {
	OwnerID           string    `gorm:"type:text;primary_key" json:"-"`
	LaboralExperience string    `gorm:"type:text" json:"laboral_experience"`
	PreviousJobs      string    `gorm:"type:text" json:"previous_jobs"`
	Education         string    `gorm:"type:text" json:"education"`
	Skills            string    `gorm:"type:text" json:"skills"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

type UpdateProfileRequest struct {
	LaboralExperience string `json:"laboral_experience" validate:"max=5000"`
	PreviousJobs      string `json:"previous_jobs" validate:"max=5000"`
	Education         string `json:"education" validate:"max=5000"`
	Skills            string `json:"skills" validate:"max=5000"`
}
