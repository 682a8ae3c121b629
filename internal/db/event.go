package db

import (
	"time"

	"gorm.io/datatypes"
)

// ScanEvent logs one tag validation request from a kiosk.
type ScanEvent struct {
	ID         uint           `gorm:"primaryKey"`
	Kind       string         `gorm:"size:16;not null"`
	Tag        string         `gorm:"size:64;not null"`
	GameID     uint           `gorm:"index;not null"`
	QuestionID *uint          `gorm:"index"`
	Valid      bool           `gorm:"not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}
