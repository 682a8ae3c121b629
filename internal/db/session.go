package db

import (
	"time"

	"gorm.io/datatypes"
)

type Session struct {
	ID              string         `gorm:"primaryKey;size:64"`
	UserID          *uint          `gorm:"index"`
	Flashes         datatypes.JSON `gorm:"type:jsonb"`
	ChallengeActive bool           `gorm:"not null;default:false"`
	ChallengeGameID uint           `gorm:"not null;default:0"`
	ChallengeIndex  int            `gorm:"not null;default:0"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null;index"`
}
