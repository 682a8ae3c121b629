package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Mode is the closed set of game formats.
type Mode string

const (
	ModeLearning  Mode = "learning"
	ModeChallenge Mode = "challenge"
)

var ErrInvalidMode = errors.New("game mode must be learning or challenge")

func (m Mode) Valid() bool {
	return m == ModeLearning || m == ModeChallenge
}

type GameMode struct {
	ID        uint      `gorm:"primaryKey"`
	Mode      Mode      `gorm:"size:16;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *GameMode) BeforeSave(tx *gorm.DB) error {
	if !m.Mode.Valid() {
		return ErrInvalidMode
	}
	return nil
}
