package db

import "time"

type Game struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"size:120;not null"`
	Description string     `gorm:"type:text;not null"`
	GameModeID  uint       `gorm:"index;not null"`
	GameMode    GameMode   `gorm:"constraint:OnDelete:RESTRICT"`
	Devices     []Device   `gorm:"many2many:game_devices;"`
	Questions   []Question `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// IsChallenge reports whether the preloaded mode is challenge.
func (g Game) IsChallenge() bool {
	return g.GameMode.Mode == ModeChallenge
}

func (g Game) IsLearning() bool {
	return g.GameMode.Mode == ModeLearning
}
