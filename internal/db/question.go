package db

import "time"

type Question struct {
	ID        uint      `gorm:"primaryKey"`
	Question  string    `gorm:"type:text;not null"`
	GameID    uint      `gorm:"index;not null"`
	Answers   []Device  `gorm:"many2many:question_answers;"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
