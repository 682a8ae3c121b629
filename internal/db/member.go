package db

import "time"

// Member is a visitor with a membership card. CardNumber is the scan key;
// it is indexed but deliberately not unique.
type Member struct {
	ID         uint          `gorm:"primaryKey"`
	FirstName  string        `gorm:"size:64;not null"`
	LastName   string        `gorm:"size:64;index;not null"`
	CardNumber string        `gorm:"size:64;index;not null"`
	Visits     []MemberVisit `gorm:"constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time     `gorm:"not null"`
	UpdatedAt  time.Time     `gorm:"not null"`
}

type MemberVisit struct {
	ID       uint      `gorm:"primaryKey"`
	MemberID uint      `gorm:"index;not null"`
	Date     time.Time `gorm:"index;not null"`
}
