package db

import "time"

const (
	GameDevicesTable     = "game_devices"
	QuestionAnswersTable = "question_answers"
)

// Device is an RFID-tagged prop with a media file. FileLoc is a filename
// relative to the upload folder and may be shared between devices.
type Device struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:120;not null"`
	Description string    `gorm:"type:text;not null"`
	RFIDTag     string    `gorm:"column:rfid_tag;size:64;index;not null"`
	FileLoc     string    `gorm:"size:255;index;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}
