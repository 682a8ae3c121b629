package services

import (
	"context"
	"encoding/json"

	"discovery-space/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ScanLearning  = "learning"
	ScanChallenge = "challenge"
)

// ScanLog records kiosk tag scans for staff diagnostics.
type ScanLog struct {
	db *gorm.DB
}

func NewScanLog(conn *gorm.DB) *ScanLog {
	return &ScanLog{db: conn}
}

func (l *ScanLog) Record(ctx context.Context, kind, tag string, gameID uint, questionID *uint, result MatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	event := db.ScanEvent{
		Kind:       kind,
		Tag:        tag,
		GameID:     gameID,
		QuestionID: questionID,
		Valid:      result.Valid,
		Payload:    datatypes.JSON(payload),
	}
	return l.db.WithContext(ctx).Create(&event).Error
}

// Page returns one page of scans, newest first, and the total number recorded.
func (l *ScanLog) Page(ctx context.Context, page, perPage int) ([]db.ScanEvent, int64, error) {
	if perPage <= 0 {
		perPage = 50
	}
	if page <= 0 {
		page = 1
	}
	tx := l.db.WithContext(ctx)
	var total int64
	if err := tx.Model(&db.ScanEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var events []db.ScanEvent
	err := tx.Order("created_at desc, id desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&events).Error
	return events, total, err
}
