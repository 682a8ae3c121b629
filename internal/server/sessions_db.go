package server

import (
	"context"
	"encoding/json"
	"time"

	"discovery-space/internal/db"
	"discovery-space/internal/web"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dbSessions struct {
	db  *gorm.DB
	ttl time.Duration
}

func newDBSessions(conn *gorm.DB, ttl time.Duration) *dbSessions {
	return &dbSessions{db: conn, ttl: ttl}
}

func (d *dbSessions) Load(ctx context.Context, id string) (sessionData, error) {
	var record db.Session
	if err := d.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if db.IsNotFound(err) {
			return sessionData{}, nil
		}
		return sessionData{}, err
	}
	if d.ttl > 0 && time.Since(record.UpdatedAt) > d.ttl {
		return sessionData{}, nil
	}
	data := sessionData{}
	if record.UserID != nil {
		data.UserID = *record.UserID
	}
	data.Challenge.Active = record.ChallengeActive
	data.Challenge.GameID = record.ChallengeGameID
	data.Challenge.Index = record.ChallengeIndex
	if len(record.Flashes) > 0 {
		var flashes []web.Flash
		if err := json.Unmarshal(record.Flashes, &flashes); err != nil {
			return sessionData{}, err
		}
		data.Flashes = flashes
	}
	return data, nil
}

func (d *dbSessions) Save(ctx context.Context, id string, data sessionData) error {
	flashes, err := json.Marshal(data.Flashes)
	if err != nil {
		return err
	}
	record := db.Session{
		ID:              id,
		Flashes:         datatypes.JSON(flashes),
		ChallengeActive: data.Challenge.Active,
		ChallengeGameID: data.Challenge.GameID,
		ChallengeIndex:  data.Challenge.Index,
	}
	if data.UserID != 0 {
		userID := data.UserID
		record.UserID = &userID
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "flashes", "challenge_active", "challenge_game_id", "challenge_index", "updated_at",
		}),
	}).Create(&record).Error
}

func (d *dbSessions) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Session{}).Error
}

// Prune removes sessions idle for longer than the TTL.
func (d *dbSessions) Prune(ctx context.Context) (int64, error) {
	if d.ttl <= 0 {
		return 0, nil
	}
	result := d.db.WithContext(ctx).Where("updated_at < ?", time.Now().Add(-d.ttl)).Delete(&db.Session{})
	return result.RowsAffected, result.Error
}
