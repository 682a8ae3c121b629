package services

import (
	"bytes"
	"context"
	"testing"

	"discovery-space/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))
	require.NoError(t, db.SeedGameModes(conn))
	return conn
}

func modeID(t *testing.T, conn *gorm.DB, mode db.Mode) uint {
	t.Helper()
	var entry db.GameMode
	require.NoError(t, conn.Where("mode = ?", mode).First(&entry).Error)
	return entry.ID
}

func createGame(t *testing.T, conn *gorm.DB, title string, mode db.Mode) db.Game {
	t.Helper()
	game := db.Game{Title: title, Description: title + " description", GameModeID: modeID(t, conn, mode)}
	require.NoError(t, conn.Omit("GameMode").Create(&game).Error)
	return game
}

func createDevice(t *testing.T, conn *gorm.DB, gameID uint, name, tag, file string) db.Device {
	t.Helper()
	device := db.Device{Name: name, Description: name + " description", RFIDTag: tag, FileLoc: file}
	require.NoError(t, conn.Create(&device).Error)
	if gameID != 0 {
		require.NoError(t, conn.Exec("INSERT INTO game_devices (game_id, device_id) VALUES (?, ?)", gameID, device.ID).Error)
	}
	return device
}

func createQuestion(t *testing.T, conn *gorm.DB, gameID uint, text string, answers ...db.Device) db.Question {
	t.Helper()
	question := db.Question{Question: text, GameID: gameID, Answers: answers}
	require.NoError(t, conn.Omit("Answers.*").Create(&question).Error)
	return question
}

func upload(name, content string) Upload {
	return Upload{Filename: name, Content: bytes.NewBufferString(content)}
}

var ctx = context.Background()
