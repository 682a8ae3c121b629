package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"discovery-space/internal/db"

	"gorm.io/gorm"
)

const (
	defaultGameTitle       = "Default"
	defaultGameDescription = "default"
)

// DeleteResult reports what a delete removed. Warnings name media files that
// were expected on disk but could not be removed.
type DeleteResult struct {
	Name     string
	Warnings []string
}

// ContentService manages games, their trigger devices and challenge questions.
type ContentService struct {
	db    *gorm.DB
	files *MediaStore
}

func NewContentService(conn *gorm.DB, files *MediaStore) *ContentService {
	return &ContentService{db: conn, files: files}
}

func findGame(tx *gorm.DB, id uint) (db.Game, error) {
	var game db.Game
	if err := tx.Preload("GameMode").First(&game, id).Error; err != nil {
		if db.IsNotFound(err) {
			return db.Game{}, ErrNotFound
		}
		return db.Game{}, err
	}
	return game, nil
}

func (s *ContentService) GetGame(ctx context.Context, id uint) (db.Game, error) {
	return findGame(s.db.WithContext(ctx), id)
}

// ListGames returns learning and challenge games, each ordered by title.
func (s *ContentService) ListGames(ctx context.Context) ([]db.Game, []db.Game, error) {
	learning, err := s.gamesByMode(ctx, db.ModeLearning)
	if err != nil {
		return nil, nil, err
	}
	challenge, err := s.gamesByMode(ctx, db.ModeChallenge)
	if err != nil {
		return nil, nil, err
	}
	return learning, challenge, nil
}

func (s *ContentService) gamesByMode(ctx context.Context, mode db.Mode) ([]db.Game, error) {
	var games []db.Game
	err := s.db.WithContext(ctx).
		Preload("GameMode").
		Joins("JOIN game_modes ON game_modes.id = games.game_mode_id").
		Where("game_modes.mode = ?", mode).
		Order("games.title asc, games.id asc").
		Find(&games).Error
	return games, err
}

// CreateGame seeds a placeholder game in the first game mode for staff to edit.
func (s *ContentService) CreateGame(ctx context.Context) (db.Game, error) {
	var mode db.GameMode
	if err := s.db.WithContext(ctx).Order("id asc").First(&mode).Error; err != nil {
		if db.IsNotFound(err) {
			return db.Game{}, ErrNoGameModes
		}
		return db.Game{}, err
	}
	game := db.Game{
		Title:       defaultGameTitle,
		Description: defaultGameDescription,
		GameModeID:  mode.ID,
	}
	if err := s.db.WithContext(ctx).Omit("GameMode").Create(&game).Error; err != nil {
		return db.Game{}, err
	}
	game.GameMode = mode
	log.Printf("game created game_id=%d mode=%s", game.ID, mode.Mode)
	return game, nil
}

// UpdateGame replaces title, description and mode. Every invalid field is
// reported and nothing is applied unless all three are valid.
func (s *ContentService) UpdateGame(ctx context.Context, id uint, title, description string, modeID uint) (db.Game, error) {
	tx := s.db.WithContext(ctx)
	game, err := findGame(tx, id)
	if err != nil {
		return db.Game{}, err
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	var messages []string
	if title == "" {
		messages = append(messages, "Invalid title.")
	} else if tooLong(title, maxTitleLength) {
		messages = append(messages, tooLongMessage("Title", maxTitleLength))
	}
	if description == "" {
		messages = append(messages, "Invalid description.")
	}
	var mode db.GameMode
	if modeID == 0 {
		messages = append(messages, "Invalid game mode selected.")
	} else if err := tx.First(&mode, modeID).Error; err != nil {
		if !db.IsNotFound(err) {
			return db.Game{}, err
		}
		messages = append(messages, "Invalid game mode selected.")
	}
	if len(messages) > 0 {
		return db.Game{}, invalid(messages...)
	}

	if err := tx.Model(&db.Game{ID: game.ID}).Updates(map[string]any{
		"title":        title,
		"description":  description,
		"game_mode_id": mode.ID,
	}).Error; err != nil {
		return db.Game{}, err
	}
	game.Title = title
	game.Description = description
	game.GameModeID = mode.ID
	game.GameMode = mode
	return game, nil
}

// DeleteGame removes a game with its trigger devices and questions. A device
// file is removed once no remaining device references it.
func (s *ContentService) DeleteGame(ctx context.Context, id uint) (DeleteResult, error) {
	var result DeleteResult
	var orphaned []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, id)
		if err != nil {
			return err
		}
		result.Name = game.Title

		devices, err := gameDevices(tx, id)
		if err != nil {
			return err
		}
		for _, device := range devices {
			last, err := lastFileReference(tx, device.FileLoc)
			if err != nil {
				return err
			}
			if last {
				orphaned = append(orphaned, device.FileLoc)
			}
			if err := deleteDeviceRows(tx, device.ID); err != nil {
				return err
			}
		}

		var questionIDs []uint
		if err := tx.Model(&db.Question{}).Where("game_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Exec("DELETE FROM "+db.QuestionAnswersTable+" WHERE question_id IN ?", questionIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("game_id = ?", id).Delete(&db.Question{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM "+db.GameDevicesTable+" WHERE game_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Game{}, id).Error
	})
	if err != nil {
		return DeleteResult{}, err
	}
	if s.files != nil {
		result.Warnings = s.files.RemoveAll(orphaned)
	}
	log.Printf("game deleted game_id=%d files_removed=%d warnings=%d", id, len(orphaned)-len(result.Warnings), len(result.Warnings))
	return result, nil
}

// ManageData is everything the staff edit page needs for one game.
type ManageData struct {
	Game      db.Game
	Modes     []db.GameMode
	Devices   []db.Device
	Questions []db.Question
}

func (s *ContentService) ManageData(ctx context.Context, id uint) (ManageData, error) {
	tx := s.db.WithContext(ctx)
	game, err := findGame(tx, id)
	if err != nil {
		return ManageData{}, err
	}
	data := ManageData{Game: game}
	if err := tx.Order("mode asc").Find(&data.Modes).Error; err != nil {
		return ManageData{}, err
	}
	if data.Devices, err = gameDevices(tx, id); err != nil {
		return ManageData{}, err
	}
	if game.IsChallenge() {
		err := tx.Where("game_id = ?", id).
			Preload("Answers", func(q *gorm.DB) *gorm.DB { return q.Order("devices.id asc") }).
			Order("question asc, id asc").
			Find(&data.Questions).Error
		if err != nil {
			return ManageData{}, err
		}
	}
	return data, nil
}

func gameDevices(tx *gorm.DB, gameID uint) ([]db.Device, error) {
	var devices []db.Device
	err := tx.Joins(fmt.Sprintf("JOIN %s ON %s.device_id = devices.id", db.GameDevicesTable, db.GameDevicesTable)).
		Where(db.GameDevicesTable+".game_id = ?", gameID).
		Order("devices.id asc").
		Find(&devices).Error
	return devices, err
}

func lastFileReference(tx *gorm.DB, fileLoc string) (bool, error) {
	var count int64
	if err := tx.Model(&db.Device{}).Where("file_loc = ?", fileLoc).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 1, nil
}

func deleteDeviceRows(tx *gorm.DB, deviceID uint) error {
	if err := tx.Exec("DELETE FROM "+db.GameDevicesTable+" WHERE device_id = ?", deviceID).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM "+db.QuestionAnswersTable+" WHERE device_id = ?", deviceID).Error; err != nil {
		return err
	}
	result := tx.Delete(&db.Device{}, deviceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
