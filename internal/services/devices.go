package services

import (
	"context"
	"log"
	"strings"

	"discovery-space/internal/db"

	"gorm.io/gorm"
)

type DeviceInput struct {
	Name        string
	Description string
	Tag         string
	File        Upload
}

// CreateDevice stores the media file and links a new device to gameID. Fields
// are checked in order and the first failure is reported; nothing is written
// unless all of them pass.
func (s *ContentService) CreateDevice(ctx context.Context, gameID uint, input DeviceInput) (db.Device, error) {
	tx := s.db.WithContext(ctx)
	game, err := findGame(tx, gameID)
	if err != nil {
		return db.Device{}, err
	}
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	tag := strings.TrimSpace(input.Tag)
	switch {
	case name == "":
		return db.Device{}, invalid("Invalid device name.")
	case description == "":
		return db.Device{}, invalid("Invalid device description.")
	case tag == "":
		return db.Device{}, invalid("Invalid rfid tag.")
	case tooLong(name, maxTitleLength):
		return db.Device{}, invalid(tooLongMessage("Device name", maxTitleLength))
	case tooLong(tag, maxTagLength):
		return db.Device{}, invalid(tooLongMessage("RFID tag", maxTagLength))
	}

	filename := SecureFilename(input.File.Filename)
	if input.File.Content == nil || filename == "" || !AllowedFile(filename) || tooLong(filename, maxFileNameLength) {
		return db.Device{}, &ValidationError{Messages: []string{"Invalid file."}, Err: ErrInvalidFile}
	}
	var existing int64
	if err := tx.Model(&db.Device{}).Where("file_loc = ?", filename).Count(&existing).Error; err != nil {
		return db.Device{}, err
	}
	stored, err := s.files.Save(input.File)
	if err != nil {
		return db.Device{}, err
	}

	device := db.Device{
		Name:        name,
		Description: description,
		RFIDTag:     tag,
		FileLoc:     stored,
	}
	err = tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&device).Error; err != nil {
			return err
		}
		return tx.Exec("INSERT INTO "+db.GameDevicesTable+" (game_id, device_id) VALUES (?, ?)", game.ID, device.ID).Error
	})
	if err != nil {
		if existing == 0 {
			_ = s.files.Remove(stored)
		}
		return db.Device{}, err
	}
	log.Printf("device created device_id=%d game_id=%d tag=%s file=%s", device.ID, gameID, tag, stored)
	return device, nil
}

// DeleteDevice removes a device and its links. Its file is removed only when
// no other device references it.
func (s *ContentService) DeleteDevice(ctx context.Context, id uint) (DeleteResult, error) {
	var device db.Device
	var last bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&device, id).Error; err != nil {
			if db.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		var err error
		if last, err = lastFileReference(tx, device.FileLoc); err != nil {
			return err
		}
		return deleteDeviceRows(tx, device.ID)
	})
	if err != nil {
		return DeleteResult{}, err
	}
	result := DeleteResult{Name: device.Name}
	if last && s.files != nil {
		result.Warnings = s.files.RemoveAll([]string{device.FileLoc})
	}
	log.Printf("device deleted device_id=%d file=%s removed=%t", id, device.FileLoc, last && len(result.Warnings) == 0)
	return result, nil
}
