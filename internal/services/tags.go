package services

import (
	"context"
	"fmt"

	"discovery-space/internal/db"

	"gorm.io/gorm"
)

// MatchResult is the outcome of a tag scan. A scan that matches nothing is a
// normal result with Valid false, not an error.
type MatchResult struct {
	Valid       bool   `json:"valid"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
	Media       string `json:"media,omitempty"`
}

type TagService struct {
	db          *gorm.DB
	mediaPrefix string
}

func NewTagService(conn *gorm.DB, mediaPrefix string) *TagService {
	return &TagService{db: conn, mediaPrefix: mediaPrefix}
}

// ValidateLearningTag matches tag against the devices that trigger gameID.
func (s *TagService) ValidateLearningTag(ctx context.Context, tag string, gameID uint) (MatchResult, error) {
	var device db.Device
	err := s.db.WithContext(ctx).
		Joins(fmt.Sprintf("JOIN %s ON %s.device_id = devices.id", db.GameDevicesTable, db.GameDevicesTable)).
		Where(db.GameDevicesTable+".game_id = ? AND devices.rfid_tag = ?", gameID, tag).
		First(&device).Error
	return s.result(device, err)
}

// ValidateChallengeTag matches tag against the answers of questionID. A
// question that does not belong to gameID never matches.
func (s *TagService) ValidateChallengeTag(ctx context.Context, tag string, gameID, questionID uint) (MatchResult, error) {
	var question db.Question
	if err := s.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		if db.IsNotFound(err) {
			return MatchResult{}, nil
		}
		return MatchResult{}, err
	}
	if question.GameID != gameID {
		return MatchResult{}, nil
	}
	var device db.Device
	err := s.db.WithContext(ctx).
		Joins(fmt.Sprintf("JOIN %s ON %s.device_id = devices.id", db.QuestionAnswersTable, db.QuestionAnswersTable)).
		Where(db.QuestionAnswersTable+".question_id = ? AND devices.rfid_tag = ?", questionID, tag).
		First(&device).Error
	return s.result(device, err)
}

func (s *TagService) result(device db.Device, err error) (MatchResult, error) {
	if err != nil {
		if db.IsNotFound(err) {
			return MatchResult{}, nil
		}
		return MatchResult{}, err
	}
	return MatchResult{
		Valid:       true,
		Name:        device.Name,
		Description: device.Description,
		FileURL:     s.mediaPrefix + device.FileLoc,
		Media:       MediaType(device.FileLoc),
	}, nil
}
