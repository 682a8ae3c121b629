package services

import (
	"context"
	"log"
	"strings"

	"discovery-space/internal/db"

	"gorm.io/gorm"
)

// CreateQuestion adds a challenge question with its answer devices. The
// question and its answer links are committed together, so a question never
// exists without at least one answer.
func (s *ContentService) CreateQuestion(ctx context.Context, gameID uint, text string, answerIDs []uint) (db.Question, error) {
	var question db.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, gameID)
		if err != nil {
			return err
		}
		if !game.IsChallenge() {
			return ErrWrongMode
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return invalid("Invalid question text.")
		}
		if len(answerIDs) == 0 {
			return &ValidationError{Messages: []string{"Question must have at least one answer."}, Err: ErrNoAnswers}
		}
		var answers []db.Device
		if err := tx.Where("id IN ?", uniqueIDs(answerIDs)).Order("id asc").Find(&answers).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return &ValidationError{Messages: []string{"Question must have at least one answer."}, Err: ErrNoAnswers}
		}
		question = db.Question{
			Question: text,
			GameID:   game.ID,
			Answers:  answers,
		}
		return tx.Omit("Answers.*").Create(&question).Error
	})
	if err != nil {
		return db.Question{}, err
	}
	log.Printf("question created question_id=%d game_id=%d answers=%d", question.ID, gameID, len(question.Answers))
	return question, nil
}

// DeleteQuestion removes a question and its answer links.
func (s *ContentService) DeleteQuestion(ctx context.Context, id uint) (DeleteResult, error) {
	var question db.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, id).Error; err != nil {
			if db.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Exec("DELETE FROM "+db.QuestionAnswersTable+" WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Question{}, id).Error
	})
	if err != nil {
		return DeleteResult{}, err
	}
	log.Printf("question deleted question_id=%d game_id=%d", id, question.GameID)
	return DeleteResult{Name: question.Question}, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
