package services

import (
	"context"

	"discovery-space/internal/db"

	"gorm.io/gorm"
)

// ChallengeCursor is a visitor's position in a challenge game. The zero value
// means no game is active.
type ChallengeCursor struct {
	Active bool
	GameID uint
	Index  int
}

// Next and Previous move the cursor without checking bounds; Load recovers
// from an out-of-range index.
func (c *ChallengeCursor) Next() {
	c.Index++
}

func (c *ChallengeCursor) Previous() {
	c.Index--
}

func (c *ChallengeCursor) Finish() {
	*c = ChallengeCursor{}
}

// QuestionView is what a challenge page shows. MinID and MaxID are the first
// and last question ids of the game, or zero when it has no questions.
type QuestionView struct {
	Game     db.Game
	Question *db.Question
	Index    int
	MinID    uint
	MaxID    uint
}

type Navigator struct {
	db *gorm.DB
}

func NewNavigator(conn *gorm.DB) *Navigator {
	return &Navigator{db: conn}
}

// Load resolves the question under cursor for gameID, binding the cursor to
// the game first if it belongs to another game or none.
//
// An index outside the game's questions falls back to the lowest-id question
// of any game and resets the index to 0.
func (n *Navigator) Load(ctx context.Context, cursor *ChallengeCursor, gameID uint) (QuestionView, error) {
	tx := n.db.WithContext(ctx)
	game, err := findGame(tx, gameID)
	if err != nil {
		return QuestionView{}, err
	}
	if !game.IsChallenge() {
		return QuestionView{Game: game}, ErrWrongMode
	}

	var questions []db.Question
	if err := tx.Where("game_id = ?", gameID).Order("id asc").Find(&questions).Error; err != nil {
		return QuestionView{}, err
	}
	view := QuestionView{Game: game}
	if len(questions) > 0 {
		view.MinID = questions[0].ID
		view.MaxID = questions[len(questions)-1].ID
	}

	switch {
	case !cursor.Active || cursor.GameID != gameID:
		cursor.Active = true
		cursor.GameID = gameID
		cursor.Index = 0
		if len(questions) > 0 {
			view.Question = &questions[0]
		}
	case cursor.Index >= 0 && cursor.Index < len(questions):
		view.Question = &questions[cursor.Index]
	default:
		cursor.Index = 0
		var first db.Question
		err := tx.Order("id asc").First(&first).Error
		if err != nil && !db.IsNotFound(err) {
			return QuestionView{}, err
		}
		if err == nil {
			view.Question = &first
		}
	}
	view.Index = cursor.Index
	return view, nil
}
