package services

import (
	"testing"

	"discovery-space/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionWithoutAnswersWritesNothing(t *testing.T) {
	svc, _ := newContentService(t)
	game := createGame(t, svc.db, "Birds", db.ModeChallenge)

	_, err := svc.CreateQuestion(ctx, game.ID, "Which bird cannot fly?", nil)
	assert.ErrorIs(t, err, ErrNoAnswers)
	messages, ok := ValidationMessages(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Question must have at least one answer."}, messages)

	_, err = svc.CreateQuestion(ctx, game.ID, "Which bird cannot fly?", []uint{404})
	assert.ErrorIs(t, err, ErrNoAnswers)

	var count int64
	require.NoError(t, svc.db.Model(&db.Question{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateQuestionLinksAnswers(t *testing.T) {
	svc, _ := newContentService(t)
	game := createGame(t, svc.db, "Birds", db.ModeChallenge)
	penguin := createDevice(t, svc.db, game.ID, "Penguin", "PENGUIN", "penguin.png")
	emu := createDevice(t, svc.db, game.ID, "Emu", "EMU", "emu.png")

	question, err := svc.CreateQuestion(ctx, game.ID, " Which bird cannot fly? ", []uint{penguin.ID, emu.ID, emu.ID})
	require.NoError(t, err)
	assert.Equal(t, "Which bird cannot fly?", question.Question)

	tags := NewTagService(svc.db, "/static/media/")
	for _, tag := range []string{"PENGUIN", "EMU"} {
		result, err := tags.ValidateChallengeTag(ctx, tag, game.ID, question.ID)
		require.NoError(t, err)
		assert.True(t, result.Valid, tag)
	}
}

func TestCreateQuestionRequiresChallengeGameAndText(t *testing.T) {
	svc, _ := newContentService(t)
	learning := createGame(t, svc.db, "Learn", db.ModeLearning)
	challenge := createGame(t, svc.db, "Quiz", db.ModeChallenge)
	device := createDevice(t, svc.db, challenge.ID, "Shell", "SHELL", "shell.png")

	_, err := svc.CreateQuestion(ctx, learning.ID, "Question?", []uint{device.ID})
	assert.ErrorIs(t, err, ErrWrongMode)

	_, err = svc.CreateQuestion(ctx, challenge.ID, "  ", []uint{device.ID})
	messages, ok := ValidationMessages(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Invalid question text."}, messages)
}

func TestDeleteQuestionRemovesAnswerLinks(t *testing.T) {
	svc, _ := newContentService(t)
	game := createGame(t, svc.db, "Birds", db.ModeChallenge)
	owl := createDevice(t, svc.db, game.ID, "Owl", "OWL", "owl.png")
	question := createQuestion(t, svc.db, game.ID, "Who hoots?", owl)

	result, err := svc.DeleteQuestion(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, "Who hoots?", result.Name)

	var links int64
	require.NoError(t, svc.db.Table("question_answers").Count(&links).Error)
	assert.Zero(t, links)
	var devices int64
	require.NoError(t, svc.db.Model(&db.Device{}).Count(&devices).Error)
	assert.Equal(t, int64(1), devices)

	_, err = svc.DeleteQuestion(ctx, question.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
