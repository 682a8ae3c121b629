package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"discovery-space/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(t *testing.T) (*ContentService, string) {
	t.Helper()
	conn := setupTestDB(t)
	dir := t.TempDir()
	return NewContentService(conn, NewMediaStore(dir)), dir
}

func writeMedia(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("media"), 0o644))
}

func TestCreateGameUsesFirstMode(t *testing.T) {
	svc, _ := newContentService(t)
	game, err := svc.CreateGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Default", game.Title)
	assert.Equal(t, "default", game.Description)
	assert.Equal(t, db.ModeLearning, game.GameMode.Mode)
}

func TestCreateGameWithoutModes(t *testing.T) {
	svc, _ := newContentService(t)
	require.NoError(t, svc.db.Exec("DELETE FROM game_modes").Error)
	_, err := svc.CreateGame(ctx)
	assert.ErrorIs(t, err, ErrNoGameModes)
}

func TestUpdateGameRejectsAllInvalidFields(t *testing.T) {
	svc, _ := newContentService(t)
	game := createGame(t, svc.db, "Volcanoes", db.ModeLearning)

	_, err := svc.UpdateGame(ctx, game.ID, " ", "", 0)
	messages, ok := ValidationMessages(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Invalid title.", "Invalid description.", "Invalid game mode selected."}, messages)

	_, err = svc.UpdateGame(ctx, game.ID, "New title", "New description", 999)
	messages, ok = ValidationMessages(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Invalid game mode selected."}, messages)

	_, err = svc.UpdateGame(ctx, game.ID, strings.Repeat("t", 121), "New description", modeID(t, svc.db, db.ModeLearning))
	messages, ok = ValidationMessages(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Title must be at most 120 characters."}, messages)

	stored, err := svc.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "Volcanoes", stored.Title)
}

func TestUpdateGameAppliesChanges(t *testing.T) {
	svc, _ := newContentService(t)
	game := createGame(t, svc.db, "Volcanoes", db.ModeLearning)
	challenge := modeID(t, svc.db, db.ModeChallenge)

	updated, err := svc.UpdateGame(ctx, game.ID, "Bugs", "Insect quiz", challenge)
	require.NoError(t, err)
	assert.Equal(t, db.ModeChallenge, updated.GameMode.Mode)

	stored, err := svc.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bugs", stored.Title)
	assert.Equal(t, "Insect quiz", stored.Description)
	assert.True(t, stored.IsChallenge())

	_, err = svc.UpdateGame(ctx, 999, "a", "b", challenge)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGamesSplitsByModeOrderedByTitle(t *testing.T) {
	svc, _ := newContentService(t)
	createGame(t, svc.db, "Zebras", db.ModeLearning)
	createGame(t, svc.db, "Ants", db.ModeLearning)
	createGame(t, svc.db, "Moon quiz", db.ModeChallenge)

	learning, challenge, err := svc.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, learning, 2)
	assert.Equal(t, "Ants", learning[0].Title)
	assert.Equal(t, "Zebras", learning[1].Title)
	require.Len(t, challenge, 1)
	assert.Equal(t, "Moon quiz", challenge[0].Title)
}

func TestDeleteGameCascadesAndCountsFileReferences(t *testing.T) {
	svc, dir := newContentService(t)
	game := createGame(t, svc.db, "Farm", db.ModeChallenge)
	keep := createGame(t, svc.db, "Barn", db.ModeLearning)
	writeMedia(t, dir, "cow.png")
	writeMedia(t, dir, "shared.png")
	cow := createDevice(t, svc.db, game.ID, "Cow", "COW", "cow.png")
	createDevice(t, svc.db, game.ID, "Pig", "PIG", "shared.png")
	createDevice(t, svc.db, keep.ID, "Horse", "HORSE", "shared.png")
	createDevice(t, svc.db, game.ID, "Ghost", "GHOST", "missing.png")
	createQuestion(t, svc.db, game.ID, "Which animal moos?", cow)

	result, err := svc.DeleteGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "Farm", result.Name)
	assert.Equal(t, []string{"File missing.png does not exist."}, result.Warnings)

	assert.NoFileExists(t, filepath.Join(dir, "cow.png"))
	assert.FileExists(t, filepath.Join(dir, "shared.png"))

	var devices, questions, links, answers int64
	require.NoError(t, svc.db.Model(&db.Device{}).Count(&devices).Error)
	require.NoError(t, svc.db.Model(&db.Question{}).Count(&questions).Error)
	require.NoError(t, svc.db.Table("game_devices").Count(&links).Error)
	require.NoError(t, svc.db.Table("question_answers").Count(&answers).Error)
	assert.Equal(t, int64(1), devices)
	assert.Zero(t, questions)
	assert.Equal(t, int64(1), links)
	assert.Zero(t, answers)

	_, err = svc.GetGame(ctx, game.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.DeleteGame(ctx, game.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManageDataListsChallengeQuestionsWithAnswers(t *testing.T) {
	svc, _ := newContentService(t)
	game := createGame(t, svc.db, "Shapes", db.ModeChallenge)
	cube := createDevice(t, svc.db, game.ID, "Cube", "CUBE", "cube.png")
	sphere := createDevice(t, svc.db, game.ID, "Sphere", "SPHERE", "sphere.png")
	createQuestion(t, svc.db, game.ID, "Which is round?", sphere)
	createQuestion(t, svc.db, game.ID, "Any solid?", cube, sphere)

	data, err := svc.ManageData(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, data.Modes, 2)
	assert.Equal(t, db.ModeChallenge, data.Modes[0].Mode)
	require.Len(t, data.Devices, 2)
	require.Len(t, data.Questions, 2)
	assert.Equal(t, "Any solid?", data.Questions[0].Question)
	assert.Len(t, data.Questions[0].Answers, 2)
	assert.Len(t, data.Questions[1].Answers, 1)
}
