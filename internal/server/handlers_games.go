package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"discovery-space/internal/services"
	"discovery-space/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHome(c *gin.Context) {
	templ.Handler(web.Home(s.page(c, ""))).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleGamesView(c *gin.Context) {
	learning, challenge, err := s.content.ListGames(c.Request.Context())
	if err != nil {
		s.serverError(c, "list_games", err)
		return
	}
	data := web.GamesData{
		Page:      s.page(c, "Games"),
		Learning:  learning,
		Challenge: challenge,
	}
	templ.Handler(web.Games(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleGamesAction(c *gin.Context) {
	if !s.loggedIn(c) {
		c.Redirect(http.StatusFound, loginPath("/games"))
		return
	}
	ctx := c.Request.Context()
	switch {
	case hasField(c, "the_game"):
		gameID := formUint(c, "game_id")
		result, err := s.content.DeleteGame(ctx, gameID)
		if err != nil {
			if isNotFound(err) {
				s.sessions.AddFlash(c, web.FlashError, "Game not found.")
				c.Redirect(http.StatusFound, "/games")
				return
			}
			s.serverError(c, "delete_game", err)
			return
		}
		s.flashWarnings(c, result.Warnings)
		s.sessions.AddFlash(c, web.FlashSuccess, fmt.Sprintf("Successfully deleted %s.", result.Name))
		s.broadcastGamesChanged(gameID)
	case hasField(c, "create"):
		game, err := s.content.CreateGame(ctx)
		if err != nil {
			if errors.Is(err, services.ErrNoGameModes) {
				s.sessions.AddFlash(c, web.FlashError, "No game modes are configured.")
				c.Redirect(http.StatusFound, "/games")
				return
			}
			s.serverError(c, "create_game", err)
			return
		}
		s.broadcastGamesChanged(game.ID)
		c.Redirect(http.StatusFound, manageGamePath(game.ID))
		return
	}
	c.Redirect(http.StatusFound, "/games")
}

func (s *Server) handleLearningGame(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	game, err := s.content.GetGame(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.Status(http.StatusNotFound)
			return
		}
		s.serverError(c, "learning_game", err)
		return
	}
	if !game.IsLearning() {
		s.sessions.AddFlash(c, web.FlashError, fmt.Sprintf("%s is not a learning mode game.", game.Title))
		c.Redirect(http.StatusFound, "/games")
		return
	}
	data := web.LearningGameData{Page: s.page(c, game.Title), Game: game}
	templ.Handler(web.LearningGame(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleChallengeGame(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	cursor := s.sessions.Cursor(c)
	loaded := cursor
	view, err := s.navigator.Load(c.Request.Context(), &cursor, id)
	if err != nil {
		switch {
		case isNotFound(err):
			c.Status(http.StatusNotFound)
		case errors.Is(err, services.ErrWrongMode):
			s.sessions.AddFlash(c, web.FlashError, fmt.Sprintf("%s is not a challenge mode game.", view.Game.Title))
			c.Redirect(http.StatusFound, "/games")
		default:
			s.serverError(c, "challenge_game", err)
		}
		return
	}
	if cursor != loaded {
		s.sessions.SetCursor(c, cursor)
	}
	data := web.ChallengeGameData{
		Page:     s.page(c, view.Game.Title),
		Game:     view.Game,
		Question: view.Question,
		Index:    view.Index,
		MinID:    view.MinID,
		MaxID:    view.MaxID,
	}
	templ.Handler(web.ChallengeGame(data)).ServeHTTP(c.Writer, c.Request)
}

// handleChallengeAction moves the visitor's cursor. Bounds are not checked
// here; the next page load recovers from an out-of-range index.
func (s *Server) handleChallengeAction(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if _, err := s.content.GetGame(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			c.Status(http.StatusNotFound)
			return
		}
		s.serverError(c, "challenge_action", err)
		return
	}
	var move func(*services.ChallengeCursor)
	switch {
	case hasField(c, "next_question"):
		move = (*services.ChallengeCursor).Next
	case hasField(c, "previous_question"):
		move = (*services.ChallengeCursor).Previous
	case hasField(c, "finish"):
		s.sessions.UpdateCursor(c, (*services.ChallengeCursor).Finish)
		log.Printf("challenge finished game_id=%d", id)
		c.Redirect(http.StatusFound, "/games")
		return
	}
	if move != nil {
		s.sessions.UpdateCursor(c, move)
	}
	c.Redirect(http.StatusFound, challengeGamePath(id))
}
