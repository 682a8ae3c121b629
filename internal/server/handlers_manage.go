package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"discovery-space/internal/services"
	"discovery-space/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleManageGame(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	manage, err := s.content.ManageData(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			c.Status(http.StatusNotFound)
			return
		}
		s.serverError(c, "manage_game", err)
		return
	}
	data := web.ManageGameData{
		Page:      s.page(c, "Edit "+manage.Game.Title),
		Game:      manage.Game,
		Modes:     manage.Modes,
		Devices:   manage.Devices,
		Questions: manage.Questions,
	}
	templ.Handler(web.ManageGame(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleManageGameAction(c *gin.Context) {
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
		s.serverError(c, "manage_game_action", err)
		return
	}

	switch {
	case hasField(c, "edit_game"):
		err = s.editGame(c, id)
	case hasField(c, "add_rfid"):
		err = s.addDevice(c, id)
	case hasField(c, "the_device"):
		err = s.deleteDevice(c, id)
	case hasField(c, "add_question"):
		err = s.addQuestion(c, game.ID, game.Title)
	case hasField(c, "the_question"):
		err = s.deleteQuestion(c)
	}
	if err != nil {
		s.serverError(c, "manage_game_action", err)
		return
	}
	c.Redirect(http.StatusFound, manageGamePath(id))
}

func (s *Server) editGame(c *gin.Context, id uint) error {
	_, err := s.content.UpdateGame(c.Request.Context(), id,
		c.PostForm("game_title"), c.PostForm("game_description"), formUint(c, "mode"))
	if s.flashValidation(c, err) {
		return nil
	}
	if err != nil {
		return err
	}
	s.broadcastGamesChanged(id)
	return nil
}

func (s *Server) addDevice(c *gin.Context, gameID uint) error {
	input := services.DeviceInput{
		Name:        c.PostForm("device_name"),
		Description: c.PostForm("device_description"),
		Tag:         c.PostForm("device_tag"),
	}
	var file multipart.File
	if header, err := c.FormFile("file"); err == nil {
		if file, err = header.Open(); err != nil {
			return err
		}
		defer file.Close()
		input.File = services.Upload{Filename: header.Filename, Content: file}
	}
	device, err := s.content.CreateDevice(c.Request.Context(), gameID, input)
	if s.flashValidation(c, err) {
		return nil
	}
	if err != nil {
		return err
	}
	s.sessions.AddFlash(c, web.FlashSuccess, fmt.Sprintf("Successfully added %s.", device.Name))
	s.broadcastGamesChanged(gameID)
	return nil
}

func (s *Server) deleteDevice(c *gin.Context, gameID uint) error {
	result, err := s.content.DeleteDevice(c.Request.Context(), formUint(c, "device_id"))
	if isNotFound(err) {
		s.sessions.AddFlash(c, web.FlashError, "Device not found.")
		return nil
	}
	if err != nil {
		return err
	}
	s.flashWarnings(c, result.Warnings)
	s.sessions.AddFlash(c, web.FlashSuccess, fmt.Sprintf("Successfully deleted %s.", result.Name))
	s.broadcastGamesChanged(gameID)
	return nil
}

func (s *Server) addQuestion(c *gin.Context, gameID uint, title string) error {
	_, err := s.content.CreateQuestion(c.Request.Context(), gameID, c.PostForm("question_text"), formUints(c, "answers"))
	if errors.Is(err, services.ErrWrongMode) {
		s.sessions.AddFlash(c, web.FlashError, fmt.Sprintf("%s is not a challenge mode game.", title))
		return nil
	}
	if s.flashValidation(c, err) {
		return nil
	}
	if err != nil {
		return err
	}
	s.broadcastGamesChanged(gameID)
	return nil
}

func (s *Server) deleteQuestion(c *gin.Context) error {
	result, err := s.content.DeleteQuestion(c.Request.Context(), formUint(c, "question_id"))
	if isNotFound(err) {
		s.sessions.AddFlash(c, web.FlashError, "Question not found.")
		return nil
	}
	if err != nil {
		return err
	}
	s.sessions.AddFlash(c, web.FlashSuccess, fmt.Sprintf("Successfully deleted %s.", result.Name))
	return nil
}
