package server

import (
	"errors"
	"log"
	"net/http"

	"discovery-space/internal/services"
	"discovery-space/internal/web"

	"github.com/gin-gonic/gin"
)

func (s *Server) page(c *gin.Context, title string) web.Page {
	return web.Page{
		Title:    title,
		LoggedIn: s.sessions.UserID(c) != 0,
		Flashes:  s.sessions.PopFlashes(c),
	}
}

func (s *Server) loggedIn(c *gin.Context) bool {
	return s.sessions.UserID(c) != 0
}

// flashValidation flashes validation messages and reports whether err was one.
func (s *Server) flashValidation(c *gin.Context, err error) bool {
	messages, ok := services.ValidationMessages(err)
	if !ok {
		return false
	}
	for _, msg := range messages {
		s.sessions.AddFlash(c, web.FlashError, msg)
	}
	return true
}

func (s *Server) flashWarnings(c *gin.Context, warnings []string) {
	for _, warning := range warnings {
		s.sessions.AddFlash(c, web.FlashError, warning)
	}
}

func (s *Server) serverError(c *gin.Context, action string, err error) {
	log.Printf("request failed action=%s path=%s error=%v", action, c.Request.URL.Path, err)
	c.Status(http.StatusInternalServerError)
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrNotFound)
}
