package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"discovery-space/internal/db"
	"discovery-space/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var errBadCredentials = errors.New("invalid username or password")

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

var loginMessages = bindMessages{
	"Username": {"required": "Username is required."},
	"Password": {"required": "Password is required."},
}

func (s *Server) handleLoginView(c *gin.Context) {
	if s.sessions.UserID(c) != 0 {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	data := web.LoginData{
		Page: s.page(c, "Staff login"),
		Next: safeNext(c.Query("next")),
	}
	templ.Handler(web.Login(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleLogin(c *gin.Context) {
	next := safeNext(c.Query("next"))
	var form loginForm
	if msg := bindForm(c, &form, loginMessages, "Invalid username or password."); msg != "" {
		s.sessions.AddFlash(c, web.FlashError, msg)
		c.Redirect(http.StatusFound, loginPath(next))
		return
	}
	user, err := s.authenticate(c, form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, errBadCredentials) {
			s.serverError(c, "login", err)
			return
		}
		log.Printf("login rejected username=%s", strings.TrimSpace(form.Username))
		s.sessions.AddFlash(c, web.FlashError, "Invalid username or password.")
		c.Redirect(http.StatusFound, loginPath(next))
		return
	}
	s.sessions.Reset(c)
	s.sessions.SetUser(c, user.ID)
	s.sessions.AddFlash(c, web.FlashSuccess, "Successfully logged in as "+user.Username)
	log.Printf("login user_id=%d", user.ID)
	if next == "" {
		next = "/home"
	}
	c.Redirect(http.StatusFound, next)
}

func (s *Server) handleLogout(c *gin.Context) {
	s.sessions.Reset(c)
	s.sessions.AddFlash(c, web.FlashSuccess, "Successfully logged out.")
	c.Redirect(http.StatusFound, "/home")
}

func (s *Server) authenticate(c *gin.Context, username, password string) (db.User, error) {
	var user db.User
	err := s.db.WithContext(c.Request.Context()).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if db.IsNotFound(err) {
			return db.User{}, errBadCredentials
		}
		return db.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return db.User{}, errBadCredentials
	}
	return user, nil
}

// requireLogin sends anonymous visitors to the login page, remembering where
// they were headed.
func (s *Server) requireLogin(c *gin.Context) {
	if s.sessions.UserID(c) != 0 {
		c.Next()
		return
	}
	c.Redirect(http.StatusFound, loginPath(c.Request.URL.RequestURI()))
	c.Abort()
}

// HashPassword returns the bcrypt hash stored for staff users.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
