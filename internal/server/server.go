package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"discovery-space/internal/config"
	"discovery-space/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db        *gorm.DB
	cfg       config.Config
	sessions  *sessionStore
	kiosk     *kioskHub
	files     *services.MediaStore
	tags      *services.TagService
	navigator *services.Navigator
	content   *services.ContentService
	members   *services.MemberService
	scans     *services.ScanLog
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	files := services.NewMediaStore(cfg.UploadFolder)
	return &Server{
		db:        conn,
		cfg:       cfg,
		sessions:  newSessionStore(newSessionBackend(conn, cfg)),
		kiosk:     newKioskHub(),
		files:     files,
		tags:      services.NewTagService(conn, cfg.MediaURLPrefix),
		navigator: services.NewNavigator(conn),
		content:   services.NewContentService(conn, files),
		members:   services.NewMemberService(conn),
		scans:     services.NewScanLog(conn),
	}
}

// RunSessionJanitor prunes expired sessions until ctx is done.
func (s *Server) RunSessionJanitor(ctx context.Context, interval time.Duration) {
	s.sessions.RunJanitor(ctx, interval)
}

func (s *Server) Handler() http.Handler {
	registerValidators()
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.MaxMultipartMemory = s.cfg.MaxUploadBytes

	router.GET("/", s.handleHome)
	router.GET("/home", s.handleHome)
	router.GET("/login", s.handleLoginView)
	router.POST("/login", s.handleLogin)
	router.GET("/logout", s.handleLogout)

	router.GET("/_validate_learning_tag", s.handleValidateLearningTag)
	router.GET("/_validate_challenge_tag", s.handleValidateChallengeTag)

	router.GET("/games", s.handleGamesView)
	router.POST("/games", s.handleGamesAction)
	router.GET("/games/learn/:id", s.handleLearningGame)
	router.GET("/games/challenge/:id", s.handleChallengeGame)
	router.POST("/games/challenge/:id", s.handleChallengeAction)

	router.GET("/members", s.handleMembersView)
	router.POST("/members", s.handleMembersAction)
	router.GET("/members/:id", s.handleMemberInfo)
	router.POST("/members/:id", s.handleMemberAction)

	staff := router.Group("/", s.requireLogin)
	staff.GET("/games/manage/:id", s.handleManageGame)
	staff.POST("/games/manage/:id", s.handleManageGameAction)
	staff.GET("/manage_members", s.handleManageMembers)
	staff.POST("/manage_members", s.handleMemberSearch)
	staff.GET("/members/metrics", s.handleMetrics)
	staff.POST("/members/metrics", s.handleMetricsRun)
	staff.GET("/staff/scans", s.handleScans)

	router.GET("/ws/kiosk", s.handleKioskWebsocket)
	router.Static("/static", "static")
	if prefix := strings.TrimSuffix(s.cfg.MediaURLPrefix, "/"); prefix != "" && !strings.HasPrefix(prefix, "/static") {
		router.Static(prefix, s.cfg.UploadFolder)
	}
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if strings.HasPrefix(c.Request.URL.Path, "/static/") {
			return
		}
		log.Printf("http request method=%s path=%s status=%d duration=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
