package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"discovery-space/internal/config"
	"discovery-space/internal/services"
	"discovery-space/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	sessionCookie     = "ds_session"
	sessionContextKey = "session_id"
)

type sessionData struct {
	UserID    uint                     `json:"user_id,omitempty"`
	Flashes   []web.Flash              `json:"flashes,omitempty"`
	Challenge services.ChallengeCursor `json:"challenge"`
}

// sessionBackend persists session data by id. Load returns the zero value for
// unknown or expired sessions.
type sessionBackend interface {
	Load(ctx context.Context, id string) (sessionData, error)
	Save(ctx context.Context, id string, data sessionData) error
	Delete(ctx context.Context, id string) error
}

func newSessionBackend(conn *gorm.DB, cfg config.Config) sessionBackend {
	ttl := cfg.SessionTTL()
	switch cfg.SessionBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log.Printf("session backend=redis addr=%s", cfg.RedisAddr)
		return newRedisSessions(client, ttl)
	case "db":
		if conn != nil {
			log.Printf("session backend=db")
			return newDBSessions(conn, ttl)
		}
		log.Printf("session backend=db requested without a database, using memory")
	}
	return newMemorySessions(ttl)
}

// sessionStore keys session data by the ds_session cookie. Updates are
// serialized so concurrent requests from one browser do not drop flashes.
type sessionStore struct {
	backend sessionBackend
	mu      sync.Mutex
}

func newSessionStore(backend sessionBackend) *sessionStore {
	return &sessionStore{backend: backend}
}

func (s *sessionStore) AddFlash(c *gin.Context, category, message string) {
	if message == "" {
		return
	}
	s.update(c, func(data *sessionData) {
		data.Flashes = append(data.Flashes, web.Flash{Category: category, Message: message})
	})
}

func (s *sessionStore) PopFlashes(c *gin.Context) []web.Flash {
	var flashes []web.Flash
	s.update(c, func(data *sessionData) {
		flashes = data.Flashes
		data.Flashes = nil
	})
	return flashes
}

func (s *sessionStore) UserID(c *gin.Context) uint {
	return s.load(c).UserID
}

func (s *sessionStore) SetUser(c *gin.Context, userID uint) {
	s.update(c, func(data *sessionData) {
		data.UserID = userID
	})
}

func (s *sessionStore) Cursor(c *gin.Context) services.ChallengeCursor {
	return s.load(c).Challenge
}

func (s *sessionStore) SetCursor(c *gin.Context, cursor services.ChallengeCursor) {
	s.update(c, func(data *sessionData) {
		data.Challenge = cursor
	})
}

// UpdateCursor applies fn to the stored cursor under the store lock, so
// concurrent moves from one browser are not lost.
func (s *sessionStore) UpdateCursor(c *gin.Context, fn func(*services.ChallengeCursor)) {
	s.update(c, func(data *sessionData) {
		fn(&data.Challenge)
	})
}

// Reset drops the current session and starts a fresh one.
func (s *sessionStore) Reset(c *gin.Context) {
	old := c.GetString(sessionContextKey)
	if old == "" {
		if cookie, err := c.Request.Cookie(sessionCookie); err == nil {
			old = cookie.Value
		}
	}
	if old != "" {
		if err := s.backend.Delete(c.Request.Context(), old); err != nil {
			log.Printf("session delete failed session_id=%s error=%v", old, err)
		}
	}
	c.Set(sessionContextKey, s.issueSessionID(c))
}

type sessionPruner interface {
	Prune(ctx context.Context) (int64, error)
}

// RunJanitor prunes expired sessions every interval until ctx is done. It is
// a no-op for backends that expire sessions on their own.
func (s *sessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	pruner, ok := s.backend.(sessionPruner)
	if !ok {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := pruner.Prune(ctx)
			if err != nil {
				log.Printf("session prune failed error=%v", err)
				continue
			}
			if removed > 0 {
				log.Printf("sessions pruned count=%d", removed)
			}
		}
	}
}

func (s *sessionStore) load(c *gin.Context) sessionData {
	id := s.ensureSessionID(c)
	data, err := s.backend.Load(c.Request.Context(), id)
	if err != nil {
		log.Printf("session load failed session_id=%s error=%v", id, err)
		return sessionData{}
	}
	return data
}

func (s *sessionStore) update(c *gin.Context, fn func(*sessionData)) {
	id := s.ensureSessionID(c)
	ctx := c.Request.Context()
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.backend.Load(ctx, id)
	if err != nil {
		log.Printf("session load failed session_id=%s error=%v", id, err)
	}
	fn(&data)
	if err := s.backend.Save(ctx, id, data); err != nil {
		log.Printf("session save failed session_id=%s error=%v", id, err)
	}
}

func (s *sessionStore) ensureSessionID(c *gin.Context) string {
	if id := c.GetString(sessionContextKey); id != "" {
		return id
	}
	cookie, err := c.Request.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		c.Set(sessionContextKey, cookie.Value)
		return cookie.Value
	}
	id := s.issueSessionID(c)
	c.Set(sessionContextKey, id)
	return id
}

func (s *sessionStore) issueSessionID(c *gin.Context) string {
	id := uuid.NewString()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

type memorySessions struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memorySession
}

type memorySession struct {
	data    sessionData
	touched time.Time
}

func newMemorySessions(ttl time.Duration) *memorySessions {
	return &memorySessions{ttl: ttl, items: make(map[string]memorySession)}
}

func (m *memorySessions) Load(_ context.Context, id string) (sessionData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return sessionData{}, nil
	}
	if m.ttl > 0 && time.Since(item.touched) > m.ttl {
		delete(m.items, id)
		return sessionData{}, nil
	}
	return item.data, nil
}

func (m *memorySessions) Save(_ context.Context, id string, data sessionData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = memorySession{data: data, touched: time.Now()}
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}
