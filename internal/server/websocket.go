package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// kioskHub tracks kiosk screens. writeMu serializes writes since a
// websocket connection supports one concurrent writer.
type kioskHub struct {
	mu      sync.Mutex
	writeMu sync.Mutex
	conns   map[*websocket.Conn]struct{}
}

func newKioskHub() *kioskHub {
	return &kioskHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *kioskHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *kioskHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *kioskHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *kioskHub) Send(conn *websocket.Conn, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *kioskHub) Broadcast(payload any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	var failed []*websocket.Conn
	h.writeMu.Lock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			failed = append(failed, conn)
		}
	}
	h.writeMu.Unlock()
	for _, conn := range failed {
		h.Remove(conn)
	}
}

var kioskUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleKioskWebsocket(c *gin.Context) {
	conn, err := kioskUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected kiosk remote=%s", c.Request.RemoteAddr)
	s.kiosk.Add(conn)
	s.kiosk.Send(conn, KioskEvent{Type: eventConnected})
	go s.readKioskWS(conn)
}

func (s *Server) readKioskWS(conn *websocket.Conn) {
	defer s.kiosk.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("kiosk ws disconnected error=%v", err)
			return
		}
	}
}

func (s *Server) broadcastGamesChanged(gameID uint) {
	if s.kiosk == nil {
		return
	}
	s.kiosk.Broadcast(KioskEvent{Type: eventGamesChanged, GameID: gameID})
}

func (s *Server) broadcastVisit(firstName string) {
	if s.kiosk == nil {
		return
	}
	s.kiosk.Broadcast(KioskEvent{Type: eventVisitRecorded, Member: firstName})
}
