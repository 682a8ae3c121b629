package server

const (
	eventGamesChanged  = "games_changed"
	eventVisitRecorded = "visit_recorded"
	eventConnected     = "connected"
)

// KioskEvent is pushed to every kiosk screen connected to /ws/kiosk.
type KioskEvent struct {
	Type   string `json:"type"`
	GameID uint   `json:"game_id,omitempty"`
	Member string `json:"member,omitempty"`
}
