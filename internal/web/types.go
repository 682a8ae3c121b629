package web

import (
	"time"

	"discovery-space/internal/db"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Page carries what every layout needs.
type Page struct {
	Title    string
	LoggedIn bool
	Flashes  []Flash
}

type LoginData struct {
	Page
	Next     string
	Username string
}

type GamesData struct {
	Page
	Learning  []db.Game
	Challenge []db.Game
}

type LearningGameData struct {
	Page
	Game db.Game
}

type ChallengeGameData struct {
	Page
	Game     db.Game
	Question *db.Question
	Index    int
	MinID    uint
	MaxID    uint
}

type ManageGameData struct {
	Page
	Game      db.Game
	Modes     []db.GameMode
	Devices   []db.Device
	Questions []db.Question
}

type MemberRow struct {
	ID         uint
	FirstName  string
	LastName   string
	CardNumber string
	Visits     int64
	LastVisit  time.Time
}

type MemberInfoData struct {
	Page
	Member MemberRow
}

type SearchResultsData struct {
	Page
	Query   string
	Members []MemberRow
}

type MetricsData struct {
	Page
	Start        time.Time
	End          time.Time
	TotalVisits  int
	VisitsPerDay float64
	MaxDate      time.Time
	MaxVisits    int
}

type ScanRow struct {
	ID         uint
	Kind       string
	Tag        string
	GameID     uint
	QuestionID uint
	Valid      bool
	Name       string
	CreatedAt  time.Time
}

type ScansData struct {
	Page
	Scans      []ScanRow
	Pagination PaginationData
}

type PaginationData struct {
	BasePath   string
	Page       int
	PerPage    int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}
