package server

import (
	"encoding/json"

	"discovery-space/internal/db"
	"discovery-space/internal/services"
	"discovery-space/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

const (
	scansPerPage    = 50
	maxScansPerPage = 200
)

func (s *Server) handleScans(c *gin.Context) {
	page, perPage := parsePagination(c, scansPerPage, maxScansPerPage)
	events, total, err := s.scans.Page(c.Request.Context(), page, perPage)
	if err != nil {
		s.serverError(c, "scans", err)
		return
	}
	data := web.ScansData{
		Page:       s.page(c, "Scans"),
		Scans:      make([]web.ScanRow, 0, len(events)),
		Pagination: buildPaginationData("/staff/scans", page, perPage, total),
	}
	for _, event := range events {
		data.Scans = append(data.Scans, scanRow(event))
	}
	templ.Handler(web.Scans(data)).ServeHTTP(c.Writer, c.Request)
}

func scanRow(event db.ScanEvent) web.ScanRow {
	row := web.ScanRow{
		ID:        event.ID,
		Kind:      event.Kind,
		Tag:       event.Tag,
		GameID:    event.GameID,
		Valid:     event.Valid,
		CreatedAt: event.CreatedAt,
	}
	if event.QuestionID != nil {
		row.QuestionID = *event.QuestionID
	}
	var result services.MatchResult
	if len(event.Payload) > 0 && json.Unmarshal(event.Payload, &result) == nil {
		row.Name = result.Name
	}
	return row
}
