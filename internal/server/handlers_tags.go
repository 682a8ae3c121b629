package server

import (
	"log"
	"net/http"

	"discovery-space/internal/services"

	"github.com/gin-gonic/gin"
)

// tagResponse keeps the kiosk's wire format: valid is the string "true" or
// "false".
func tagResponse(result services.MatchResult) gin.H {
	if !result.Valid {
		return gin.H{"valid": "false"}
	}
	return gin.H{
		"valid":               "true",
		"device__name":        result.Name,
		"device__description": result.Description,
		"file_loc":            result.FileURL,
		"media":               result.Media,
	}
}

func (s *Server) handleValidateLearningTag(c *gin.Context) {
	var query tagQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusOK, tagResponse(services.MatchResult{}))
		return
	}
	result, err := s.tags.ValidateLearningTag(c.Request.Context(), query.Tag, query.GameID)
	if err != nil {
		s.serverError(c, "validate_learning_tag", err)
		return
	}
	s.recordScan(c, services.ScanLearning, query, nil, result)
	c.JSON(http.StatusOK, tagResponse(result))
}

func (s *Server) handleValidateChallengeTag(c *gin.Context) {
	var query tagQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusOK, tagResponse(services.MatchResult{}))
		return
	}
	result, err := s.tags.ValidateChallengeTag(c.Request.Context(), query.Tag, query.GameID, query.QuestionID)
	if err != nil {
		s.serverError(c, "validate_challenge_tag", err)
		return
	}
	var questionID *uint
	if query.QuestionID != 0 {
		questionID = &query.QuestionID
	}
	s.recordScan(c, services.ScanChallenge, query, questionID, result)
	c.JSON(http.StatusOK, tagResponse(result))
}

func (s *Server) recordScan(c *gin.Context, kind string, query tagQuery, questionID *uint, result services.MatchResult) {
	if err := s.scans.Record(c.Request.Context(), kind, query.Tag, query.GameID, questionID, result); err != nil {
		log.Printf("scan log failed kind=%s game_id=%d error=%v", kind, query.GameID, err)
	}
}
