package server

import (
	"strconv"
	"strings"
	"sync"

	"discovery-space/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("mdy", func(fl validator.FieldLevel) bool {
			raw := strings.TrimSpace(fl.Field().String())
			if raw == "" {
				return true
			}
			_, err := config.ParseDate(raw)
			return err == nil
		})
	})
}

type tagQuery struct {
	Tag        string `form:"tag"`
	GameID     uint   `form:"game_id"`
	QuestionID uint   `form:"question_id"`
}

type metricsForm struct {
	StartDate string `form:"start_date" binding:"mdy"`
	EndDate   string `form:"end_date" binding:"mdy"`
}

var metricsMessages = bindMessages{
	"StartDate": {"mdy": "Invalid date format. Use MM/DD/YYYY."},
	"EndDate":   {"mdy": "Invalid date format. Use MM/DD/YYYY."},
}

// formUint reads a positive id from a posted form field, returning 0 when it
// is missing or malformed.
func formUint(c *gin.Context, key string) uint {
	value, err := strconv.ParseUint(strings.TrimSpace(c.PostForm(key)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

func formUints(c *gin.Context, key string) []uint {
	raw := c.PostFormArray(key)
	ids := make([]uint, 0, len(raw))
	for _, item := range raw {
		value, err := strconv.ParseUint(strings.TrimSpace(item), 10, 64)
		if err != nil || value == 0 {
			continue
		}
		ids = append(ids, uint(value))
	}
	return ids
}

func hasField(c *gin.Context, key string) bool {
	_, ok := c.GetPostForm(key)
	return ok
}
