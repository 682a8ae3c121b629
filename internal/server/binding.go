package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type bindMessages map[string]map[string]string

type idParam struct {
	ID uint `uri:"id" binding:"required"`
}

// bindForm binds a form post and returns the message to flash, or "" when the
// form is valid.
func bindForm(c *gin.Context, req any, messages bindMessages, fallback string) string {
	if err := c.ShouldBind(req); err != nil {
		return resolveBindError(err, messages, fallback)
	}
	return ""
}

func bindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		c.Status(http.StatusNotFound)
		return false
	}
	return true
}

func bindID(c *gin.Context) (uint, bool) {
	var param idParam
	if !bindURI(c, &param) {
		return 0, false
	}
	return param.ID, true
}

func resolveBindError(err error, messages bindMessages, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return msg
				}
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return "invalid request"
}
