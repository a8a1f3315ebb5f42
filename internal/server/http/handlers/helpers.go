package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/routemanager/internal/server/http/dto"
	"github.com/polkiloo/routemanager/internal/server/http/middleware"
)

// CurrentOperatorID extracts the authenticated operator identifier from context.
func CurrentOperatorID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.OperatorIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// pathID parses a positive integer path parameter. On failure it writes a 400
// response and returns false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "bad_request",
			Message: name + " must be a positive integer",
			Details: map[string]any{"field": name},
		})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "bad_request", Message: "malformed request body"})
}
