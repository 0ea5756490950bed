package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
)

// parseUintParam reads a numeric path parameter, responding 400 on garbage.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(v), true
}
