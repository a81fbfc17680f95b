package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
)

// roomHandler - returns the current state of a room.
func roomHandler(rooms roomReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := rooms.GetRoom(c.Param("code"))
		if errors.Is(err, apperror.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": apperror.ErrRoomNotFound.Error()})
			return
		}

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": apperror.Message(err)})
			return
		}

		c.JSON(http.StatusOK, view)
	}
}
