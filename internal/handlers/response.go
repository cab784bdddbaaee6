package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/services"
)

// Every endpoint answers with the same envelope:
// {success, data?, message?, currentPage?, totalPages?, totalItems?}.

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

func respondOKWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondPage(c *gin.Context, data any, page services.PageInfo) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        data,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"totalItems":  page.TotalItems,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

// respondError translates a service error into the envelope. Internal
// errors are logged and masked.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		message = "Internal server error"
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
