package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/aiforge/pkg/model"
	"github.com/m-mizutani/aiforge/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// respondError collapses the error taxonomy to an HTTP status. Client
// errors keep their message; internal failures get a generic body.
func respondError(c *gin.Context, err error) {
	logger := logging.From(c.Request.Context())

	switch {
	case goerr.HasTag(err, model.ErrTagUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case goerr.HasTag(err, model.ErrTagInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case goerr.HasTag(err, model.ErrTagNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
