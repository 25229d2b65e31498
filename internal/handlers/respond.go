package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	billing "retail-pos-backend/internal/services/billing"
)

// respondError maps service errors onto HTTP statuses, unwrapping as
// needed so a wrapped typed error keeps its status. Unrecognised errors
// become a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var (
		notFound     *billing.NotFoundError
		validation   *billing.ValidationError
		invalidRef   *billing.InvalidReferenceError
		outOfStock   *billing.InsufficientStockError
		invalidState *billing.InvalidStateError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation), errors.As(err, &invalidRef):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &outOfStock), errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID parses a uuid path parameter, responding 400 on failure.
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
