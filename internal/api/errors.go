package api

import (
	"errors"
	"net/http"
	"net/url"

	"storefront/internal/backend"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service and backend errors to HTTP responses. The body
// always carries a customer-facing message.
func (h *Handler) respondError(c *gin.Context, err error) {
	msg := backend.Message(err)

	switch {
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":       msg,
			"redirect_to": h.loginRedirect(c),
		})
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, backend.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case errors.Is(err, service.ErrCancelNotAllowed):
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	case errors.Is(err, service.ErrCategoryNotFound), errors.Is(err, backend.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
	case errors.Is(err, backend.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
	case errors.Is(err, backend.ErrTransport), errors.Is(err, backend.ErrServer):
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	default:
		h.logger.Error("Unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// loginRedirect points at the login page and remembers where the customer
// came from.
func (h *Handler) loginRedirect(c *gin.Context) string {
	from := c.Query("from")
	if from == "" {
		from = c.Request.URL.Path
	}
	return h.opts.LoginPath + "?from=" + url.QueryEscape(from)
}
