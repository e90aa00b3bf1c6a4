package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/backend"
	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sess, err := h.sessions.Login(c.Request.Context(), creds)
	if err != nil {
		// Wrong credentials answer without redirect_to.
		if errors.Is(err, backend.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": backend.Message(err)})
			return
		}
		h.respondError(c, err)
		return
	}

	h.setCookie(c, sess)
	c.JSON(http.StatusOK, gin.H{
		"user":        sess.User,
		"expires_at":  sess.ExpiresAt,
		"redirect_to": h.afterLogin(c),
	})
}

// afterLogin sends the customer back where the login redirect came from.
func (h *Handler) afterLogin(c *gin.Context) string {
	return localPath(c.Query("from"))
}

// localPath returns from when it is a path on this site, else "/".
// Backslashes are refused outright since browsers read "/\" as "//".
func localPath(from string) string {
	if from == "" || from[0] != '/' || strings.Contains(from, "\\") {
		return "/"
	}
	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	return from
}

func (h *Handler) logout(c *gin.Context) {
	if id, err := c.Cookie(h.opts.CookieName); err == nil && id != "" {
		if err := h.sessions.Logout(c.Request.Context(), id); err != nil {
			h.respondError(c, err)
			return
		}
	}

	h.clearCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.sessions.Profile(c.Request.Context(), currentSession(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
