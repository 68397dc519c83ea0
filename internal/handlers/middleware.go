package handlers

import (
	"net/http"

	"transit_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "session"
	identityKey   = "identity"
)

// sessionMiddleware resolves the session cookie into an identity on the
// request context. A missing or invalid cookie leaves the request anonymous.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil || raw == "" {
		c.Next()
		return
	}

	id, err := h.services.ParseSession(raw)
	if err != nil {
		if h.log != nil {
			h.log.Infow("session_rejected", "err", err)
		}
		c.Next()
		return
	}

	c.Set(identityKey, id)
	c.Next()
}

// identityFrom returns the identity set by sessionMiddleware.
func identityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

func (h *Handler) requireAPIAuth(c *gin.Context) {
	if _, ok := identityFrom(c); !ok {
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) requirePageAuth(c *gin.Context) {
	if _, ok := identityFrom(c); !ok {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}
