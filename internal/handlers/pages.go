package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) index(c *gin.Context) {
	if _, ok := identityFrom(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// dashboard renders the board for the session user. A session whose user
// no longer exists is cleared.
func (h *Handler) dashboard(c *gin.Context) {
	id, _ := identityFrom(c)

	user, err := h.services.CurrentUser(c.Request.Context(), id.UserID)
	if err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, msgInternal, "dashboard_load_user_failed", err, "user_id", id.UserID)
		return
	}
	if user == nil {
		h.clearSessionCookie(c)
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"username": user.Username,
		"stops":    h.services.ListStops(),
	})
}
