package handlers

import (
	"errors"
	"net/http"

	"transit_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgUsernameTaken      = "Username already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgMissingCredentials = "Missing username or password"
	msgInternal           = "Internal Server Error"
)

// Single, shared credentials payload for both register and login.
type authCredentials struct {
	Username string
	Password string
}

// readCredentials reads the form fields and writes a 400 when one is absent.
// Empty values are accepted.
func (h *Handler) readCredentials(c *gin.Context) (authCredentials, bool) {
	username, okUser := c.GetPostForm("username")
	password, okPass := c.GetPostForm("password")
	if !okUser || !okPass {
		if h.log != nil {
			h.log.Infow("auth_bad_request_form", "has_username", okUser, "has_password", okPass)
		}
		c.String(http.StatusBadRequest, msgMissingCredentials)
		return authCredentials{}, false
	}
	return authCredentials{Username: username, Password: password}, true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      400  {string}  string  "Username already exists"
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	input, ok := h.readCredentials(c)
	if !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			if h.log != nil {
				h.log.Infow("auth_register_conflict", "username", input.Username)
			}
			c.String(http.StatusBadRequest, msgUsernameTaken)
			return
		}
		h.logAndTextError(c, http.StatusInternalServerError, msgInternal, "auth_register_failed", err, "username", input.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("auth_registered", "user_id", id)
	}
	c.Redirect(http.StatusFound, "/")
}

// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      401  {string}  string  "Invalid credentials"
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	input, ok := h.readCredentials(c)
	if !ok {
		return
	}

	id, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("auth_login_failed", "username", input.Username)
			}
			c.String(http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		h.logAndTextError(c, http.StatusInternalServerError, msgInternal, "auth_login_error", err)
		return
	}

	token, err := h.services.IssueSession(id)
	if err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, msgInternal, "auth_issue_session_failed", err, "user_id", id.UserID)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", h.cookie.Secure, true)
}
