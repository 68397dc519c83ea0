package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"transit_dashboard/internal/models"
	"transit_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusExists  = "exists"
	statusDeleted = "deleted"

	errListFavourites  = "failed to load favourites"
	errAddFavourite    = "failed to add favourite"
	errRemoveFavourite = "failed to remove favourite"
	errInvalidBodyPref = "invalid body: "
)

// AddFavouriteRequest is the body of POST /api/favourites.
type AddFavouriteRequest struct {
	StopID   string `json:"stop_id" binding:"required" example:"4111,4116"`
	StopName string `json:"stop_name" example:"Karlsplatz"`
}

// @Summary      List favourites
// @Tags         favourites
// @Produce      json
// @Success      200  {array}   models.Favourite
// @Failure      401  {string}  string  "Unauthorized"
// @Router       /api/favourites [get]
func (h *Handler) listFavourites(c *gin.Context) {
	id, _ := identityFrom(c)

	favs, err := h.services.ListFavourites(c.Request.Context(), id.UserID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListFavourites, "favourites_list_failed", err, "user_id", id.UserID)
		return
	}
	if favs == nil {
		favs = []models.Favourite{}
	}
	c.JSON(http.StatusOK, favs)
}

// @Summary      Add a favourite
// @Tags         favourites
// @Accept       json
// @Produce      json
// @Param        body  body  AddFavouriteRequest  true  "Stop to save"
// @Success      200  {object}  map[string]string  "status: success"
// @Failure      400  {object}  map[string]string  "status: exists"
// @Failure      401  {string}  string  "Unauthorized"
// @Router       /api/favourites [post]
func (h *Handler) addFavourite(c *gin.Context) {
	id, _ := identityFrom(c)

	var req AddFavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.log != nil {
			h.log.Infow("favourites_bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	created, err := h.services.AddFavourite(c.Request.Context(), id.UserID, req.StopID, req.StopName)
	switch {
	case errors.Is(err, service.ErrEmptyStopID):
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errAddFavourite, "favourites_add_failed", err,
			"user_id", id.UserID, "stop_id", req.StopID)
	case !created:
		c.JSON(http.StatusBadRequest, gin.H{"status": statusExists})
	default:
		c.JSON(http.StatusOK, gin.H{"status": statusSuccess})
	}
}

// deleteFavourite reports success whether or not a row belonging to the
// caller was removed.
//
// @Summary      Remove a favourite
// @Tags         favourites
// @Produce      json
// @Param        id   path  int  true  "Favourite id"
// @Success      200  {object}  map[string]string  "status: deleted"
// @Failure      401  {string}  string  "Unauthorized"
// @Router       /api/favourites/{id} [delete]
func (h *Handler) deleteFavourite(c *gin.Context) {
	id, _ := identityFrom(c)

	favID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Not Found")
		return
	}

	if err := h.services.RemoveFavourite(c.Request.Context(), favID, id.UserID); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRemoveFavourite, "favourites_remove_failed", err,
			"user_id", id.UserID, "favourite_id", favID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}
