// Base handler utilities: JSON helpers, path parsing, error mapping.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kemsguy7/pick-n-get/internal/geo"
	"github.com/kemsguy7/pick-n-get/internal/modules/pickup"
	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
)

type errorResponse struct {
	Error        string `json:"error"`
	TrackingID   string `json:"trackingId,omitempty"`
	CurrentState string `json:"currentStatus,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// int64Param parses a numeric path parameter; 0 with false on garbage.
func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func writePickupError(c *gin.Context, err error) {
	var dup *pickup.DuplicatePickupError
	var inv *pickup.InvalidTransitionError
	var capErr *pickup.CapacityError
	switch {
	case errors.As(err, &dup):
		writeJSON(c, http.StatusConflict, errorResponse{
			Error:        dup.Error(),
			TrackingID:   dup.TrackingID,
			CurrentState: string(dup.Status),
		})
	case errors.As(err, &inv):
		writeJSON(c, http.StatusBadRequest, errorResponse{
			Error:        inv.Error(),
			CurrentState: string(inv.From),
		})
	case errors.As(err, &capErr):
		writeError(c, http.StatusBadRequest, capErr.Error())
	case errors.Is(err, pickup.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pickup.ErrNotFound),
		errors.Is(err, pickup.ErrRiderNotFound),
		errors.Is(err, pickup.ErrNotAssigned):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, pickup.ErrRiderUnavailable),
		errors.Is(err, pickup.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, geo.ErrGeocode):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeRiderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rider.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, rider.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, rider.ErrExists):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
