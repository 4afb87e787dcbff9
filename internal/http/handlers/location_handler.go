// Live-location endpoints: riders report, read, and clear their position.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kemsguy7/pick-n-get/internal/modules/location"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

type LocationHandler struct {
	location *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{location: svc}
}

type reportLocationReq struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Heading float64 `json:"heading"`
}

func (h *LocationHandler) Report(c *gin.Context) {
	riderID, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	var req reportLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.location.Report(c.Request.Context(), location.Update{
		RiderID: riderID,
		Point:   types.Point{Lat: req.Lat, Lng: req.Lng},
		Heading: req.Heading,
	})
	if errors.Is(err, location.ErrInvalidCoordinate) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *LocationHandler) Get(c *gin.Context) {
	riderID, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	pos, found, err := h.location.Get(c.Request.Context(), riderID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "no known position")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"riderId":   riderID,
		"lat":       pos.Point.Lat,
		"lng":       pos.Point.Lng,
		"heading":   pos.Heading,
		"timestamp": pos.Timestamp,
	})
}

func (h *LocationHandler) Remove(c *gin.Context) {
	riderID, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	if err := h.location.Remove(c.Request.Context(), riderID); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
