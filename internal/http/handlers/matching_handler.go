// Rider-matching endpoint: find candidate riders for a pickup request.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kemsguy7/pick-n-get/internal/modules/matching"
)

type MatchingHandler struct {
	matching *matching.Service
}

func NewMatchingHandler(svc *matching.Service) *MatchingHandler {
	return &MatchingHandler{matching: svc}
}

type findRidersReq struct {
	PickupAddress string  `json:"pickupAddress"`
	Country       string  `json:"country"`
	ItemWeight    float64 `json:"itemWeight"`
}

func (h *MatchingHandler) FindRiders(c *gin.Context) {
	var req findRidersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PickupAddress == "" || req.Country == "" || req.ItemWeight <= 0 {
		writeError(c, http.StatusBadRequest, "pickupAddress, country, and a positive itemWeight are required")
		return
	}

	result, err := h.matching.FindCandidates(c.Request.Context(), matching.FindRequest{
		PickupAddress: req.PickupAddress,
		Country:       req.Country,
		ItemWeightKg:  req.ItemWeight,
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"riders":      result.Candidates,
		"vehicleType": result.VehicleType,
		"itemWeight":  req.ItemWeight,
	})
}
