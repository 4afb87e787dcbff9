// Pickup creation and customer-facing tracking/listing endpoints.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kemsguy7/pick-n-get/internal/modules/pickup"
	"github.com/kemsguy7/pick-n-get/internal/types"
)

type PickupHandler struct {
	pickups *pickup.Service
	queries *pickup.Store
}

func NewPickupHandler(svc *pickup.Service, store *pickup.Store) *PickupHandler {
	return &PickupHandler{pickups: svc, queries: store}
}

type createPickupReq struct {
	UserID            int64        `json:"userId"`
	ItemID            int64        `json:"itemId"`
	RiderID           int64        `json:"riderId"`
	CustomerName      string       `json:"customerName"`
	CustomerPhone     string       `json:"customerPhone"`
	PickupAddress     string       `json:"pickupAddress"`
	PickupCoordinates *types.Point `json:"pickupCoordinates"`
	ItemCategory      string       `json:"itemCategory"`
	ItemWeight        float64      `json:"itemWeight"`
	ItemDescription   *string      `json:"itemDescription"`
	EstimatedEarnings *types.Money `json:"estimatedEarnings"`
}

func (h *PickupHandler) Create(c *gin.Context) {
	var req createPickupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p, err := h.pickups.Create(c.Request.Context(), pickup.CreateCommand{
		UserID:            req.UserID,
		ItemID:            req.ItemID,
		RiderID:           req.RiderID,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		PickupAddress:     req.PickupAddress,
		PickupPoint:       req.PickupCoordinates,
		ItemCategory:      req.ItemCategory,
		ItemWeightKg:      req.ItemWeight,
		ItemDescription:   req.ItemDescription,
		EstimatedEarnings: req.EstimatedEarnings,
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, p)
}

func (h *PickupHandler) TrackByID(c *gin.Context) {
	id := c.Param("pickupId")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing pickup id")
		return
	}
	v, err := h.queries.TrackByID(c.Request.Context(), id)
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *PickupHandler) TrackByCode(c *gin.Context) {
	code := c.Param("trackingId")
	if code == "" {
		writeError(c, http.StatusBadRequest, "missing tracking id")
		return
	}
	v, err := h.queries.TrackByCode(c.Request.Context(), code)
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *PickupHandler) UserActive(c *gin.Context) {
	userID, ok := int64Param(c, "userId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	views, err := h.queries.UserActive(c.Request.Context(), userID)
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": views})
}

func (h *PickupHandler) UserHistory(c *gin.Context) {
	userID, ok := int64Param(c, "userId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	views, err := h.queries.UserHistory(c.Request.Context(), userID, limit)
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": views})
}
