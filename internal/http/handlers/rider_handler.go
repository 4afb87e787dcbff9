// Rider registration, lookup, and approval endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
)

type RiderHandler struct {
	riders *rider.Service
}

func NewRiderHandler(svc *rider.Service) *RiderHandler {
	return &RiderHandler{riders: svc}
}

type registerRiderReq struct {
	ID            int64   `json:"riderId"`
	Name          string  `json:"name"`
	PhoneNumber   string  `json:"phoneNumber"`
	VehicleNumber string  `json:"vehicleNumber"`
	HomeAddress   string  `json:"homeAddress"`
	WalletAddress *string `json:"walletAddress"`
	VehicleType   string  `json:"vehicleType"`
	Capacity      float64 `json:"capacity"`
	Country       string  `json:"country"`
}

func (h *RiderHandler) Register(c *gin.Context) {
	var req registerRiderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	r, err := h.riders.Register(c.Request.Context(), rider.RegisterCommand{
		ID:            req.ID,
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		VehicleNumber: req.VehicleNumber,
		HomeAddress:   req.HomeAddress,
		WalletAddress: req.WalletAddress,
		VehicleType:   req.VehicleType,
		CapacityKg:    req.Capacity,
		Country:       req.Country,
	})
	if err != nil {
		writeRiderError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, riderView(r))
}

func (h *RiderHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	r, err := h.riders.Get(c.Request.Context(), id)
	if err != nil {
		writeRiderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, riderView(r))
}

type updateApprovalReq struct {
	ApprovalStatus string `json:"approvalStatus"`
}

func (h *RiderHandler) UpdateApproval(c *gin.Context) {
	id, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	var req updateApprovalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	approval, err := h.riders.UpdateApproval(c.Request.Context(), id, req.ApprovalStatus)
	if err != nil {
		writeRiderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"riderId": id, "approvalStatus": approval})
}

func riderView(r *rider.Rider) gin.H {
	return gin.H{
		"riderId":        r.ID,
		"name":           r.Name,
		"phoneNumber":    r.PhoneNumber,
		"vehicleNumber":  r.VehicleNumber,
		"homeAddress":    r.HomeAddress,
		"walletAddress":  r.WalletAddress,
		"vehicleType":    r.VehicleType,
		"capacity":       r.CapacityKg,
		"country":        r.Country,
		"riderStatus":    r.RiderStatus,
		"approvalStatus": r.ApprovalStatus,
	}
}
