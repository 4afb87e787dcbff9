// Agent (rider) job endpoints: status transitions, cancellation, listings.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kemsguy7/pick-n-get/internal/modules/pickup"
)

type AgentHandler struct {
	pickups *pickup.Service
	queries *pickup.Store
}

func NewAgentHandler(svc *pickup.Service, store *pickup.Store) *AgentHandler {
	return &AgentHandler{pickups: svc, queries: store}
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *AgentHandler) UpdateStatus(c *gin.Context) {
	riderID, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	pickupID := c.Param("pickupId")

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	to, ok := pickup.ParseStatus(req.Status)
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown status "+strconv.Quote(req.Status))
		return
	}

	p, err := h.pickups.Transition(c.Request.Context(), pickup.TransitionCommand{
		PickupID: pickupID,
		RiderID:  riderID,
		To:       to,
	})
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

type cancelReq struct {
	Reason *string `json:"reason"`
}

func (h *AgentHandler) Cancel(c *gin.Context) {
	riderID, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	pickupID := c.Param("pickupId")

	var req cancelReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	p, err := h.pickups.Cancel(c.Request.Context(), pickupID, riderID, req.Reason)
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, p)
}

func (h *AgentHandler) Active(c *gin.Context) {
	riderID, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	views, err := h.queries.RiderActive(c.Request.Context(), riderID)
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": views})
}

func (h *AgentHandler) Jobs(c *gin.Context) {
	riderID, ok := int64Param(c, "riderId")
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid rider id")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	views, err := h.queries.RiderJobs(c.Request.Context(), riderID, limit)
	if err != nil {
		writePickupError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"pickups": views})
}
