// Package http wires the gin router: API routes, middleware, health, metrics.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kemsguy7/pick-n-get/internal/http/handlers"
	"github.com/kemsguy7/pick-n-get/internal/http/middleware"
	"github.com/kemsguy7/pick-n-get/internal/modules/location"
	"github.com/kemsguy7/pick-n-get/internal/modules/matching"
	"github.com/kemsguy7/pick-n-get/internal/modules/pickup"
	"github.com/kemsguy7/pick-n-get/internal/modules/rider"
)

type RouterDeps struct {
	Matching    *matching.Service
	Pickups     *pickup.Service
	PickupStore *pickup.Store
	Riders      *rider.Service
	Locations   *location.Service
	Logger      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.Recovery(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	matchingH := handlers.NewMatchingHandler(deps.Matching)
	pickupH := handlers.NewPickupHandler(deps.Pickups, deps.PickupStore)
	agentH := handlers.NewAgentHandler(deps.Pickups, deps.PickupStore)
	riderH := handlers.NewRiderHandler(deps.Riders)
	locationH := handlers.NewLocationHandler(deps.Locations)

	v1 := r.Group("/api/v1")
	{
		pickups := v1.Group("/pickups")
		{
			pickups.POST("/find-riders", matchingH.FindRiders)
			pickups.POST("", pickupH.Create)
			pickups.GET("/track/:pickupId", pickupH.TrackByID)
			pickups.GET("/tracking/:trackingId", pickupH.TrackByCode)
			pickups.GET("/user/:userId/active", pickupH.UserActive)
			pickups.GET("/user/:userId/history", pickupH.UserHistory)
		}

		agents := v1.Group("/agents/:riderId")
		{
			agents.PATCH("/pickups/:pickupId/status", agentH.UpdateStatus)
			agents.POST("/pickups/:pickupId/cancel", agentH.Cancel)
			agents.GET("/pickups/active", agentH.Active)
			agents.GET("/pickups/jobs", agentH.Jobs)
		}

		riders := v1.Group("/riders")
		{
			riders.POST("", riderH.Register)
			riders.GET("/:riderId", riderH.Get)
			riders.PATCH("/:riderId/approval", riderH.UpdateApproval)
		}

		locations := v1.Group("/riders/:riderId/location")
		{
			locations.PUT("", locationH.Report)
			locations.GET("", locationH.Get)
			locations.DELETE("", locationH.Remove)
		}
	}

	return r
}
