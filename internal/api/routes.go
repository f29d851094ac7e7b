package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/runs", h.triggerRun)
		api.GET("/runs", h.listRuns)
		api.GET("/latest", h.latest)
		api.GET("/qr", h.qr)
	}
}
