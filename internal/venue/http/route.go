package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers venue routes. Reads are public.
func RegisterRoutes(g *gin.RouterGroup, h *VenueHandler, authMiddleware gin.HandlerFunc) {
	venues := g.Group("/venues")
	{
		venues.GET("", h.List)
		venues.GET("/:id", h.Get)
		venues.GET("/:id/cover", h.Cover)

		venues.POST("", authMiddleware, h.Create)
		venues.PATCH("/:id", authMiddleware, h.Update)
		venues.DELETE("/:id", authMiddleware, h.Delete)
		venues.POST("/:id/cover", authMiddleware, h.UploadCover)
	}
}
