package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public availability and quote endpoints under
// /venues/:id and the authenticated booking endpoints under /bookings.
// limiter guards the public endpoints and may be nil.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, limiter gin.HandlerFunc) {
	limited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if limiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{limiter, handler}
	}

	g.GET("/venues/:id/availability", limited(h.Availability)...)
	g.POST("/venues/:id/quote", limited(h.Quote)...)

	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id/status", h.Transition)
	}
}
