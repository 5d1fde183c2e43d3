package api

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches all API routes to the engine.
func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/generate", s.generateHandler)
		api.POST("/mint", s.mintHandler)
		api.GET("/tokens/:id/image", s.tokenImageHandler)
		api.GET("/tokens/:id/metadata", s.tokenMetadataHandler)
		api.GET("/tokens/:id/card", s.tokenCardHandler)
		api.GET("/transfers", s.transfersHandler)

		admin := api.Group("/admin", s.requireAdminToken)
		{
			admin.POST("/collect-reserves", s.collectReservesHandler)
			admin.POST("/start-sale", s.startSaleHandler)
			admin.POST("/pause", s.pauseHandler)
			admin.POST("/unpause", s.unpauseHandler)
			admin.POST("/base-uri", s.setBaseURIHandler)
		}
	}
}
