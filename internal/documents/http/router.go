package http

import "github.com/gin-gonic/gin"

// Register attaches document routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.PATCH("/:id", h.rename)
	rg.DELETE("/:id", h.delete)
}

// RegisterTree attaches folder-tree routes to the given router group.
func (h *Handler) RegisterTree(rg *gin.RouterGroup) {
	rg.GET("", h.fetchTree)
	rg.POST("/folders", h.createFolder)
	rg.PATCH("/nodes/:node_id/move", h.moveNode)
	rg.DELETE("/nodes/:node_id", h.deleteNode)
}
