package http

import "github.com/gin-gonic/gin"

// Register attaches version-history routes under a document group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:id/versions", h.list)
	rg.POST("/:id/versions", h.save)
	rg.POST("/:id/versions/:label/revert", h.revert)
	rg.GET("/:id/versions/compare", h.compare)
	rg.GET("/:id/versions/:label", h.get)
}
