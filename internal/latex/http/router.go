package http

import "github.com/gin-gonic/gin"

// Register attaches conversion routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/parse", h.parse)
	rg.POST("/serialize", h.serialize)
	rg.POST("/preview", h.preview)
}
