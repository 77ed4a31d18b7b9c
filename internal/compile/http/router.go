package http

import "github.com/gin-gonic/gin"

// Register attaches the compile route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.compile)
}
