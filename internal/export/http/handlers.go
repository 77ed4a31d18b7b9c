package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/export"
)

// Handler exposes the Word export endpoint.
type Handler struct{}

// NewHandler creates a new export handler.
func NewHandler() *Handler {
	return &Handler{}
}

type wordReq struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (h *Handler) word(c *gin.Context) {
	var req wordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	doc := export.Word(req.Name, req.Source)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(req.Name)))
	c.Data(http.StatusOK, "application/msword", doc)
}

// Register attaches export routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/word", h.word)
}
