package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/document"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/parse"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/preview"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/latex/serialize"
)

// Handler exposes the LaTeX conversion endpoints.
type Handler struct{}

// NewHandler creates a new conversion handler.
func NewHandler() *Handler {
	return &Handler{}
}

type sourceReq struct {
	Source string `json:"source"`
}

func (h *Handler) parse(c *gin.Context) {
	var req sourceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	doc := parse.Parse(req.Source)
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": doc})
}

type serializeReq struct {
	Document *document.Document `json:"document"`
}

func (h *Handler) serialize(c *gin.Context) {
	var req serializeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Document == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "source": serialize.Serialize(req.Document)})
}

func (h *Handler) preview(c *gin.Context) {
	var req sourceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "html": preview.Render(req.Source)})
}
