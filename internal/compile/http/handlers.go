package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/compile"
)

// Handler exposes the PDF compilation endpoint.
type Handler struct {
	client  *compile.Client
	limiter *rate.Limiter
}

// NewHandler creates a new compile handler. The limiter guards the
// external compiler from bursts of recompile requests.
func NewHandler(client *compile.Client) *Handler {
	return &Handler{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(2), 5),
	}
}

type compileReq struct {
	Source   string            `json:"source"`
	AuxFiles []compile.AuxFile `json:"aux_files"`
}

func (h *Handler) compile(c *gin.Context) {
	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "compile rate limit exceeded"})
		return
	}

	var req compileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	pdf, err := h.client.Compile(c.Request.Context(), req.Source, req.AuxFiles)
	if err != nil {
		var compileErr *compile.Error
		if errors.As(err, &compileErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "compilation failed", "log": compileErr.Log})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/pdf", pdf)
}
