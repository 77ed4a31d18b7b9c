package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/domain"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/versions/service"
)

// Handler exposes document version history over HTTP.
type Handler struct {
	svc *service.HistoryService
}

// NewHandler creates a new versions handler.
func NewHandler(svc *service.HistoryService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) list(c *gin.Context) {
	docID := c.Param("id")
	recs, err := h.svc.List(c.Request.Context(), docID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "versions": recs})
}

type saveReq struct {
	Content string `json:"content"`
	Note    string `json:"note"`
	Change  string `json:"change"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	change := domain.ChangeType(req.Change)
	switch change {
	case domain.ChangeInsertion, domain.ChangeDeletion, domain.ChangeModification, domain.ChangeSave:
	case "":
		change = domain.ChangeSave
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid change type"})
		return
	}

	author := c.GetString("firebase_uid")
	rec, err := h.svc.Save(c.Request.Context(), c.Param("id"), req.Content, author, req.Note, change)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if rec == nil {
		// Below the meaningful-change threshold; nothing was stored.
		c.JSON(http.StatusOK, gin.H{"ok": true, "saved": false})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "saved": true, "version": rec})
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"), c.Param("label"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrVersionNotFound) || errors.Is(err, domain.ErrNoVersions) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "version": rec})
}

func (h *Handler) revert(c *gin.Context) {
	author := c.GetString("firebase_uid")
	rec, err := h.svc.Revert(c.Request.Context(), c.Param("id"), c.Param("label"), author)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrVersionNotFound) || errors.Is(err, domain.ErrNoVersions) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "version": rec})
}

func (h *Handler) compare(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "from and to versions required"})
		return
	}

	diff, err := h.svc.Compare(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrVersionNotFound) || errors.Is(err, domain.ErrNoVersions) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "diff": diff})
}
