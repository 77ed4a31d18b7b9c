package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/documents/domain"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/documents/service"
)

// Handler exposes document and folder-tree endpoints.
type Handler struct {
	svc *service.DocumentService
}

// NewHandler creates a new documents handler.
func NewHandler(svc *service.DocumentService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name      string  `json:"name"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id"`
	Protected bool    `json:"is_protected"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ownerID := c.GetString("firebase_uid")
	doc, err := h.svc.Save(c.Request.Context(), ownerID, strings.TrimSpace(req.Name), req.Content, req.ParentID, req.Protected)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "document": doc})
}

func (h *Handler) list(c *gin.Context) {
	ownerID := c.GetString("firebase_uid")
	docs, err := h.svc.FetchFlat(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "documents": docs})
}

func (h *Handler) get(c *gin.Context) {
	ownerID := c.GetString("firebase_uid")
	doc, err := h.svc.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": doc})
}

type updateReq struct {
	Content string `json:"content"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ownerID := c.GetString("firebase_uid")
	doc, err := h.svc.Update(c.Request.Context(), ownerID, c.Param("id"), req.Content)
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": doc})
}

type renameReq struct {
	Name string `json:"name"`
}

func (h *Handler) rename(c *gin.Context) {
	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ownerID := c.GetString("firebase_uid")
	doc, err := h.svc.Rename(c.Request.Context(), ownerID, c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": doc})
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := c.GetString("firebase_uid")
	ok, err := h.svc.Delete(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "document not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) fetchTree(c *gin.Context) {
	ownerID := c.GetString("firebase_uid")
	tree, err := h.svc.FetchTree(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tree": tree})
}

type folderReq struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

func (h *Handler) createFolder(c *gin.Context) {
	var req folderReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ownerID := c.GetString("firebase_uid")
	node, err := h.svc.CreateFolder(c.Request.Context(), ownerID, req.ParentID, strings.TrimSpace(req.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "node": node})
}

type moveReq struct {
	ParentID *string `json:"parent_id"`
	Position int     `json:"position"`
}

func (h *Handler) moveNode(c *gin.Context) {
	var req moveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ownerID := c.GetString("firebase_uid")
	node, err := h.svc.MoveNode(c.Request.Context(), ownerID, c.Param("node_id"), req.ParentID, req.Position)
	if err != nil {
		h.replyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "node": node})
}

func (h *Handler) deleteNode(c *gin.Context) {
	ownerID := c.GetString("firebase_uid")
	ok, err := h.svc.DeleteNode(c.Request.Context(), ownerID, c.Param("node_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "tree node not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) replyError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNodeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}
