package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uptask-dev/uptask-backend/internal/auth"
	"github.com/uptask-dev/uptask-backend/internal/projects/domain"
	"github.com/uptask-dev/uptask-backend/internal/projects/service"
	"github.com/uptask-dev/uptask-backend/internal/users"
)

func (h *Handler) list(c *gin.Context) {
	principal := auth.UserDBID(c)

	items, err := h.svc.List(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

type createReq struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Client       string     `json:"client"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.CreateProjectInput{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Client:      req.Client,
	}
	if req.DeliveryDate != nil {
		in.DeliveryDate = *req.DeliveryDate
	}

	p, err := h.svc.Create(c.Request.Context(), auth.UserDBID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type updateReq struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Client       *string    `json:"client"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Edit(c.Request.Context(), auth.UserDBID(c), c.Param("id"), service.UpdateProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		Client:       req.Client,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "project deleted"})
}

type searchReq struct {
	Email string `json:"email"`
}

func (h *Handler) searchCollaborator(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	u, err := h.svc.FindCollaborator(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func (h *Handler) addCollaborator(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.svc.AddCollaborator(c.Request.Context(), auth.UserDBID(c), c.Param("id"), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "collaborator added"})
}

type removeReq struct {
	UserID string `json:"user_id"`
}

func (h *Handler) removeCollaborator(c *gin.Context) {
	var req removeReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.svc.RemoveCollaborator(c.Request.Context(), auth.UserDBID(c), c.Param("id"), strings.TrimSpace(req.UserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "collaborator removed"})
}

// respondError maps service outcomes onto the wire. A denied read is
// reported as not-found on purpose: the caller must not learn whether the
// project exists. The distinction survives in the log line.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		log.Printf("[projects] read denied user=%s path=%s", auth.UserDBID(c), c.Request.URL.Path)
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
	case errors.Is(err, domain.ErrNotCreator),
		errors.Is(err, domain.ErrCreatorCollaborator),
		errors.Is(err, domain.ErrAlreadyCollaborator):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	default:
		log.Printf("[projects] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
