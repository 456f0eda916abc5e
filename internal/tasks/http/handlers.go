package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uptask-dev/uptask-backend/internal/auth"
	projdomain "github.com/uptask-dev/uptask-backend/internal/projects/domain"
	"github.com/uptask-dev/uptask-backend/internal/tasks/domain"
	"github.com/uptask-dev/uptask-backend/internal/tasks/service"
)

// Handler bundles the dependencies for task HTTP endpoints.
type Handler struct {
	svc *service.TaskService
}

func New(svc *service.TaskService) *Handler {
	return &Handler{svc: svc}
}

// Register attaches task routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/complete", h.toggleComplete)
}

type createReq struct {
	ProjectID    string     `json:"project_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.DeliveryDate != nil {
		in.DeliveryDate = *req.DeliveryDate
	}

	t, err := h.svc.Create(c.Request.Context(), auth.UserDBID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "task": t})
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": t})
}

type updateReq struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Priority     *string    `json:"priority"`
	DeliveryDate *time.Time `json:"delivery_date"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), auth.UserDBID(c), c.Param("id"), service.UpdateTaskInput{
		Name:         req.Name,
		Description:  req.Description,
		Priority:     req.Priority,
		DeliveryDate: req.DeliveryDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": t})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "task deleted"})
}

func (h *Handler) toggleComplete(c *gin.Context) {
	t, err := h.svc.ToggleComplete(c.Request.Context(), auth.UserDBID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "task": t})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, projdomain.ErrAccessDenied):
		log.Printf("[tasks] read denied user=%s path=%s", auth.UserDBID(c), c.Request.URL.Path)
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "task not found"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, projdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	case errors.Is(err, domain.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, projdomain.ErrNotCreator):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	default:
		log.Printf("[tasks] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
