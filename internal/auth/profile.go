package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uptask-dev/uptask-backend/internal/users"
)

// ProfileHandler exposes the signed-in user's directory record.
type ProfileHandler struct {
	dir *users.Directory
}

func NewProfileHandler(dir *users.Directory) *ProfileHandler {
	return &ProfileHandler{dir: dir}
}

func (h *ProfileHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *ProfileHandler) me(c *gin.Context) {
	u, err := h.dir.FindByID(c.Request.Context(), UserDBID(c))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}
