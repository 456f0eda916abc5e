package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)

	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)

	rg.POST("/:id/collaborators", h.addCollaborator)
	rg.DELETE("/:id/collaborators", h.removeCollaborator)
}

// RegisterSearch attaches the collaborator email search. It lives outside the
// /projects subtree because gin's router does not allow a static segment next
// to the :id wildcard. guard is optional middleware (rate limiting).
func (h *Handler) RegisterSearch(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	handlers := append(guard, h.searchCollaborator)
	rg.POST("/collaborators/search", handlers...)
}
