package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realmquest/engine/internal/adapters/handler/http/middleware"
	"github.com/realmquest/engine/internal/core/services"
)

type ArchiveHandler struct {
	svc *services.ArchiveService
}

func NewArchiveHandler(svc *services.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{svc: svc}
}

func (h *ArchiveHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/archive", h.List)
}

func (h *ArchiveHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	entries, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
