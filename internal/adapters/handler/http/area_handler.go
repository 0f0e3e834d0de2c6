package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realmquest/engine/internal/adapters/handler/http/middleware"
	"github.com/realmquest/engine/internal/core/domain"
	"github.com/realmquest/engine/internal/core/services"
)

type AreaHandler struct {
	svc *services.AreaService
}

func NewAreaHandler(svc *services.AreaService) *AreaHandler {
	return &AreaHandler{svc: svc}
}

type createAreaRequest struct {
	Title     string `json:"title" binding:"required"`
	Attribute string `json:"attribute" binding:"required"`
}

type renameAreaRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *AreaHandler) RegisterRoutes(router *gin.RouterGroup) {
	areas := router.Group("/areas")
	{
		areas.POST("", h.Create)
		areas.GET("", h.List)
		areas.PUT("/:id", h.Rename)
		areas.DELETE("/:id", h.Delete)
	}
}

func (h *AreaHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area, err := h.svc.Create(c.Request.Context(), userID, req.Title, domain.Attribute(req.Attribute))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAreaTitleEmpty), errors.Is(err, domain.ErrInvalidAttribute):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, area)
}

func (h *AreaHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	areas, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, areas)
}

func (h *AreaHandler) Rename(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req renameAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area, err := h.svc.Rename(c.Request.Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAreaNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		case errors.Is(err, domain.ErrAreaTitleEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, area)
}

func (h *AreaHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAreaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
