package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realmquest/engine/internal/adapters/handler/http/middleware"
	"github.com/realmquest/engine/internal/core/domain"
	"github.com/realmquest/engine/internal/core/services"
)

type QuestHandler struct {
	svc *services.QuestService
}

func NewQuestHandler(svc *services.QuestService) *QuestHandler {
	return &QuestHandler{svc: svc}
}

type createQuestRequest struct {
	Title        string     `json:"title" binding:"required"`
	Difficulty   string     `json:"difficulty" binding:"required"`
	LinkedAreaID *string    `json:"linked_area_id"`
	Deadline     *time.Time `json:"deadline"`
	Milestones   []string   `json:"milestones"`
}

func (h *QuestHandler) RegisterRoutes(router *gin.RouterGroup) {
	quests := router.Group("/quests")
	{
		quests.POST("", h.Create)
		quests.GET("", h.List)
		quests.POST("/:id/complete", h.Complete)
		quests.DELETE("/:id", h.Delete)
	}

	router.POST("/milestones/:id/toggle", h.ToggleMilestone)
}

func (h *QuestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateQuestInput{
		UserID:       userID,
		Title:        req.Title,
		Difficulty:   domain.Difficulty(req.Difficulty),
		LinkedAreaID: req.LinkedAreaID,
		Deadline:     req.Deadline,
		Milestones:   req.Milestones,
	}

	project, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProjectTitleEmpty),
			errors.Is(err, domain.ErrProjectTitleTooLong),
			errors.Is(err, domain.ErrInvalidDifficulty),
			errors.Is(err, domain.ErrMilestoneTextEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *QuestHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	projects, err := h.svc.ListActive(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *QuestHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	profile, err := h.svc.Complete(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, domain.ErrProjectAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "quest already completed"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *QuestHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuestHandler) ToggleMilestone(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	milestone, profile, err := h.svc.ToggleMilestone(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMilestoneNotFound), errors.Is(err, domain.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "milestone not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"milestone": milestone,
		"profile":   profile,
	})
}
