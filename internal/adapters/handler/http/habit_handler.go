package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realmquest/engine/internal/adapters/handler/http/middleware"
	"github.com/realmquest/engine/internal/core/domain"
	"github.com/realmquest/engine/internal/core/services"
)

type HabitHandler struct {
	svc *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{
		svc: svc,
	}
}

type createHabitRequest struct {
	Title         string  `json:"title" binding:"required"`
	LinkedAreaID  *string `json:"linked_area_id"`
	XPReward      int     `json:"xp_reward"`
	TargetMinutes *int    `json:"target_minutes"`
}

type habitResponse struct {
	*domain.Habit
	CompletedToday bool `json:"completed_today"`
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.POST("/:id/complete", h.Complete)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateHabitInput{
		UserID:        userID,
		Title:         req.Title,
		LinkedAreaID:  req.LinkedAreaID,
		XPReward:      req.XPReward,
		TargetMinutes: req.TargetMinutes,
	}

	habit, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitTitleEmpty),
			errors.Is(err, domain.ErrHabitTitleTooLong),
			errors.Is(err, domain.ErrHabitInvalidXP):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	today := h.svc.Today()

	out := make([]habitResponse, 0, len(list))
	for _, habit := range list {
		out = append(out, habitResponse{
			Habit:          habit,
			CompletedToday: habit.CompletedOn(today),
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *HabitHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	result, err := h.svc.Complete(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case errors.Is(err, domain.ErrHabitConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "habit was modified elsewhere, retry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
