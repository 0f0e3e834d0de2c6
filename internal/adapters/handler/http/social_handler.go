package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realmquest/engine/internal/adapters/handler/http/middleware"
	"github.com/realmquest/engine/internal/core/domain"
	"github.com/realmquest/engine/internal/core/services"
)

type SocialHandler struct {
	svc *services.SocialService
}

func NewSocialHandler(svc *services.SocialService) *SocialHandler {
	return &SocialHandler{svc: svc}
}

type friendRequestBody struct {
	FriendID string `json:"friend_id" binding:"required"`
}

type challengeRequestBody struct {
	FriendID   string `json:"friend_id" binding:"required"`
	HabitTitle string `json:"habit_title" binding:"required"`
	XPReward   int    `json:"xp_reward"`
}

func (h *SocialHandler) RegisterRoutes(router *gin.RouterGroup) {
	social := router.Group("/social")
	{
		social.GET("/search", h.Search)
		social.GET("/friends", h.ListFriends)
		social.POST("/requests", h.SendRequest)
		social.POST("/requests/:id/accept", h.AcceptRequest)
		social.DELETE("/requests/:id", h.DeclineRequest)
		social.GET("/leaderboard", h.Leaderboard)
		social.GET("/notifications", h.ListNotifications)
		social.POST("/challenges", h.SendChallenge)
		social.POST("/notifications/:id/accept", h.AcceptChallenge)
		social.DELETE("/notifications/:id", h.DismissChallenge)
	}
}

func (h *SocialHandler) Search(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	profiles, err := h.svc.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *SocialHandler) ListFriends(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *SocialHandler) SendRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req friendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	friendship, err := h.svc.SendFriendRequest(c.Request.Context(), userID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFriendshipExists):
			c.JSON(http.StatusConflict, gin.H{"error": "friendship already exists"})
		case errors.Is(err, domain.ErrFriendshipSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, friendship)
}

func (h *SocialHandler) AcceptRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.AcceptFriendRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrFriendshipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "friend request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusOK)
}

func (h *SocialHandler) DeclineRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.DeclineFriendRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrFriendshipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "friend request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SocialHandler) Leaderboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	board, err := h.svc.Leaderboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *SocialHandler) ListNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	notifications, err := h.svc.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *SocialHandler) SendChallenge(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req challengeRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notification, err := h.svc.SendChallenge(c.Request.Context(), userID, req.FriendID, domain.ChallengePayload{
		HabitTitle: req.HabitTitle,
		XPReward:   req.XPReward,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidChallenge), errors.Is(err, domain.ErrFriendshipSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, notification)
}

func (h *SocialHandler) AcceptChallenge(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.AcceptChallenge(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotificationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		case errors.Is(err, domain.ErrInvalidChallenge):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *SocialHandler) DismissChallenge(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.DismissChallenge(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
