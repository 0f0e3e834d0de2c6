package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realmquest/engine/internal/adapters/handler/http/middleware"
	"github.com/realmquest/engine/internal/core/services"
	"github.com/realmquest/engine/internal/core/workers"
)

type ProfileHandler struct {
	svc    *services.ProfileService
	worker *workers.StreakWorker
}

func NewProfileHandler(svc *services.ProfileService, worker *workers.StreakWorker) *ProfileHandler {
	return &ProfileHandler{
		svc:    svc,
		worker: worker,
	}
}

// Get returns the ledger and kicks the streak recomputation off the request
// path; the client sees lapsed streaks on its next read.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if h.worker != nil {
		h.worker.Enqueue(userID)
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.Get)
}
