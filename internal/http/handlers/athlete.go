package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/christianrafael21/hoopscout/internal/http/response"
	"github.com/christianrafael21/hoopscout/internal/services"
)

// AthleteHandler serves the per-athlete read views.
type AthleteHandler struct {
	evaluations services.EvaluationService
	statistics  services.StatisticsService
}

func NewAthleteHandler(evaluations services.EvaluationService, statistics services.StatisticsService) *AthleteHandler {
	return &AthleteHandler{evaluations: evaluations, statistics: statistics}
}

// GET /athletes/:id/evaluations
func (h *AthleteHandler) Evaluations(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	views, err := h.evaluations.GetByAthlete(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"evaluations": views})
}

// GET /athletes/:id/history
func (h *AthleteHandler) History(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	items, err := h.evaluations.GetHistoryByAthlete(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"history": items})
}

// GET /athletes/:id/statistics
func (h *AthleteHandler) Statistics(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	stats, err := h.statistics.ForAthlete(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"statistics": stats})
}
