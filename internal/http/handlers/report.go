package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/christianrafael21/hoopscout/internal/http/response"
	"github.com/christianrafael21/hoopscout/internal/services"
)

type ReportHandler struct {
	reports services.ReportService
}

func NewReportHandler(reports services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// POST /reports/evaluations/:id
func (h *ReportHandler) GenerateEvaluation(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rep, err := h.reports.GenerateEvaluationReport(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"report": rep})
}

// POST /reports/athletes/:id/statistics
func (h *ReportHandler) GenerateStatistics(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rep, err := h.reports.GenerateStatisticsReport(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"report": rep})
}

// GET /reports/athletes/:id
func (h *ReportHandler) ListByAthlete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rows, err := h.reports.ListByAthlete(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reports": rows})
}

// GET /reports/:id
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rep, err := h.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": rep})
}

// GET /reports/:id/scorecard.png
func (h *ReportHandler) Scorecard(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	img, err := h.reports.RenderScorecard(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="scorecard.png"`)
	c.Data(http.StatusOK, "image/png", img)
}
