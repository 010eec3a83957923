package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/christianrafael21/hoopscout/internal/http/response"
	"github.com/christianrafael21/hoopscout/internal/services"
)

type MeasurementHandler struct {
	measurements services.MeasurementService
}

func NewMeasurementHandler(measurements services.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurements: measurements}
}

type physicalRequest struct {
	Age    *int     `json:"age" binding:"required"`
	Height *float64 `json:"height" binding:"required"`
	Weight *float64 `json:"weight" binding:"required"`
}

type physicalPatchRequest struct {
	Age    *int     `json:"age"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

type technicalRequest struct {
	FreeThrowPct  *float64 `json:"free_throw_pct" binding:"required"`
	ThreePointPct *float64 `json:"three_point_pct" binding:"required"`
	TwoPointPct   *float64 `json:"two_point_pct" binding:"required"`
	AssistsPct    *float64 `json:"assists_pct" binding:"required"`
}

type technicalPatchRequest struct {
	FreeThrowPct  *float64 `json:"free_throw_pct"`
	ThreePointPct *float64 `json:"three_point_pct"`
	TwoPointPct   *float64 `json:"two_point_pct"`
	AssistsPct    *float64 `json:"assists_pct"`
}

// POST /physical-measurements
func (h *MeasurementHandler) CreatePhysical(c *gin.Context) {
	var req physicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	row, err := h.measurements.CreatePhysical(c.Request.Context(), services.PhysicalInput{
		Age:    *req.Age,
		Height: *req.Height,
		Weight: *req.Weight,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"physical_measurement": row})
}

// GET /physical-measurements/:id
func (h *MeasurementHandler) GetPhysical(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.measurements.GetPhysical(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"physical_measurement": row})
}

// PUT /physical-measurements/:id
func (h *MeasurementHandler) UpdatePhysical(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req physicalPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	row, err := h.measurements.UpdatePhysical(c.Request.Context(), id, services.PhysicalPatch{
		Age:    req.Age,
		Height: req.Height,
		Weight: req.Weight,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"physical_measurement": row})
}

// DELETE /physical-measurements/:id
func (h *MeasurementHandler) DeletePhysical(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.measurements.DeletePhysical(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /technical-measurements
func (h *MeasurementHandler) CreateTechnical(c *gin.Context) {
	var req technicalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	row, err := h.measurements.CreateTechnical(c.Request.Context(), services.TechnicalInput{
		FreeThrowPct:  *req.FreeThrowPct,
		ThreePointPct: *req.ThreePointPct,
		TwoPointPct:   *req.TwoPointPct,
		AssistsPct:    *req.AssistsPct,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"technical_measurement": row})
}

// GET /technical-measurements/:id
func (h *MeasurementHandler) GetTechnical(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.measurements.GetTechnical(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"technical_measurement": row})
}

// PUT /technical-measurements/:id
func (h *MeasurementHandler) UpdateTechnical(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req technicalPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	row, err := h.measurements.UpdateTechnical(c.Request.Context(), id, services.TechnicalPatch{
		FreeThrowPct:  req.FreeThrowPct,
		ThreePointPct: req.ThreePointPct,
		TwoPointPct:   req.TwoPointPct,
		AssistsPct:    req.AssistsPct,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"technical_measurement": row})
}

// DELETE /technical-measurements/:id
func (h *MeasurementHandler) DeleteTechnical(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.measurements.DeleteTechnical(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
