package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/http/response"
	"github.com/christianrafael21/hoopscout/internal/services"
)

type EvaluationHandler struct {
	evaluations services.EvaluationService
	comparison  services.ComparisonService
}

func NewEvaluationHandler(evaluations services.EvaluationService, comparison services.ComparisonService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations, comparison: comparison}
}

type createEvaluationRequest struct {
	PhysicalMeasurementID  string     `json:"physical_measurement_id" binding:"required,uuid"`
	TechnicalMeasurementID string     `json:"technical_measurement_id" binding:"required,uuid"`
	ReferenceProfileID     *string    `json:"reference_profile_id" binding:"omitempty,uuid"`
	AthleteID              string     `json:"athlete_id" binding:"required,uuid"`
	EvaluatedAt            *time.Time `json:"evaluated_at"`
}

// Ids are checked by the aggregate after ownership, not at bind time.
type updateEvaluationRequest struct {
	PhysicalMeasurementID  *string    `json:"physical_measurement_id"`
	TechnicalMeasurementID *string    `json:"technical_measurement_id"`
	ReferenceProfileID     *string    `json:"reference_profile_id"`
	EvaluatedAt            *time.Time `json:"evaluated_at"`
}

// POST /evaluations
// The coach is the authenticated actor.
func (h *EvaluationHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req createEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	profileID, err := parseOptionalUUID(req.ReferenceProfileID)
	if err != nil {
		response.RespondBindError(c, err)
		return
	}
	view, err := h.evaluations.Create(c.Request.Context(), domainagg.CreateEvaluationInput{
		PhysicalMeasurementID:  uuid.MustParse(req.PhysicalMeasurementID),
		TechnicalMeasurementID: uuid.MustParse(req.TechnicalMeasurementID),
		ReferenceProfileID:     profileID,
		AthleteID:              uuid.MustParse(req.AthleteID),
		CoachID:                actor.ID,
		EvaluatedAt:            req.EvaluatedAt,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	setVersionETag(c, view.Version)
	response.RespondCreated(c, gin.H{"evaluation": view})
}

// GET /evaluations/:id
func (h *EvaluationHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.evaluations.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	setVersionETag(c, view.Version)
	response.RespondOK(c, gin.H{"evaluation": view})
}

// GET /evaluations/:id/comparison
func (h *EvaluationHandler) Comparison(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	cmp, err := h.comparison.Compare(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"comparison": cmp})
}

// PUT /evaluations/:id
// If-Match carries the version the caller last read; a stale version is a conflict.
// A caller without an ownership link gets 403 whatever the body holds.
func (h *EvaluationHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req updateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	in := domainagg.UpdateEvaluationInput{
		EvaluationID:           id,
		CoachID:                actor.ID,
		EvaluatedAt:            req.EvaluatedAt,
		ExpectedVersion:        ifMatchVersion(c),
		PhysicalMeasurementID:  updateReference(req.PhysicalMeasurementID),
		TechnicalMeasurementID: updateReference(req.TechnicalMeasurementID),
		ReferenceProfileID:     updateReference(req.ReferenceProfileID),
	}

	view, err := h.evaluations.Update(c.Request.Context(), in)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	setVersionETag(c, view.Version)
	response.RespondOK(c, gin.H{"evaluation": view})
}

// DELETE /evaluations/:id
func (h *EvaluationHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.evaluations.Remove(c.Request.Context(), domainagg.RemoveEvaluationInput{EvaluationID: id, CoachID: actor.ID}); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
