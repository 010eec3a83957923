package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/christianrafael21/hoopscout/internal/http/response"
	"github.com/christianrafael21/hoopscout/internal/services"
)

type ReferenceProfileHandler struct {
	profiles services.ReferenceProfileService
}

func NewReferenceProfileHandler(profiles services.ReferenceProfileService) *ReferenceProfileHandler {
	return &ReferenceProfileHandler{profiles: profiles}
}

type referenceProfileRequest struct {
	AgeCategory        *int     `json:"age_category" binding:"required"`
	IdealWeight        *float64 `json:"ideal_weight" binding:"required"`
	IdealHeight        *float64 `json:"ideal_height" binding:"required"`
	IdealFreeThrowPct  *float64 `json:"ideal_free_throw_pct" binding:"required"`
	IdealThreePointPct *float64 `json:"ideal_three_point_pct" binding:"required"`
	IdealTwoPointPct   *float64 `json:"ideal_two_point_pct" binding:"required"`
	IdealAssistPct     *float64 `json:"ideal_assist_pct" binding:"required"`
}

type referenceProfilePatchRequest struct {
	AgeCategory        *int     `json:"age_category"`
	IdealWeight        *float64 `json:"ideal_weight"`
	IdealHeight        *float64 `json:"ideal_height"`
	IdealFreeThrowPct  *float64 `json:"ideal_free_throw_pct"`
	IdealThreePointPct *float64 `json:"ideal_three_point_pct"`
	IdealTwoPointPct   *float64 `json:"ideal_two_point_pct"`
	IdealAssistPct     *float64 `json:"ideal_assist_pct"`
}

// POST /reference-profiles
func (h *ReferenceProfileHandler) Create(c *gin.Context) {
	var req referenceProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	row, err := h.profiles.Create(c.Request.Context(), services.ReferenceProfileInput{
		AgeCategory:        *req.AgeCategory,
		IdealWeight:        *req.IdealWeight,
		IdealHeight:        *req.IdealHeight,
		IdealFreeThrowPct:  *req.IdealFreeThrowPct,
		IdealThreePointPct: *req.IdealThreePointPct,
		IdealTwoPointPct:   *req.IdealTwoPointPct,
		IdealAssistPct:     *req.IdealAssistPct,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"reference_profile": row})
}

// GET /reference-profiles
func (h *ReferenceProfileHandler) List(c *gin.Context) {
	rows, err := h.profiles.List(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reference_profiles": rows})
}

// GET /reference-profiles/:id
func (h *ReferenceProfileHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.profiles.GetByID(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reference_profile": row})
}

// GET /reference-profiles/category/:age
func (h *ReferenceProfileHandler) GetByAgeCategory(c *gin.Context) {
	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		response.AbortError(c, http.StatusBadRequest, "validation", "age category must be an integer")
		return
	}
	row, err := h.profiles.GetByAgeCategory(c.Request.Context(), age)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reference_profile": row})
}

// PUT /reference-profiles/:id
func (h *ReferenceProfileHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req referenceProfilePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(c, err)
		return
	}
	row, err := h.profiles.Update(c.Request.Context(), id, services.ReferenceProfilePatch{
		AgeCategory:        req.AgeCategory,
		IdealWeight:        req.IdealWeight,
		IdealHeight:        req.IdealHeight,
		IdealFreeThrowPct:  req.IdealFreeThrowPct,
		IdealThreePointPct: req.IdealThreePointPct,
		IdealTwoPointPct:   req.IdealTwoPointPct,
		IdealAssistPct:     req.IdealAssistPct,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reference_profile": row})
}

// DELETE /reference-profiles/:id
func (h *ReferenceProfileHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), id); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
