package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"traininglog/app/internal/cache"
	"traininglog/app/internal/domain"
	"traininglog/app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves planned-training CRUD.
type PlanHandler struct {
	queries *cache.Queries
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(queries *cache.Queries) *PlanHandler {
	return &PlanHandler{queries: queries}
}

type CreatePlannedRequest struct {
	Type            domain.TrainingType `json:"type" binding:"required,oneof=running cycling swimming strength yoga other"`
	PlannedDate     string              `json:"plannedDate" binding:"required"`
	PlannedDuration int                 `json:"plannedDuration" binding:"min=0"`
	PlannedDistance *float64            `json:"plannedDistance" binding:"omitempty,min=0"`
	Category        domain.RunCategory  `json:"category" binding:"omitempty,oneof=aerobic intervals tempo hills"`
	Notes           string              `json:"notes"`
}

type UpdatePlannedRequest struct {
	Type                *domain.TrainingType `json:"type" binding:"omitempty,oneof=running cycling swimming strength yoga other"`
	PlannedDate         *string              `json:"plannedDate"`
	PlannedDuration     *int                 `json:"plannedDuration" binding:"omitempty,min=0"`
	PlannedDistance     *float64             `json:"plannedDistance" binding:"omitempty,min=0"`
	Category            *domain.RunCategory  `json:"category" binding:"omitempty,oneof=aerobic intervals tempo hills"`
	Notes               *string              `json:"notes"`
	Completed           *bool                `json:"completed"`
	CompletedTrainingID *string              `json:"completedTrainingId"`
}

type PlannedResponse struct {
	ID                  string              `json:"id"`
	UserID              string              `json:"userId"`
	Type                domain.TrainingType `json:"type"`
	PlannedDate         string              `json:"plannedDate"`
	PlannedDuration     int                 `json:"plannedDuration"`
	PlannedDistance     *float64            `json:"plannedDistance,omitempty"`
	Category            domain.RunCategory  `json:"category,omitempty"`
	Notes               string              `json:"notes,omitempty"`
	Completed           bool                `json:"completed"`
	CompletedTrainingID string              `json:"completedTrainingId,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// MapPlannedToResponse converts a domain.PlannedTraining to its DTO.
func MapPlannedToResponse(p *domain.PlannedTraining) PlannedResponse {
	if p == nil {
		return PlannedResponse{}
	}
	return PlannedResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		Type:                p.Type,
		PlannedDate:         p.PlannedDate.Format(apiDateLayout),
		PlannedDuration:     p.PlannedDuration,
		PlannedDistance:     p.PlannedDistance,
		Category:            p.Category,
		Notes:               p.Notes,
		Completed:           p.Completed,
		CompletedTrainingID: p.CompletedTrainingID,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ListPlanned returns every planned training for the session user.
func (h *PlanHandler) ListPlanned(c *gin.Context) {
	plans, err := h.queries.PlannedTrainings(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to retrieve planned trainings")
		return
	}
	responses := make([]PlannedResponse, len(plans))
	for i, p := range plans {
		responses[i] = MapPlannedToResponse(&p)
	}
	c.JSON(http.StatusOK, responses)
}

// CreatePlanned schedules a future workout.
func (h *PlanHandler) CreatePlanned(c *gin.Context) {
	var req CreatePlannedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	date, err := parseDate(req.PlannedDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "plannedDate must be formatted YYYY-MM-DD")
		return
	}

	plan, err := h.queries.CreatePlanned(c.Request.Context(), domain.PlannedTraining{
		UserID:          userID,
		Type:            req.Type,
		PlannedDate:     date,
		PlannedDuration: req.PlannedDuration,
		PlannedDistance: req.PlannedDistance,
		Category:        req.Category,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create planned training")
		}
		return
	}

	c.JSON(http.StatusCreated, MapPlannedToResponse(plan))
}

// UpdatePlanned applies a partial update, including rescheduling and marking
// completion.
func (h *PlanHandler) UpdatePlanned(c *gin.Context) {
	var req UpdatePlannedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	patch := domain.PlannedPatch{
		Type:                req.Type,
		PlannedDuration:     req.PlannedDuration,
		PlannedDistance:     req.PlannedDistance,
		Category:            req.Category,
		Notes:               req.Notes,
		Completed:           req.Completed,
		CompletedTrainingID: req.CompletedTrainingID,
	}
	if req.PlannedDate != nil {
		date, err := parseDate(*req.PlannedDate)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "plannedDate must be formatted YYYY-MM-DD")
			return
		}
		patch.PlannedDate = &date
	}

	plan, err := h.queries.UpdatePlanned(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update planned training")
		}
		return
	}

	c.JSON(http.StatusOK, MapPlannedToResponse(plan))
}

// DeletePlanned removes a planned training.
func (h *PlanHandler) DeletePlanned(c *gin.Context) {
	err := h.queries.DeletePlanned(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete planned training")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
