package api

import (
	"errors"
	"net/http"

	"traininglog/app/internal/service"

	"github.com/gin-gonic/gin"
)

// CoachHandler serves the coach review surface.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// AthleteOverviewResponse is one roster row DTO.
type AthleteOverviewResponse struct {
	Athlete        UserResponse            `json:"athlete"`
	PlannedCount   int                     `json:"plannedCount"`
	CompletedCount int                     `json:"completedCount"`
	Progress       service.AthleteProgress `json:"progress"`
}

// GetRoster returns the coach's athletes with their current-week progress.
func (h *CoachHandler) GetRoster(c *gin.Context) {
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	roster, err := h.coachService.GetRoster(c.Request.Context(), coachID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve roster")
		return
	}

	responses := make([]AthleteOverviewResponse, len(roster))
	for i, row := range roster {
		responses[i] = AthleteOverviewResponse{
			Athlete:        MapUserToResponse(&row.Athlete),
			PlannedCount:   row.PlannedCount,
			CompletedCount: row.CompletedCount,
			Progress:       row.Progress,
		}
	}
	c.JSON(http.StatusOK, responses)
}

// GetPendingAthletes lists athlete registrations awaiting approval.
func (h *CoachHandler) GetPendingAthletes(c *gin.Context) {
	pending, err := h.coachService.GetPendingAthletes(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve pending athletes")
		return
	}

	responses := make([]UserResponse, len(pending))
	for i, u := range pending {
		responses[i] = MapUserToResponse(&u)
	}
	c.JSON(http.StatusOK, responses)
}

// ApproveAthlete clears an athlete's pending flag and links them to the
// calling coach. The change takes effect on the athlete's next request; no
// re-login is needed.
func (h *CoachHandler) ApproveAthlete(c *gin.Context) {
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	athlete, err := h.coachService.ApproveAthlete(c.Request.Context(), coachID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAthleteNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrNotPending) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to approve athlete")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(athlete))
}

// RejectAthlete removes a pending registration.
func (h *CoachHandler) RejectAthlete(c *gin.Context) {
	err := h.coachService.RejectAthlete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAthleteNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrNotPending) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to reject athlete")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
