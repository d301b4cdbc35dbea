package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"traininglog/app/internal/domain"
	"traininglog/app/internal/service"

	"github.com/gin-gonic/gin"
)

// WeekPlanHandler serves the weekly-plan grid and its derived summaries.
type WeekPlanHandler struct {
	weekPlanService service.WeekPlanService
}

// NewWeekPlanHandler creates a new WeekPlanHandler.
func NewWeekPlanHandler(weekPlanService service.WeekPlanService) *WeekPlanHandler {
	return &WeekPlanHandler{weekPlanService: weekPlanService}
}

type PutDayRequest struct {
	Day           int                 `json:"day" binding:"required,min=1,max=7"`
	ActivityType  domain.ActivityType `json:"activityType" binding:"required,oneof=Running Cycling Swimming Strength Yoga Cardio Mobility Rest"`
	Duration      *int                `json:"duration" binding:"omitempty,min=0"`
	Distance      *float64            `json:"distance" binding:"omitempty,min=0"`
	Intensity     domain.Intensity    `json:"intensity" binding:"omitempty,oneof=Low Medium High"`
	HeartRateZone string              `json:"heartRateZone"`
	RPE           *int                `json:"rpe" binding:"omitempty,min=1,max=10"`
	Notes         string              `json:"notes"`
	Status        domain.DayStatus    `json:"status" binding:"omitempty,oneof=planned completed missed"`
}

// weekOffset parses the offset query parameter. 0 means the current week,
// negative values past weeks. A non-integer value is the only rejection.
func weekOffset(c *gin.Context) (int, bool) {
	raw := c.Query("offset")
	if raw == "" {
		return 0, true
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "offset must be an integer")
		return 0, false
	}
	return offset, true
}

// dayToWeekday converts the 1..7 grid position (Monday-first) back to
// time.Weekday.
func dayToWeekday(day int) time.Weekday {
	if day == 7 {
		return time.Sunday
	}
	return time.Weekday(day)
}

// GetWeek returns the grid slots for the week selected by offset.
func (h *WeekPlanHandler) GetWeek(c *gin.Context) {
	offset, ok := weekOffset(c)
	if !ok {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	slots, err := h.weekPlanService.GetWeek(c.Request.Context(), userID, offset)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve week plan")
		return
	}
	if slots == nil {
		slots = []domain.DayTraining{}
	}
	c.JSON(http.StatusOK, slots)
}

// PutDay creates or replaces the slot for one weekday of the selected week.
func (h *WeekPlanHandler) PutDay(c *gin.Context) {
	offset, ok := weekOffset(c)
	if !ok {
		return
	}

	var req PutDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	slot, err := h.weekPlanService.PutDay(c.Request.Context(), userID, offset, domain.DayTraining{
		Day:           dayToWeekday(req.Day),
		ActivityType:  req.ActivityType,
		Duration:      req.Duration,
		Distance:      req.Distance,
		Intensity:     req.Intensity,
		HeartRateZone: req.HeartRateZone,
		RPE:           req.RPE,
		Notes:         req.Notes,
		Status:        req.Status,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save day plan")
		}
		return
	}

	c.JSON(http.StatusOK, slot)
}

// ClearDay removes the slot for one weekday of the selected week.
func (h *WeekPlanHandler) ClearDay(c *gin.Context) {
	offset, ok := weekOffset(c)
	if !ok {
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 || day > 7 {
		abortWithError(c, http.StatusBadRequest, "day must be an integer between 1 and 7")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	err = h.weekPlanService.ClearDay(c.Request.Context(), userID, offset, day)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to clear day plan")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSummary returns the derived weekly statistics and the week-over-week
// trend for the selected week.
func (h *WeekPlanHandler) GetSummary(c *gin.Context) {
	offset, ok := weekOffset(c)
	if !ok {
		return
	}
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	summary, err := h.weekPlanService.GetSummary(c.Request.Context(), userID, offset)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute week summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
