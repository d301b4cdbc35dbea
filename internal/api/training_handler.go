package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"traininglog/app/internal/cache"
	"traininglog/app/internal/domain"
	"traininglog/app/internal/service"
	"traininglog/app/internal/storage"

	"github.com/gin-gonic/gin"
)

const apiDateLayout = "2006-01-02"

// TrainingHandler serves the logged-training CRUD surface. All reads and
// writes go through the query/mutation layer so cache invalidation and
// fallback behaviour stay in one place.
type TrainingHandler struct {
	queries     *cache.Queries
	fileStorage storage.FileStorage // nil disables attachment routes
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(queries *cache.Queries, fileStorage storage.FileStorage) *TrainingHandler {
	return &TrainingHandler{queries: queries, fileStorage: fileStorage}
}

// --- DTOs ---

type CreateTrainingRequest struct {
	Type         domain.TrainingType  `json:"type" binding:"required,oneof=running cycling swimming strength yoga other"`
	Date         string               `json:"date" binding:"required"`
	Duration     int                  `json:"duration" binding:"min=0"`
	Distance     *float64             `json:"distance" binding:"omitempty,min=0"`
	Pace         string               `json:"pace"`
	Calories     *int                 `json:"calories" binding:"omitempty,min=0"`
	HeartRate    *domain.AvgMax       `json:"heartRate"`
	Cadence      *domain.AvgMax       `json:"cadence"`
	Altitude     *domain.MinMax       `json:"altitude"`
	Exercises    []domain.ExerciseSet `json:"exercises"`
	TrainerNotes string               `json:"trainerNotes"`
	TraineeNotes string               `json:"traineeNotes"`
	Rating       *int                 `json:"rating" binding:"omitempty,min=1,max=10"`
	Links        []string             `json:"links"`
}

type UpdateTrainingRequest struct {
	Type         *domain.TrainingType `json:"type" binding:"omitempty,oneof=running cycling swimming strength yoga other"`
	Date         *string              `json:"date"`
	Duration     *int                 `json:"duration" binding:"omitempty,min=0"`
	Distance     *float64             `json:"distance" binding:"omitempty,min=0"`
	Pace         *string              `json:"pace"`
	Calories     *int                 `json:"calories" binding:"omitempty,min=0"`
	HeartRate    *domain.AvgMax       `json:"heartRate"`
	Cadence      *domain.AvgMax       `json:"cadence"`
	Altitude     *domain.MinMax       `json:"altitude"`
	Exercises    []domain.ExerciseSet `json:"exercises"`
	TrainerNotes *string              `json:"trainerNotes"`
	TraineeNotes *string              `json:"traineeNotes"`
	Rating       *int                 `json:"rating" binding:"omitempty,min=1,max=10"`
	Links        []string             `json:"links"`
}

// TrainingResponse is the DTO for returning training details. Dates go out
// as plain calendar dates.
type TrainingResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	Type         domain.TrainingType  `json:"type"`
	Date         string               `json:"date"`
	Duration     int                  `json:"duration"`
	Distance     *float64             `json:"distance,omitempty"`
	Pace         string               `json:"pace,omitempty"`
	Calories     *int                 `json:"calories,omitempty"`
	HeartRate    *domain.AvgMax       `json:"heartRate,omitempty"`
	Cadence      *domain.AvgMax       `json:"cadence,omitempty"`
	Altitude     *domain.MinMax       `json:"altitude,omitempty"`
	Exercises    []domain.ExerciseSet `json:"exercises"`
	TrainerNotes string               `json:"trainerNotes,omitempty"`
	TraineeNotes string               `json:"traineeNotes,omitempty"`
	Rating       *int                 `json:"rating,omitempty"`
	Links        []string             `json:"links,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// MapTrainingToResponse converts a domain.TrainingRecord to its DTO.
func MapTrainingToResponse(r *domain.TrainingRecord) TrainingResponse {
	if r == nil {
		return TrainingResponse{}
	}
	return TrainingResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Type:         r.Type,
		Date:         r.Date.Format(apiDateLayout),
		Duration:     r.Duration,
		Distance:     r.Distance,
		Pace:         r.Pace,
		Calories:     r.Calories,
		HeartRate:    r.HeartRate,
		Cadence:      r.Cadence,
		Altitude:     r.Altitude,
		Exercises:    r.Exercises,
		TrainerNotes: r.TrainerNotes,
		TraineeNotes: r.TraineeNotes,
		Rating:       r.Rating,
		Links:        r.Links,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// MapTrainingsToResponse converts a slice of records to DTOs.
func MapTrainingsToResponse(records []domain.TrainingRecord) []TrainingResponse {
	responses := make([]TrainingResponse, len(records))
	for i, r := range records {
		responses[i] = MapTrainingToResponse(&r)
	}
	return responses
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(apiDateLayout, raw, time.UTC)
}

// --- Handler Methods ---

// ListTrainings returns the bounded training list. With page set, it serves
// the infinite-paginated list instead.
func (h *TrainingHandler) ListTrainings(c *gin.Context) {
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "limit must be an integer")
		return
	}

	if pageRaw := c.Query("page"); pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil || page < 1 {
			abortWithError(c, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		pageSize, err := intQuery(c, "pageSize", 20)
		if err != nil || pageSize < 1 {
			abortWithError(c, http.StatusBadRequest, "pageSize must be a positive integer")
			return
		}
		records, err := h.queries.TrainingsPage(c.Request.Context(), page, pageSize)
		if err != nil {
			abortWithError(c, http.StatusBadGateway, "Failed to retrieve trainings")
			return
		}
		c.JSON(http.StatusOK, MapTrainingsToResponse(records))
		return
	}

	records, err := h.queries.Trainings(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Failed to retrieve trainings")
		return
	}
	c.JSON(http.StatusOK, MapTrainingsToResponse(records))
}

// GetTraining returns one training by id.
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	record, err := h.queries.TrainingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve training")
		}
		return
	}
	c.JSON(http.StatusOK, MapTrainingToResponse(record))
}

// CreateTraining logs a new completed workout for the session user.
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	record, err := h.queries.CreateTraining(c.Request.Context(), domain.TrainingRecord{
		UserID:       userID,
		Type:         req.Type,
		Date:         date,
		Duration:     req.Duration,
		Distance:     req.Distance,
		Pace:         req.Pace,
		Calories:     req.Calories,
		HeartRate:    req.HeartRate,
		Cadence:      req.Cadence,
		Altitude:     req.Altitude,
		Exercises:    req.Exercises,
		TrainerNotes: req.TrainerNotes,
		TraineeNotes: req.TraineeNotes,
		Rating:       req.Rating,
		Links:        req.Links,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create training")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTrainingToResponse(record))
}

// UpdateTraining applies a partial update; absent fields stay unchanged.
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	var req UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	patch := domain.TrainingPatch{
		Type:         req.Type,
		Duration:     req.Duration,
		Distance:     req.Distance,
		Pace:         req.Pace,
		Calories:     req.Calories,
		HeartRate:    req.HeartRate,
		Cadence:      req.Cadence,
		Altitude:     req.Altitude,
		Exercises:    req.Exercises,
		TrainerNotes: req.TrainerNotes,
		TraineeNotes: req.TraineeNotes,
		Rating:       req.Rating,
		Links:        req.Links,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	record, err := h.queries.UpdateTraining(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update training")
		}
		return
	}

	c.JSON(http.StatusOK, MapTrainingToResponse(record))
}

// DeleteTraining removes a training. Deleting an already-deleted id yields
// 404, never a silent success.
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	trainingID := c.Param("id")
	err := h.queries.DeleteTraining(c.Request.Context(), trainingID)
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete training")
		}
		return
	}
	// Attachment cleanup is best effort; a failure only logs.
	if h.fileStorage != nil {
		if err := h.fileStorage.DeletePrefix(c.Request.Context(), storage.AttachmentPrefix(trainingID)); err != nil {
			log.Printf("WARN: Failed to delete attachments for training %s: %v", trainingID, err)
		}
	}
	c.Status(http.StatusNoContent)
}

// --- Attachments ---

type AttachmentUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type AttachmentURLResponse struct {
	UploadURL   string `json:"uploadUrl,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	ObjectKey   string `json:"objectKey"`
}

// PresignAttachmentUpload hands out a presigned PUT URL for attaching a file
// (route export, photo) to a training. The client uploads directly to the
// object store and then links the object via the training's links field.
func (h *TrainingHandler) PresignAttachmentUpload(c *gin.Context) {
	if h.fileStorage == nil {
		abortWithError(c, http.StatusNotImplemented, "Attachment storage is not configured")
		return
	}

	var req AttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainingID := c.Param("id")
	// Confirm the training exists before handing out a URL for it.
	if _, err := h.queries.TrainingByID(c.Request.Context(), trainingID); err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve training")
		}
		return
	}

	objectKey := storage.AttachmentKey(trainingID, req.Filename)
	uploadURL, err := h.fileStorage.GeneratePresignedUploadURL(c.Request.Context(), objectKey, req.ContentType, 0)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	c.JSON(http.StatusOK, AttachmentURLResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// PresignAttachmentDownload hands out a presigned GET URL for a previously
// uploaded attachment.
func (h *TrainingHandler) PresignAttachmentDownload(c *gin.Context) {
	if h.fileStorage == nil {
		abortWithError(c, http.StatusNotImplemented, "Attachment storage is not configured")
		return
	}

	trainingID := c.Param("id")
	filename := c.Param("filename")
	if filename == "" {
		abortWithError(c, http.StatusBadRequest, "filename is required")
		return
	}

	objectKey := storage.AttachmentKey(trainingID, filename)
	downloadURL, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), objectKey, 0)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		return
	}

	c.JSON(http.StatusOK, AttachmentURLResponse{DownloadURL: downloadURL, ObjectKey: objectKey})
}

// intQuery parses an optional integer query parameter.
func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
