package api

import (
	"net/http"

	"traininglog/app/internal/cache"
	"traininglog/app/internal/domain"
	"traininglog/app/internal/service"
	"traininglog/app/internal/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every HTTP route. The auth group is public; everything
// else requires a valid token, and athlete data routes additionally require
// the registration to be approved. Coach routes are gated on the coach role.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	queries *cache.Queries,
	weekPlanService service.WeekPlanService,
	coachService service.CoachService,
	fileStorage storage.FileStorage,
) {

	authHandler := NewAuthHandler(authService)
	trainingHandler := NewTrainingHandler(queries, fileStorage)
	planHandler := NewPlanHandler(queries)
	weekPlanHandler := NewWeekPlanHandler(weekPlanService)
	coachHandler := NewCoachHandler(coachService)

	authMiddleware := AuthMiddleware(jwtSecret)
	pendingGate := PendingGateMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// Profile routes stay reachable while pending so the athlete can see
		// their own approval state.
		sessionGroup := protected.Group("/auth")
		{
			sessionGroup.GET("/me", authHandler.Me)
			sessionGroup.PUT("/profile", authHandler.UpdateProfile)
		}

		data := protected.Group("")
		data.Use(pendingGate)
		{
			trainingGroup := data.Group("/trainings")
			{
				trainingGroup.GET("", trainingHandler.ListTrainings)
				trainingGroup.POST("", trainingHandler.CreateTraining)
				trainingGroup.GET("/:id", trainingHandler.GetTraining)
				trainingGroup.PUT("/:id", trainingHandler.UpdateTraining)
				trainingGroup.DELETE("/:id", trainingHandler.DeleteTraining)

				trainingGroup.POST("/:id/attachments", trainingHandler.PresignAttachmentUpload)
				trainingGroup.GET("/:id/attachments/:filename", trainingHandler.PresignAttachmentDownload)
			}

			plannedGroup := data.Group("/planned-trainings")
			{
				plannedGroup.GET("", planHandler.ListPlanned)
				plannedGroup.POST("", planHandler.CreatePlanned)
				plannedGroup.PUT("/:id", planHandler.UpdatePlanned)
				plannedGroup.DELETE("/:id", planHandler.DeletePlanned)
			}

			weekPlanGroup := data.Group("/week-plan")
			{
				weekPlanGroup.GET("", weekPlanHandler.GetWeek)
				weekPlanGroup.PUT("/days", weekPlanHandler.PutDay)
				weekPlanGroup.DELETE("/days/:day", weekPlanHandler.ClearDay)
				weekPlanGroup.GET("/summary", weekPlanHandler.GetSummary)
			}

			coachGroup := data.Group("/coach")
			coachGroup.Use(RoleMiddleware(domain.RoleCoach))
			{
				coachGroup.GET("/athletes", coachHandler.GetRoster)
				coachGroup.GET("/pending", coachHandler.GetPendingAthletes)
				coachGroup.POST("/pending/:id/approve", coachHandler.ApproveAthlete)
				coachGroup.POST("/pending/:id/reject", coachHandler.RejectAthlete)
			}
		}
	}
}
