package controller

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every resource under /api. Health and the index stay
// at the root.
func RegisterRoutes(
	router *gin.Engine,
	questions *QuestionController,
	tags *TagController,
	history *HistoryController,
	health *HealthController,
) {
	router.GET("/", health.Index)
	router.GET("/health", health.Health)

	api := router.Group("/api")
	api.GET("/health", health.Health)

	questionGroup := api.Group("/questions")
	{
		questionGroup.GET("", questions.ListQuestions)
		questionGroup.POST("", questions.CreateQuestion)
		questionGroup.GET("/stats", questions.GetStats)
		questionGroup.GET("/export", questions.ExportQuestions)
		questionGroup.POST("/import", questions.ImportQuestions)
		questionGroup.GET("/:id", questions.GetQuestion)
		questionGroup.PUT("/:id", questions.UpdateQuestion)
		questionGroup.DELETE("/:id", questions.DeleteQuestion)
	}

	tagGroup := api.Group("/tags")
	{
		tagGroup.GET("", tags.ListTags)
		tagGroup.POST("", tags.CreateTag)
		tagGroup.PUT("/:id", tags.UpdateTag)
		tagGroup.DELETE("/:id", tags.DeleteTag)
	}

	historyGroup := api.Group("/history")
	{
		historyGroup.GET("", history.ListHistories)
		historyGroup.POST("", history.CreateHistory)
		historyGroup.GET("/stats", history.GetScoreStats)
		historyGroup.POST("/generate-test", history.GenerateTest)
		historyGroup.POST("/submit-test", history.SubmitTest)
		historyGroup.GET("/:id", history.GetHistory)
		historyGroup.DELETE("/:id", history.DeleteHistory)
	}
}
