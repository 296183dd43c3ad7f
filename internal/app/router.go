package app

import (
	"github.com/prafuldivani/quiz-app/docs"
	"github.com/prafuldivani/quiz-app/internal/config"
	"github.com/prafuldivani/quiz-app/internal/middleware"
	"github.com/prafuldivani/quiz-app/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Anonymous surface.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		quizzes := public.Group("/public/quizzes")
		{
			quizzes.GET("", c.public.ListQuizzes)
			quizzes.GET("/:id", c.public.GetQuiz)
			quizzes.POST("/:id/submit", middleware.SubmitThrottle(a.submitLimiter), c.public.Submit)
			quizzes.GET("/:id/results/:attemptId", c.public.GetResult)
		}
	}

	// Authenticated admin surface. Quiz-scoped handlers run the ownership
	// guard before anything else.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		quizzes := authGroup.Group("/quizzes")
		{
			quizzes.POST("", c.quiz.CreateQuiz)
			quizzes.GET("", c.quiz.ListQuizzes)
			quizzes.GET("/:id", c.quiz.GetQuiz)
			quizzes.PUT("/:id", c.quiz.UpdateQuiz)
			quizzes.DELETE("/:id", c.quiz.DeleteQuiz)
			quizzes.GET("/:id/attempts", c.quiz.ListAttempts)
			quizzes.POST("/:id/cover", c.quiz.UploadCover)
		}
	}
}
