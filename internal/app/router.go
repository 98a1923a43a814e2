package app

import (
	"esports_coach_backend/docs"
	"esports_coach_backend/internal/config"
	"esports_coach_backend/internal/middleware"
	"esports_coach_backend/internal/model"

	"esports_coach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerPlayerRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerPlayerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.GET("/user/leaderboard", c.user.Leaderboard)
	rg.GET("/user/xp-audit", c.training.XPAudit)

	// 训练计划
	rg.POST("/trainings", c.training.CreatePlan)
	rg.GET("/trainings", c.training.GetPlans)
	rg.GET("/trainings/:id", c.training.GetPlan)
	rg.DELETE("/trainings/:id", c.training.DeletePlan)
	rg.GET("/trainings/:id/weeks/:week/days/:day", c.training.GetDay)
	rg.POST("/trainings/:id/exercises/:exerciseId/toggle", c.training.ToggleExercise)
	rg.PATCH("/trainings/:id/rank", c.training.UpdateRank)

	// 录像分析
	rg.POST("/analyses", c.analysis.Upload)
	rg.GET("/analyses", c.analysis.GetAnalyses)
	rg.GET("/analyses/:id", c.analysis.GetAnalysis)
	rg.DELETE("/analyses/:id", c.analysis.DeleteAnalysis)
	rg.GET("/analyses/:id/messages", c.analysis.GetMessages)
	rg.POST("/analyses/:id/chat", c.analysis.Chat)

	// 成就与打卡
	rg.GET("/achievements", c.achievement.GetAchievements)
	rg.POST("/achievements/checkin", c.achievement.Checkin)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users/:id/xp-audit", c.training.AdminXPAudit)
	}
}
