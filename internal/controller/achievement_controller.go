package controller

import (
	"esports_coach_backend/internal/service"
	"esports_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AchievementController 处理成就目录和训练打卡
type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// GetAchievements godoc
// @Summary 成就列表
// @Description 全部成就及当前用户的进度、解锁状态和已达到的段位档
// @Tags 成就
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AchievementView} "成功"
// @Router /api/achievements [get]
func (c *AchievementController) GetAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.AchievementService.ListWithProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// Checkin godoc
// @Summary 训练打卡
// @Description 当日打卡，同一天重复调用幂等；连续天数驱动打卡类成就
// @Tags 成就
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Checkin} "成功"
// @Router /api/achievements/checkin [post]
func (c *AchievementController) Checkin(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	checkin, err := c.AchievementService.Checkin(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, checkin)
}
