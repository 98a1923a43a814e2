package controller

import (
	"errors"
	"esports_coach_backend/internal/genai"
	"esports_coach_backend/internal/model"
	"esports_coach_backend/internal/service"
	"esports_coach_backend/internal/util"
	"esports_coach_backend/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrainingController 处理训练计划的生成、查询和练习打卡
type TrainingController struct {
	TrainingService *service.TrainingService
}

func NewTrainingController(trainingService *service.TrainingService) *TrainingController {
	return &TrainingController{TrainingService: trainingService}
}

// swagger:model CreatePlanRequest
type CreatePlanRequest struct {
	Game        string               `json:"game" binding:"required"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Answers     model.ProfileAnswers `json:"answers" binding:"required"`
}

// CreatePlan godoc
// @Summary 生成训练计划
// @Description 根据向导问卷调用AI生成四周训练计划并持久化
// @Tags 训练
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreatePlanRequest true "游戏与问卷答案"
// @Success 201 {object} util.Response{data=model.Training} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 502 {object} util.Response "AI响应无法解析"
// @Failure 503 {object} util.Response "AI容量不足"
// @Router /api/trainings [post]
func (c *TrainingController) CreatePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	training, err := c.TrainingService.CreatePlan(ctx, claims.UserID, req.Game, req.Title, req.Description, req.Answers, func(msg string) {
		logger.Log.Info("plan generation status", zap.Uint("userId", claims.UserID), zap.String("status", msg))
	})
	if err != nil {
		switch {
		case service.IsTerminalCapacityError(err):
			util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, genai.ErrInvalidPlanResponse):
			util.Error(ctx, http.StatusBadGateway, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, training)
}

// GetPlans godoc
// @Summary 训练计划列表
// @Description 当前用户的全部训练计划
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Training} "成功"
// @Router /api/trainings [get]
func (c *TrainingController) GetPlans(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	trainings, err := c.TrainingService.GetPlans(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, trainings)
}

// GetPlan godoc
// @Summary 训练计划详情
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Success 200 {object} util.Response{data=model.Training} "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/trainings/{id} [get]
func (c *TrainingController) GetPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	training, err := c.TrainingService.GetPlan(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.writeTrainingError(ctx, err)
		return
	}

	util.Success(ctx, training)
}

// GetDay godoc
// @Summary 某周某天的训练安排
// @Description 展开指定天的练习列表与当日完成度
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Param   week path int true "周序号（从1开始）"
// @Param   day path int true "天序号（从1开始）"
// @Success 200 {object} util.Response{data=service.DayView} "成功"
// @Failure 400 {object} util.Response "周/天序号不合法"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/trainings/{id}/weeks/{week}/days/{day} [get]
func (c *TrainingController) GetDay(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	week, err := strconv.Atoi(ctx.Param("week"))
	if err != nil || week < 1 {
		util.BadRequest(ctx, "无效的周序号")
		return
	}
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil || day < 1 {
		util.BadRequest(ctx, "无效的天序号")
		return
	}

	view, err := c.TrainingService.GetDay(ctx.Param("id"), claims.UserID, week, day)
	if err != nil {
		c.writeTrainingError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// ToggleExercise godoc
// @Summary 切换练习完成状态
// @Description 标记或撤销一个练习的完成，同步更新计划进度与账号XP
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Param   exerciseId path string true "练习ID（w周-d天-e序号）"
// @Success 200 {object} util.Response{data=service.ToggleResult} "成功"
// @Failure 400 {object} util.Response "练习不属于该计划"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/trainings/{id}/exercises/{exerciseId}/toggle [post]
func (c *TrainingController) ToggleExercise(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.TrainingService.ToggleExercise(ctx, ctx.Param("id"), claims.UserID, ctx.Param("exerciseId"))
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotInPlan) {
			util.BadRequest(ctx, err.Error())
			return
		}
		c.writeTrainingError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// swagger:model UpdateRankRequest
type UpdateRankRequest struct {
	Rank string `json:"rank" binding:"required"`
}

// UpdateRank godoc
// @Summary 更新段位
// @Description 更新计划关联的玩家段位（写入问卷子文档）
// @Tags 训练
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Param   body body UpdateRankRequest true "新段位"
// @Success 200 {object} util.Response{data=model.Training} "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/trainings/{id}/rank [patch]
func (c *TrainingController) UpdateRank(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateRankRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	training, err := c.TrainingService.UpdateRank(ctx.Param("id"), claims.UserID, req.Rank)
	if err != nil {
		c.writeTrainingError(ctx, err)
		return
	}

	util.Success(ctx, training)
}

// DeletePlan godoc
// @Summary 删除训练计划
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "计划ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/trainings/{id} [delete]
func (c *TrainingController) DeletePlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.TrainingService.DeletePlan(ctx.Param("id"), claims.UserID); err != nil {
		c.writeTrainingError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// XPAudit godoc
// @Summary XP对账
// @Description 比较账号级累计XP与所有计划内XP之和，报告漂移
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.XPAudit} "成功"
// @Router /api/user/xp-audit [get]
func (c *TrainingController) XPAudit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	audit, err := c.TrainingService.ReconcileXP(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, audit)
}

// AdminXPAudit godoc
// @Summary 指定用户的XP对账（管理员）
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=service.XPAudit} "成功"
// @Failure 400 {object} util.Response "无效的用户ID"
// @Failure 403 {object} util.Response "需要管理员权限"
// @Router /api/admin/users/{id}/xp-audit [get]
func (c *TrainingController) AdminXPAudit(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	audit, err := c.TrainingService.ReconcileXP(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, audit)
}

func (c *TrainingController) writeTrainingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTrainingNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
