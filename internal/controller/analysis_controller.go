package controller

import (
	"errors"
	"esports_coach_backend/internal/genai"
	"esports_coach_backend/internal/service"
	"esports_coach_backend/internal/util"
	"esports_coach_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalysisController 处理录像上传、AI分析和复盘对话
type AnalysisController struct {
	AnalysisService *service.AnalysisService
}

func NewAnalysisController(analysisService *service.AnalysisService) *AnalysisController {
	return &AnalysisController{AnalysisService: analysisService}
}

// swagger:model UploadAnalysisRequest
type UploadAnalysisRequest struct {
	Game    string `form:"game" binding:"required"`
	Title   string `form:"title"`
	Context string `form:"context"`
}

// Upload godoc
// @Summary 上传录像并分析
// @Description 上传对局录像，存储后交给AI生成结构化分析报告
// @Tags 分析
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   game formData string true "游戏名称"
// @Param   title formData string false "录像标题"
// @Param   context formData string false "补充说明（英雄/地图/段位等）"
// @Param   video formData file true "录像文件（mp4/webm/mov）"
// @Success 201 {object} util.Response{data=model.Analysis} "创建成功"
// @Failure 400 {object} util.Response "文件类型或大小不合法"
// @Failure 502 {object} util.Response "AI返回无法解析"
// @Failure 503 {object} util.Response "AI容量不足"
// @Router /api/analyses [post]
func (c *AnalysisController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UploadAnalysisRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fh, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "缺少录像文件")
		return
	}

	if err := c.AnalysisService.ValidateVideo(fh.Filename, fh.Size); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := fh.Open()
	if err != nil {
		util.BadRequest(ctx, "无法读取录像文件")
		return
	}
	defer file.Close()

	analysis, err := c.AnalysisService.UploadAndAnalyze(ctx, claims.UserID, file, fh.Filename, fh.Size, req.Game, req.Title, req.Context, func(msg string) {
		logger.Log.Info("analysis status", zap.Uint("userId", claims.UserID), zap.String("status", msg))
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidVideoType), errors.Is(err, util.ErrVideoTooLarge):
			util.BadRequest(ctx, err.Error())
		case service.IsTerminalCapacityError(err):
			util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, genai.ErrMalformedResponse):
			util.Error(ctx, http.StatusBadGateway, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, analysis)
}

// GetAnalyses godoc
// @Summary 分析列表
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Analysis} "成功"
// @Router /api/analyses [get]
func (c *AnalysisController) GetAnalyses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	analyses, err := c.AnalysisService.GetAnalyses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, analyses)
}

// GetAnalysis godoc
// @Summary 分析详情
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "分析ID"
// @Success 200 {object} util.Response{data=model.Analysis} "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "分析不存在"
// @Router /api/analyses/{id} [get]
func (c *AnalysisController) GetAnalysis(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	analysis, err := c.AnalysisService.GetAnalysis(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.writeAnalysisError(ctx, err)
		return
	}

	util.Success(ctx, analysis)
}

// DeleteAnalysis godoc
// @Summary 删除分析
// @Description 删除分析记录及其对话历史
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "分析ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "分析不存在"
// @Router /api/analyses/{id} [delete]
func (c *AnalysisController) DeleteAnalysis(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AnalysisService.DeleteAnalysis(ctx.Param("id"), claims.UserID); err != nil {
		c.writeAnalysisError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// GetMessages godoc
// @Summary 复盘对话历史
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "分析ID"
// @Success 200 {object} util.Response{data=[]model.ChatMessage} "成功"
// @Failure 404 {object} util.Response "分析不存在"
// @Router /api/analyses/{id}/messages [get]
func (c *AnalysisController) GetMessages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	messages, err := c.AnalysisService.GetMessages(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.writeAnalysisError(ctx, err)
		return
	}

	util.Success(ctx, messages)
}

// swagger:model ChatRequest
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat godoc
// @Summary 复盘对话
// @Description 围绕该分析报告与AI教练对话，历史与回复均持久化
// @Tags 分析
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "分析ID"
// @Param   body body ChatRequest true "用户消息"
// @Success 200 {object} util.Response{data=model.ChatMessage} "成功"
// @Failure 404 {object} util.Response "分析不存在"
// @Router /api/analyses/{id}/chat [post]
func (c *AnalysisController) Chat(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.AnalysisService.Chat(ctx, ctx.Param("id"), claims.UserID, req.Message)
	if err != nil {
		c.writeAnalysisError(ctx, err)
		return
	}

	util.Success(ctx, reply)
}

func (c *AnalysisController) writeAnalysisError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAnalysisNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
