package controller

import (
	"errors"
	"esports_coach_backend/internal/service"
	"esports_coach_backend/internal/util"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户资料和排行榜
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Nickname      string   `form:"nickname"`
	Description   string   `form:"description"`
	Age           int      `form:"age"`
	Gender        string   `form:"gender"`
	FavoriteGames []string `form:"favoriteGames"`
	Goals         []string `form:"goals"`
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 更新昵称、简介等字段，可同时上传头像。头像上传失败不影响其余字段保存
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   nickname formData string false "昵称"
// @Param   description formData string false "个人简介"
// @Param   age formData int false "年龄"
// @Param   gender formData string false "性别"
// @Param   avatar formData file false "头像文件"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	input := service.ProfileUpdateInput{
		Nickname:      req.Nickname,
		Description:   req.Description,
		Age:           req.Age,
		Gender:        req.Gender,
		FavoriteGames: req.FavoriteGames,
		Goals:         req.Goals,
	}

	var avatarFile multipart.File
	var avatarName string
	var avatarSize int64
	if fh, err := ctx.FormFile("avatar"); err == nil {
		f, err := fh.Open()
		if err != nil {
			util.BadRequest(ctx, "无法读取头像文件")
			return
		}
		defer f.Close()
		avatarFile = f
		avatarName = fh.Filename
		avatarSize = fh.Size
	}

	user, err := c.UserService.UpdateProfile(ctx, claims.UserID, input, avatarFile, avatarName, avatarSize)
	if err != nil {
		// 头像失败但资料已保存，返回部分成功
		if errors.Is(err, service.ErrAvatarUploadFailed) {
			util.Success(ctx, gin.H{
				"user":    user,
				"warning": err.Error(),
			})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, user)
}

// Leaderboard godoc
// @Summary 排行榜
// @Description 按等级和XP降序的前N名玩家
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回条数" default(10)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry} "成功"
// @Router /api/user/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	entries, err := c.UserService.Leaderboard(ctx, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
