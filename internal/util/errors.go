package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTrainingNotFound   = errors.New("training plan not found")
	ErrAnalysisNotFound   = errors.New("analysis not found")
	ErrAchievementUnknown = errors.New("achievement not found")
	ErrVideoTooLarge      = errors.New("video exceeds maximum allowed size")
	ErrInvalidVideoType   = errors.New("unsupported video format")
	ErrExerciseNotInPlan  = errors.New("exercise does not belong to this plan")
)
