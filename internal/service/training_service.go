package service

import (
	"context"
	"fmt"
	"time"

	"esports_coach_backend/internal/genai"
	"esports_coach_backend/internal/model"
	"esports_coach_backend/internal/progression"
	"esports_coach_backend/internal/repository"
	"esports_coach_backend/internal/util"
	"esports_coach_backend/pkg/logger"

	"go.uber.org/zap"
)

type TrainingService struct {
	TrainingRepo *repository.TrainingRepository
	UserService  *UserService
	AI           *genai.Client
	Achievements *AchievementService
}

func NewTrainingService(trainingRepo *repository.TrainingRepository, userService *UserService, ai *genai.Client, achievements *AchievementService) *TrainingService {
	return &TrainingService{
		TrainingRepo: trainingRepo,
		UserService:  userService,
		AI:           ai,
		Achievements: achievements,
	}
}

// CreatePlan 走AI生成4周日程并落库。onStatus 用于把生成进度透给前端
func (s *TrainingService) CreatePlan(ctx context.Context, userID uint, game, title, description string, answers model.ProfileAnswers, onStatus genai.StatusFunc) (*model.Training, error) {
	schedule, err := s.AI.GenerateTrainingPlan(ctx, game, answers, onStatus)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = fmt.Sprintf("%s Training Plan", game)
	}
	if description == "" {
		description = "AI Generated Plan"
	}

	training := &model.Training{
		UserID:      userID,
		Game:        game,
		Title:       title,
		Description: description,
		Status:      model.TrainingNew,
		Answers:     &answers,
		Schedule:    schedule,
		UserProgress: &model.TrainingProgress{
			CompletedExercises: []string{},
			CompletedDays:      []string{},
		},
	}

	if err := s.TrainingRepo.Create(training); err != nil {
		return nil, err
	}
	return training, nil
}

func (s *TrainingService) GetPlans(userID uint) ([]model.Training, error) {
	return s.TrainingRepo.FindByUser(userID)
}

func (s *TrainingService) GetPlan(id string, userID uint) (*model.Training, error) {
	training, err := s.TrainingRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrTrainingNotFound
	}
	if training.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return training, nil
}

// ToggleResult 一次完成切换的全部结果，供上层渲染
type ToggleResult struct {
	Completed   bool                    `json:"completed"` // 本次是标记完成还是撤销
	XPDelta     int                     `json:"xpDelta"`
	Progress    *model.TrainingProgress `json:"progress"`
	Percent     int                     `json:"percent"`
	Level       int                     `json:"level"`
	AccountXP   int                     `json:"accountXp"`
	LeveledUp   bool                    `json:"leveledUp"`
	LeveledDown bool                    `json:"leveledDown"`
}

// ToggleExercise 切换练习完成状态：
// 计划内进度和派生百分比各自落库，同一增量再结算到账号级XP。
// 两处写入无跨实体事务，账号级写失败只记日志，下次同一练习的切换会恢复对称
func (s *TrainingService) ToggleExercise(ctx context.Context, id string, userID uint, exerciseID string) (*ToggleResult, error) {
	training, err := s.GetPlan(id, userID)
	if err != nil {
		return nil, err
	}

	exercise, ok := progression.ExerciseByID(training.Schedule, exerciseID)
	if !ok {
		return nil, util.ErrExerciseNotInPlan
	}

	current := model.TrainingProgress{CompletedExercises: []string{}, CompletedDays: []string{}}
	if training.UserProgress != nil {
		current = *training.UserProgress
	}

	updated, delta := progression.ToggleExercise(current, exerciseID, exercise.Difficulty)
	s.trackDailyStreak(&updated, training.Schedule, delta > 0)

	percent := progression.PlanCompletionPercent(training.Schedule, updated.CompletedExercises)

	if err := s.TrainingRepo.UpdateUserProgress(id, &updated); err != nil {
		return nil, err
	}
	if err := s.TrainingRepo.UpdateProgressPercent(id, percent); err != nil {
		return nil, err
	}
	s.advanceStatus(training, percent)

	result := &ToggleResult{
		Completed: delta > 0,
		XPDelta:   delta,
		Progress:  &updated,
		Percent:   percent,
	}

	if delta > 0 && s.Achievements != nil {
		s.Achievements.OnExerciseCompleted(userID)
	}

	// 账号级XP与计划内XP是两个独立计数，同一增量两边都记
	state, err := s.UserService.ApplyXP(userID, delta)
	if err != nil {
		logger.Log.Error("plan progress saved but account XP update failed",
			zap.String("trainingID", id),
			zap.Uint("userID", userID),
			zap.Int("delta", delta),
			zap.Error(err))
		return result, nil
	}

	result.Level = state.Level
	result.AccountXP = state.XP
	result.LeveledUp = state.LeveledUp
	result.LeveledDown = state.LeveledDown
	return result, nil
}

// trackDailyStreak 标记完成时维护连续打卡天数和完成过的日期
func (s *TrainingService) trackDailyStreak(progress *model.TrainingProgress, schedule *model.Schedule, completed bool) {
	if !completed {
		return
	}

	now := time.Now()
	today := now.Format(util.DateFormat)

	if progress.LastCompletedAt != nil {
		last := progress.LastCompletedAt.Format(util.DateFormat)
		if last == today {
			progress.LastCompletedAt = &now
			return
		}
		yesterday := now.AddDate(0, 0, -1).Format(util.DateFormat)
		if last == yesterday {
			progress.Streak++
		} else {
			progress.Streak = 1
		}
	} else {
		progress.Streak = 1
	}

	progress.LastCompletedAt = &now
	for _, d := range progress.CompletedDays {
		if d == today {
			return
		}
	}
	progress.CompletedDays = append(progress.CompletedDays, today)
}

// advanceStatus 按完成度推进计划状态，失败仅记日志
func (s *TrainingService) advanceStatus(training *model.Training, percent int) {
	var next model.TrainingStatus
	switch {
	case percent >= 100:
		next = model.TrainingCompleted
	case percent > 0:
		next = model.TrainingInProgress
	default:
		next = model.TrainingNew
	}
	if next == training.Status {
		return
	}
	if err := s.TrainingRepo.UpdateStatus(training.ID, next); err != nil {
		logger.Log.Warn("failed to advance training status",
			zap.String("trainingID", training.ID),
			zap.Error(err))
	}
}

// DayView 某周某天的展开视图
type DayView struct {
	Day       int              `json:"day"`
	Title     string           `json:"title"`
	Exercises []model.Exercise `json:"exercises"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
	Percent   int              `json:"percent"`
}

// GetDay 展开某周某天的练习列表和当日完成度
func (s *TrainingService) GetDay(id string, userID uint, weekNumber, dayNumber int) (*DayView, error) {
	training, err := s.GetPlan(id, userID)
	if err != nil {
		return nil, err
	}

	var week *model.Week
	if training.Schedule != nil {
		for i := range training.Schedule.Weeks {
			if training.Schedule.Weeks[i].WeekNumber == weekNumber {
				week = &training.Schedule.Weeks[i]
				break
			}
		}
	}

	exercises := progression.ExercisesForDay(week, weekNumber, dayNumber)

	var completedIDs []string
	if training.UserProgress != nil {
		completedIDs = training.UserProgress.CompletedExercises
	}

	completed := 0
	idSet := make(map[string]bool, len(completedIDs))
	for _, cid := range completedIDs {
		idSet[cid] = true
	}
	for _, ex := range exercises {
		if idSet[ex.ID] {
			completed++
		}
	}

	return &DayView{
		Day:       dayNumber,
		Title:     progression.DayTitle(week, dayNumber),
		Exercises: exercises,
		Completed: completed,
		Total:     len(exercises),
		Percent:   progression.DailyCompletion(exercises, completedIDs),
	}, nil
}

// UpdateRank 更新向导答案里的当前段位，只写答案子文档
func (s *TrainingService) UpdateRank(id string, userID uint, rank string) (*model.Training, error) {
	training, err := s.GetPlan(id, userID)
	if err != nil {
		return nil, err
	}

	if training.Answers == nil {
		training.Answers = &model.ProfileAnswers{}
	}
	training.Answers.SetRank(rank)

	if err := s.TrainingRepo.UpdateAnswers(id, training.Answers); err != nil {
		return nil, err
	}
	return training, nil
}

func (s *TrainingService) DeletePlan(id string, userID uint) error {
	if _, err := s.GetPlan(id, userID); err != nil {
		return err
	}
	return s.TrainingRepo.Delete(id)
}

// XPAudit 两个XP计数的对账结果。
// 计划内计数与账号级计数独立演进，部分写失败会让两者漂移
type XPAudit struct {
	AccountLifetimeXP int  `json:"accountLifetimeXp"` // 升级消耗 + 当前结余
	PlanXPTotal       int  `json:"planXpTotal"`       // 所有计划内XP之和
	Drift             int  `json:"drift"`
	Consistent        bool `json:"consistent"`
}

// ReconcileXP 对账但不自动修复，漂移交给运营判断
func (s *TrainingService) ReconcileXP(userID uint) (*XPAudit, error) {
	user, err := s.UserService.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	lifetime := user.XP
	for l := 1; l < user.Level; l++ {
		lifetime += progression.Threshold(l)
	}

	trainings, err := s.TrainingRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	planTotal := 0
	for _, tr := range trainings {
		if tr.UserProgress != nil {
			planTotal += tr.UserProgress.XP
		}
	}

	audit := &XPAudit{
		AccountLifetimeXP: lifetime,
		PlanXPTotal:       planTotal,
		Drift:             lifetime - planTotal,
	}
	audit.Consistent = audit.Drift == 0

	if !audit.Consistent {
		logger.Log.Warn("XP counters have drifted",
			zap.Uint("userID", userID),
			zap.Int("accountLifetimeXP", lifetime),
			zap.Int("planXPTotal", planTotal))
	}

	return audit, nil
}
