package service

import (
	"time"

	"esports_coach_backend/internal/model"
	"esports_coach_backend/internal/repository"
	"esports_coach_backend/internal/util"
	"esports_coach_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	CheckinRepo     *repository.CheckinRepository
}

func NewAchievementService(achievementRepo *repository.AchievementRepository, checkinRepo *repository.CheckinRepository) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		CheckinRepo:     checkinRepo,
	}
}

// AchievementView 目录条目加上用户自己的进度
type AchievementView struct {
	model.Achievement
	Progress    int    `json:"progress"`
	Unlocked    bool   `json:"unlocked"`
	TierReached string `json:"tierReached,omitempty"`
}

// ListWithProgress 全部成就及当前用户的进度
func (s *AchievementService) ListWithProgress(userID uint) ([]AchievementView, error) {
	catalog, err := s.AchievementRepo.FindAll()
	if err != nil {
		return nil, err
	}

	records, err := s.AchievementRepo.FindUserAchievements(userID)
	if err != nil {
		return nil, err
	}
	byAchievement := make(map[uint]model.UserAchievement, len(records))
	for _, r := range records {
		byAchievement[r.AchievementID] = r
	}

	views := make([]AchievementView, 0, len(catalog))
	for _, a := range catalog {
		v := AchievementView{Achievement: a}
		if r, ok := byAchievement[a.ID]; ok {
			v.Progress = r.Progress
			v.Unlocked = r.Unlocked
			v.TierReached = r.TierReached
		}
		views = append(views, v)
	}
	return views, nil
}

// RecordProgress 把某成就的进度推到至少 progress。
// 进度只进不退；达到 MaxProgress 即解锁，分级成就另记已达档位
func (s *AchievementService) RecordProgress(userID uint, code string, progress int) error {
	achievement, err := s.AchievementRepo.FindByCode(code)
	if err != nil {
		return util.ErrAchievementUnknown
	}

	record, err := s.AchievementRepo.FindUserAchievement(userID, achievement.ID)
	if err == gorm.ErrRecordNotFound {
		record = &model.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
		}
	} else if err != nil {
		return err
	}

	if progress <= record.Progress {
		return nil
	}
	record.Progress = progress

	if record.Progress >= achievement.MaxProgress {
		record.Unlocked = true
	}
	record.TierReached = tierFor(achievement.Tiers, record.Progress)

	return s.AchievementRepo.SaveUserAchievement(record)
}

// IncrementProgress 在现有进度上累加
func (s *AchievementService) IncrementProgress(userID uint, code string, by int) error {
	achievement, err := s.AchievementRepo.FindByCode(code)
	if err != nil {
		return util.ErrAchievementUnknown
	}

	current := 0
	if record, err := s.AchievementRepo.FindUserAchievement(userID, achievement.ID); err == nil {
		current = record.Progress
	}
	return s.RecordProgress(userID, code, current+by)
}

func tierFor(tiers []model.Tier, progress int) string {
	reached := ""
	for _, t := range tiers {
		if progress >= t.Requirement {
			reached = t.Name
		}
	}
	return reached
}

// OnAnalysisCreated 分析完成后推进相关成就，失败只记日志不影响主流程
func (s *AchievementService) OnAnalysisCreated(userID uint, totalAnalyses int) {
	if err := s.RecordProgress(userID, "first-analysis", 1); err != nil {
		logger.Log.Warn("achievement update failed", zap.String("code", "first-analysis"), zap.Error(err))
	}
	if err := s.RecordProgress(userID, "upload-addict", totalAnalyses); err != nil {
		logger.Log.Warn("achievement update failed", zap.String("code", "upload-addict"), zap.Error(err))
	}
}

// OnExerciseCompleted 练习完成后推进训练类成就
func (s *AchievementService) OnExerciseCompleted(userID uint) {
	if err := s.IncrementProgress(userID, "training-junkie", 1); err != nil {
		logger.Log.Warn("achievement update failed", zap.String("code", "training-junkie"), zap.Error(err))
	}
}

// Checkin 每日打卡。同日重复打卡幂等返回当前连续天数
func (s *AchievementService) Checkin(userID uint) (*model.Checkin, error) {
	now := time.Now()

	if existing, err := s.CheckinRepo.FindByUserAndDate(userID, now); err == nil {
		return existing, nil
	}

	streak := 1
	if latest, err := s.CheckinRepo.FindLatestByUser(userID); err == nil {
		yesterday := now.AddDate(0, 0, -1)
		if latest.CheckinAt.Format(util.DateFormat) == yesterday.Format(util.DateFormat) {
			streak = latest.StreakDays + 1
		}
	}

	checkin := &model.Checkin{
		UserID:     userID,
		CheckinAt:  now,
		StreakDays: streak,
	}
	if err := s.CheckinRepo.Create(checkin); err != nil {
		return nil, err
	}

	// 连续/累计打卡同步到成就
	if err := s.RecordProgress(userID, "daily-grinder", streak); err != nil {
		logger.Log.Warn("achievement update failed", zap.String("code", "daily-grinder"), zap.Error(err))
	}
	if count, err := s.CheckinRepo.GetCheckinCountByUser(userID); err == nil {
		if err := s.RecordProgress(userID, "monthly-warrior", int(count)); err != nil {
			logger.Log.Warn("achievement update failed", zap.String("code", "monthly-warrior"), zap.Error(err))
		}
	}

	return checkin, nil
}
