package repository

import (
	"esports_coach_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("category, id").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindByCode(code string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.Where("code = ?", code).First(&achievement).Error
	return &achievement, err
}

func (r *AchievementRepository) FindUserAchievements(userID uint) ([]model.UserAchievement, error) {
	var records []model.UserAchievement
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *AchievementRepository) FindUserAchievement(userID, achievementID uint) (*model.UserAchievement, error) {
	var record model.UserAchievement
	err := r.DB.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&record).Error
	return &record, err
}

// SaveUserAchievement 新建或更新用户成就进度
func (r *AchievementRepository) SaveUserAchievement(record *model.UserAchievement) error {
	return r.DB.Save(record).Error
}
