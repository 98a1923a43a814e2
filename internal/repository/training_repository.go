package repository

import (
	"esports_coach_backend/internal/model"

	"gorm.io/gorm"
)

type TrainingRepository struct {
	DB *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

func (r *TrainingRepository) Create(training *model.Training) error {
	return r.DB.Create(training).Error
}

func (r *TrainingRepository) FindByID(id string) (*model.Training, error) {
	var training model.Training
	err := r.DB.Where("id = ?", id).First(&training).Error
	return &training, err
}

func (r *TrainingRepository) FindByUser(userID uint) ([]model.Training, error) {
	var trainings []model.Training
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&trainings).Error
	return trainings, err
}

// UpdateUserProgress 只写进度子文档，不触碰答案和日程
func (r *TrainingRepository) UpdateUserProgress(id string, progress *model.TrainingProgress) error {
	return r.DB.Model(&model.Training{}).
		Where("id = ?", id).
		Update("user_progress", progress).
		Error
}

// UpdateAnswers 只写向导答案子文档
func (r *TrainingRepository) UpdateAnswers(id string, answers *model.ProfileAnswers) error {
	return r.DB.Model(&model.Training{}).
		Where("id = ?", id).
		Update("answers", answers).
		Error
}

// UpdateProgressPercent 写派生的完成百分比
func (r *TrainingRepository) UpdateProgressPercent(id string, percent int) error {
	return r.DB.Model(&model.Training{}).
		Where("id = ?", id).
		Update("progress", percent).
		Error
}

func (r *TrainingRepository) UpdateStatus(id string, status model.TrainingStatus) error {
	return r.DB.Model(&model.Training{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *TrainingRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Training{}).Error
}
