package repository

import (
	"esports_coach_backend/internal/model"

	"gorm.io/gorm"
)

type AnalysisRepository struct {
	DB *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

func (r *AnalysisRepository) Create(analysis *model.Analysis) error {
	return r.DB.Create(analysis).Error
}

func (r *AnalysisRepository) FindByID(id string) (*model.Analysis, error) {
	var analysis model.Analysis
	err := r.DB.Where("id = ?", id).First(&analysis).Error
	return &analysis, err
}

func (r *AnalysisRepository) FindByUser(userID uint) ([]model.Analysis, error) {
	var analyses []model.Analysis
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&analyses).Error
	return analyses, err
}

func (r *AnalysisRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Analysis{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AnalysisRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Analysis{}).Error
}
