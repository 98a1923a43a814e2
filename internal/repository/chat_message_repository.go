package repository

import (
	"esports_coach_backend/internal/model"

	"gorm.io/gorm"
)

type ChatMessageRepository struct {
	DB *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) *ChatMessageRepository {
	return &ChatMessageRepository{DB: db}
}

func (r *ChatMessageRepository) Create(message *model.ChatMessage) error {
	return r.DB.Create(message).Error
}

// FindByAnalysis 按时间升序返回一次分析的完整对话
func (r *ChatMessageRepository) FindByAnalysis(analysisID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := r.DB.Where("analysis_id = ?", analysisID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

func (r *ChatMessageRepository) DeleteByAnalysis(analysisID string) error {
	return r.DB.Where("analysis_id = ?", analysisID).Delete(&model.ChatMessage{}).Error
}
