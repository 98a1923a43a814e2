package model

// Achievement 成就目录条目（全局），进度在 UserAchievement 上
type Achievement struct {
	BaseModel
	Code        string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50;index" json:"category"`
	Game        string `gorm:"size:20" json:"game,omitempty"` // 空 = 跨游戏
	IconType    string `gorm:"size:50" json:"iconType"`
	MaxProgress int    `gorm:"default:1" json:"maxProgress"`
	Tiers       []Tier `gorm:"serializer:json;type:json" json:"tiers,omitempty"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type Tier struct {
	Name        string `json:"name"` // Bronze | Silver | Gold | Platinum
	Description string `json:"description"`
	Requirement int    `json:"requirement"`
}

// UserAchievement 用户在某成就上的进度
type UserAchievement struct {
	BaseModel
	UserID        uint   `gorm:"index:idx_user_achievement,unique;type:bigint unsigned;not null" json:"userId"`
	AchievementID uint   `gorm:"index:idx_user_achievement,unique;type:bigint unsigned;not null" json:"achievementId"`
	Progress      int    `gorm:"default:0" json:"progress"`
	Unlocked      bool   `gorm:"default:false" json:"unlocked"`
	TierReached   string `gorm:"size:20" json:"tierReached,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
