package database

import (
	"esports_coach_backend/internal/config"
	"esports_coach_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Training{},
		&model.Analysis{},
		&model.ChatMessage{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Checkin{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAchievements(db)

	return db, nil
}

// seedAchievements 首次启动时插入成就目录
func seedAchievements(db *gorm.DB) {
	var count int64
	db.Model(&model.Achievement{}).Count(&count)
	if count > 0 {
		return
	}

	catalog := []model.Achievement{
		// 学习与提升
		{Code: "first-analysis", Title: "First Analysis", Description: "Upload your first gameplay video to get AI insights.", Category: "Learning & Improvement", IconType: "brain-upload", MaxProgress: 1},
		{Code: "fast-learner", Title: "Fast Learner", Description: "Complete a training plan in under 24 hours.", Category: "Learning & Improvement", IconType: "lightning", MaxProgress: 1},
		{Code: "break-pattern", Title: "Break the Pattern", Description: "Fix a repeated mistake identified by the AI.", Category: "Learning & Improvement", IconType: "puzzle", MaxProgress: 1},

		// 坚持与投入
		{Code: "daily-grinder", Title: "Daily Grinder", Description: "Use the platform for 7 consecutive days.", Category: "Progress & Dedication", IconType: "calendar", MaxProgress: 7},
		{Code: "monthly-warrior", Title: "Monthly Warrior", Description: "Stay active for 30 days.", Category: "Progress & Dedication", IconType: "sword", MaxProgress: 30},
		{Code: "never-skip", Title: "Never Skip Training", Description: "Complete all recommended sessions in a week.", Category: "Progress & Dedication", IconType: "dumbbell", MaxProgress: 1},

		// 趣味
		{Code: "upload-addict", Title: "Upload Addict", Description: "Upload 10 gameplay videos.", Category: "Fun & Engagement", IconType: "video-stack", MaxProgress: 10},
		{Code: "training-junkie", Title: "Training Junkie", Description: "Complete 25 AI-generated drills.", Category: "Fun & Engagement", IconType: "drill", MaxProgress: 25},

		// 游戏专属（分级）
		{Code: "lol-lane-dominator", Title: "Lane Dominator", Description: "Dominance during the laning phase (CS, trades, wave control).", Category: "LoL", Game: "LoL", IconType: "minion-sword", MaxProgress: 50, Tiers: []model.Tier{
			{Name: "Bronze", Description: "Win lane in 5 games", Requirement: 5},
			{Name: "Silver", Description: "Win lane in 15 games", Requirement: 15},
			{Name: "Gold", Description: "Win lane in 30 games", Requirement: 30},
			{Name: "Platinum", Description: "Win lane in 50 games", Requirement: 50},
		}},
		{Code: "cs2-aim-specialist", Title: "Aim Specialist", Description: "Precision, reaction time, and spray control.", Category: "CS2", Game: "CS2", IconType: "crosshair-bullet", MaxProgress: 100, Tiers: []model.Tier{
			{Name: "Bronze", Description: "30% Headshot Rate", Requirement: 30},
			{Name: "Silver", Description: "45% Headshot Rate", Requirement: 45},
			{Name: "Gold", Description: "60% Headshot Rate", Requirement: 60},
			{Name: "Platinum", Description: "75% Headshot Rate", Requirement: 75},
		}},
		{Code: "val-first-bullet", Title: "First Bullet Accuracy", Description: "Precision on the first shot.", Category: "Valorant", Game: "Valorant", IconType: "headshot-spark", MaxProgress: 100, Tiers: []model.Tier{
			{Name: "Bronze", Description: "High Body Shot %", Requirement: 50},
			{Name: "Silver", Description: "Good Headshot %", Requirement: 70},
			{Name: "Gold", Description: "Great First Shot Accuracy", Requirement: 85},
			{Name: "Platinum", Description: "Demon Accuracy", Requirement: 95},
		}},
		{Code: "ai-disciple", Title: "AI Disciple", Description: "Following and executing AI recommendations.", Category: "Cross-Game", IconType: "brain-chip", MaxProgress: 100, Tiers: []model.Tier{
			{Name: "Bronze", Description: "Follow 5 Recommendations", Requirement: 5},
			{Name: "Silver", Description: "Follow 20 Recommendations", Requirement: 20},
			{Name: "Gold", Description: "Follow 50 Recommendations", Requirement: 50},
			{Name: "Platinum", Description: "Follow 100 Recommendations", Requirement: 100},
		}},
	}

	for _, a := range catalog {
		db.Create(&a)
	}
}
