// 手动触发全量XP对账脚本
//
// 练习打卡对计划内进度和账号级XP是两次独立写入，账号级写入失败时
// 只记日志，长期运行可能积累漂移。此脚本扫描全部用户并打印两边的差值。
//
// 用法: go run scripts/xp_reconcile.go
package main

import (
	"esports_coach_backend/internal/config"
	"esports_coach_backend/internal/genai"
	"esports_coach_backend/internal/repository"
	"esports_coach_backend/internal/service"
	"esports_coach_backend/pkg/database"
	"esports_coach_backend/pkg/logger"
	"fmt"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	userService := service.NewUserService(userRepo, nil, nil)
	trainingService := service.NewTrainingService(trainingRepo, userService, genai.NewClient(cfg.AI), nil)

	users, err := userRepo.FindAll()
	if err != nil {
		log.Fatalf("读取用户失败: %v", err)
	}

	drifted := 0
	for _, u := range users {
		audit, err := trainingService.ReconcileXP(u.ID)
		if err != nil {
			log.Printf("用户 %d 对账失败: %v", u.ID, err)
			continue
		}
		if !audit.Consistent {
			drifted++
			fmt.Printf("user=%d account=%d plans=%d drift=%d\n",
				u.ID, audit.AccountLifetimeXP, audit.PlanXPTotal, audit.Drift)
		}
	}

	fmt.Printf("对账完成: %d 个用户, %d 个存在漂移\n", len(users), drifted)
}
