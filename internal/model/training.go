package model

import "time"

type TrainingStatus string

const (
	TrainingNew        TrainingStatus = "new"
	TrainingInProgress TrainingStatus = "in_progress"
	TrainingCompleted  TrainingStatus = "completed"
)

// ExerciseDifficulty 训练难度，决定完成一次的 XP 值
type ExerciseDifficulty string

const (
	DifficultyLow    ExerciseDifficulty = "Low"
	DifficultyMedium ExerciseDifficulty = "Medium"
	DifficultyHigh   ExerciseDifficulty = "High"
	DifficultyAuto   ExerciseDifficulty = "Auto"
)

// Training 一份 AI 生成的多周训练计划。
// 向导答案、生成的日程、完成进度分成三个独立的 JSON 子文档存储，
// 避免只改其中一块时整个 details 被部分写坏
// swagger:model Training
type Training struct {
	UUIDBase
	UserID       uint              `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Game         string            `gorm:"size:50;not null" json:"game"`
	Title        string            `gorm:"size:255;not null" json:"title"`
	Description  string            `gorm:"type:text" json:"description"`
	Status       TrainingStatus    `gorm:"type:enum('new','in_progress','completed');default:'new'" json:"status"`
	Progress     int               `gorm:"default:0" json:"progress"` // 0-100，由完成计数推导
	Answers      *ProfileAnswers   `gorm:"serializer:json;type:json" json:"answers,omitempty"`
	Schedule     *Schedule         `gorm:"serializer:json;type:json" json:"schedule,omitempty"`
	UserProgress *TrainingProgress `gorm:"serializer:json;type:json;column:user_progress" json:"userProgress,omitempty"`
}

func (Training) TableName() string {
	return "trainings"
}

// ProfileAnswers 向导收集的玩家画像，原样进入生成提示词
type ProfileAnswers struct {
	AvailabilityDays  string `json:"availability_days"`  // "1–2" | "3–4" | "5–6" | "Every day"
	AvailabilityHours string `json:"availability_hours"` // "<1h" | "1–2h" | "2–4h" | "+4h"
	GoalMain          string `json:"goal_main"`
	GoalSpecific      string `json:"goal_specific"`
	CurrentRank       string `json:"current_rank,omitempty"`
	LoLRank           string `json:"lol_rank,omitempty"`
	ValRank           string `json:"val_rank,omitempty"`
	CSRank            string `json:"cs_rank,omitempty"`
	Limitations       string `json:"profile_limitations,omitempty"`
	Extra             map[string]string `json:"extra,omitempty"` // 各游戏分支问题
}

// Rank 返回当前段位，按游戏特定字段优先
func (a *ProfileAnswers) Rank() string {
	if a == nil {
		return "Unranked"
	}
	switch {
	case a.LoLRank != "":
		return a.LoLRank
	case a.ValRank != "":
		return a.ValRank
	case a.CSRank != "":
		return a.CSRank
	case a.CurrentRank != "":
		return a.CurrentRank
	}
	return "Unranked"
}

// SetRank 更新已有的段位字段；都为空时落到通用字段
func (a *ProfileAnswers) SetRank(rank string) {
	switch {
	case a.LoLRank != "":
		a.LoLRank = rank
	case a.ValRank != "":
		a.ValRank = rank
	case a.CSRank != "":
		a.CSRank = rank
	default:
		a.CurrentRank = rank
	}
}

// Schedule AI 生成的 4 周日程文档
type Schedule struct {
	Weeks []Week `json:"weeks"`
}

type Week struct {
	WeekNumber   int          `json:"week_number"`
	Focus        string       `json:"focus,omitempty"`
	DailyRoutine []DayRoutine `json:"daily_routine"`
}

// DayRoutine 一天的安排：要么是结构化的 exercises 数组，
// 要么是一段自由文本 activity（按固定关键词切分，见 progression 包）
type DayRoutine struct {
	Day       string     `json:"day"` // 星期名或 "Day N"
	Theme     string     `json:"theme,omitempty"`
	Duration  string     `json:"duration,omitempty"`
	Activity  string     `json:"activity,omitempty"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

type Exercise struct {
	Activity    string             `json:"activity,omitempty"`
	Name        string             `json:"name,omitempty"`
	Description string             `json:"description,omitempty"`
	Duration    string             `json:"duration,omitempty"`
	Difficulty  ExerciseDifficulty `json:"difficulty,omitempty"`
	ID          string             `json:"id,omitempty"` // w{week}-d{day}-e{index}，派生，不入库
}

// Title 返回练习的展示名（activity 优先于 name）
func (e Exercise) Title() string {
	if e.Activity != "" {
		return e.Activity
	}
	return e.Name
}

// TrainingProgress 计划内进度。XP 是计划内独立计数，与账号级 User.XP 分开
type TrainingProgress struct {
	CompletedExercises []string   `json:"completed_exercises"`
	XP                 int        `json:"xp"`
	Streak             int        `json:"streak"`
	CompletedDays      []string   `json:"completed_days"`
	LastCompletedAt    *time.Time `json:"last_completed_at,omitempty"`
}
