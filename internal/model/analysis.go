package model

// Analysis 一次视频分析记录。Result 由 AI 产出后原样保存，创建后不再修改
// swagger:model Analysis
type Analysis struct {
	UUIDBase
	UserID     uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	VideoURL   string          `gorm:"size:500;not null" json:"videoUrl"`
	VideoTitle string          `gorm:"size:255" json:"videoTitle"`
	Game       string          `gorm:"size:50" json:"game"`
	Thumbnail  string          `gorm:"size:500" json:"thumbnail"`
	Duration   float64         `gorm:"default:0" json:"duration"` // 秒，由 ffprobe 得出
	Result     *AnalysisResult `gorm:"serializer:json;type:json" json:"result"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// AnalysisResult AI 返回的结构化分析。FPS 与 MOBA 两种形态共用
// summary/strengths/weaknesses/key_moments/improvement_plan，
// 其余字段按游戏类型二选一
type AnalysisResult struct {
	Summary         string      `json:"summary"`
	Strengths       []string    `json:"strengths"`
	Weaknesses      []string    `json:"weaknesses"`
	KeyMoments      []KeyMoment `json:"key_moments"`
	ImprovementPlan string      `json:"improvement_plan"`
	Mechanics       Mechanics   `json:"mechanics"`

	// FPS
	Economy        *Economy        `json:"economy,omitempty"`
	RoundsAnalyzed []RoundAnalysis `json:"rounds_analyzed,omitempty"`

	// MOBA
	Macro          *Macro          `json:"macro,omitempty"`
	PhasesAnalyzed []PhaseAnalysis `json:"phases_analyzed,omitempty"`
}

type KeyMoment struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

type Mechanics struct {
	// FPS
	AimRating          int    `json:"aim_rating,omitempty"`
	MovementRating     int    `json:"movement_rating,omitempty"`
	PositioningRating  int    `json:"positioning_rating,omitempty"`
	CrosshairPlacement string `json:"crosshair_placement,omitempty"`

	// MOBA
	CSRating      int    `json:"cs_rating,omitempty"`
	TradingRating int    `json:"trading_rating,omitempty"`
	SkillShots    string `json:"skill_shots,omitempty"`
	Combos        string `json:"combos,omitempty"`

	// 共用
	ReactionTime string `json:"reaction_time,omitempty"`
}

type Economy struct {
	Rating   int    `json:"rating"`
	Analysis string `json:"analysis"`
}

type RoundAnalysis struct {
	RoundNumber int    `json:"round_number"`
	Outcome     string `json:"outcome"` // Win | Loss
	KDA         string `json:"kda"`
	Highlight   string `json:"highlight"`
}

type Macro struct {
	VisionScoreRating int    `json:"vision_score_rating"`
	MapAwareness      string `json:"map_awareness"`
	ObjectiveControl  string `json:"objective_control"`
	RotationQuality   string `json:"rotation_quality"`
}

type PhaseAnalysis struct {
	Phase       string `json:"phase"`
	Performance string `json:"performance"`
	Notes       string `json:"notes"`
}

// ChatMessage 针对某次分析的对话记录
type ChatMessage struct {
	UUIDBase
	AnalysisID string `gorm:"index;type:varchar(36);not null" json:"analysisId"`
	Sender     string `gorm:"type:enum('user','ai');not null" json:"sender"`
	Content    string `gorm:"type:text" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
