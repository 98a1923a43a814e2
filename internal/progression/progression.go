// Package progression 纯状态转换引擎：XP/等级结算、练习完成切换、完成度汇总。
// 不触碰数据库，所有函数相同输入必得相同输出
package progression

import (
	"fmt"
	"math"
	"strings"

	"esports_coach_backend/internal/model"
)

// XPThresholdPerLevel 第 level 级升级所需XP为 level*1000
const XPThresholdPerLevel = 1000

// 各难度练习对应的XP值
var xpValues = map[model.ExerciseDifficulty]int{
	model.DifficultyLow:    50,
	model.DifficultyMedium: 100,
	model.DifficultyHigh:   200,
	model.DifficultyAuto:   50,
}

// XPValue 返回难度对应的XP，未知难度按50
func XPValue(difficulty model.ExerciseDifficulty) int {
	if v, ok := xpValues[difficulty]; ok {
		return v
	}
	return 50
}

// Threshold 当前等级的升级门槛
func Threshold(level int) int {
	return level * XPThresholdPerLevel
}

// LevelState XP结算结果
type LevelState struct {
	Level       int
	XP          int
	LeveledUp   bool
	LeveledDown bool
}

// ApplyXPDelta 把带符号的XP变化结算为合法的 (level, xp)。
// 一次调用内完成所有连续升降级；1级时XP不会为负
func ApplyXPDelta(level, xp, delta int) LevelState {
	if level < 1 {
		level = 1
	}

	s := LevelState{Level: level, XP: xp + delta}

	for s.XP >= Threshold(s.Level) {
		s.XP -= Threshold(s.Level)
		s.Level++
		s.LeveledUp = true
	}

	for s.XP < 0 && s.Level > 1 {
		s.Level--
		s.XP += Threshold(s.Level)
		s.LeveledDown = true
	}

	if s.Level == 1 && s.XP < 0 {
		s.XP = 0
	}

	return s
}

// ToggleExercise 切换一个练习的完成状态。
// 已完成则撤销（负增量），未完成则标记（正增量）；计划内XP下限为0。
// 返回新的进度记录和应同步到账号级XP的增量
func ToggleExercise(progress model.TrainingProgress, exerciseID string, difficulty model.ExerciseDifficulty) (model.TrainingProgress, int) {
	value := XPValue(difficulty)

	done := false
	for _, id := range progress.CompletedExercises {
		if id == exerciseID {
			done = true
			break
		}
	}

	var delta int
	if done {
		kept := make([]string, 0, len(progress.CompletedExercises)-1)
		for _, id := range progress.CompletedExercises {
			if id != exerciseID {
				kept = append(kept, id)
			}
		}
		progress.CompletedExercises = kept
		delta = -value
	} else {
		progress.CompletedExercises = append(progress.CompletedExercises, exerciseID)
		delta = value
	}

	progress.XP += delta
	if progress.XP < 0 {
		progress.XP = 0
	}

	return progress, delta
}

// activityMarkers 自由文本日程的分段关键字
var activityMarkers = []string{"Warm-up:", "Study:", "Ranked Games:", "Review:", "Flex Day:", "Alternative:"}

type activitySegment struct {
	Marker  string // 不含冒号
	Content string
}

// segmentActivity 按关键字切分自由文本，仅保留有内容的段。
// 无关键字且文本非空时整体算作一段
func segmentActivity(raw string) []activitySegment {
	type hit struct {
		pos    int
		marker string
	}

	var hits []hit
	offset := 0
	rest := raw
	for {
		best := -1
		bestMarker := ""
		for _, m := range activityMarkers {
			if i := strings.Index(rest, m); i >= 0 && (best < 0 || i < best) {
				best = i
				bestMarker = m
			}
		}
		if best < 0 {
			break
		}
		hits = append(hits, hit{pos: offset + best, marker: bestMarker})
		offset += best + len(bestMarker)
		rest = raw[offset:]
	}

	if len(hits) == 0 {
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		return []activitySegment{{Content: raw}}
	}

	var segments []activitySegment
	for i, h := range hits {
		start := h.pos + len(h.marker)
		end := len(raw)
		if i+1 < len(hits) {
			end = hits[i+1].pos
		}
		content := strings.TrimSpace(raw[start:end])
		if content == "" {
			continue
		}
		segments = append(segments, activitySegment{
			Marker:  strings.TrimSpace(strings.TrimSuffix(h.marker, ":")),
			Content: content,
		})
	}
	return segments
}

// exerciseCountForDay 一天的练习数：结构化数组取长度，自由文本取分段数
func exerciseCountForDay(day *model.DayRoutine) int {
	if day.Exercises != nil {
		return len(day.Exercises)
	}
	return len(segmentActivity(day.Activity))
}

// TotalExerciseCount 遍历整个日程统计练习总数
func TotalExerciseCount(schedule *model.Schedule) int {
	if schedule == nil {
		return 0
	}
	total := 0
	for wi := range schedule.Weeks {
		for di := range schedule.Weeks[wi].DailyRoutine {
			total += exerciseCountForDay(&schedule.Weeks[wi].DailyRoutine[di])
		}
	}
	return total
}

// PlanCompletionPercent 全计划完成百分比，四舍五入；无练习时为0
func PlanCompletionPercent(schedule *model.Schedule, completedExerciseIDs []string) int {
	total := TotalExerciseCount(schedule)
	if total == 0 {
		return 0
	}
	return roundPercent(len(completedExerciseIDs), total)
}

// DailyCompletion 单日完成百分比
func DailyCompletion(exercises []model.Exercise, completedExerciseIDs []string) int {
	if len(exercises) == 0 {
		return 0
	}
	completed := make(map[string]bool, len(completedExerciseIDs))
	for _, id := range completedExerciseIDs {
		completed[id] = true
	}
	done := 0
	for _, ex := range exercises {
		if completed[ex.ID] {
			done++
		}
	}
	return roundPercent(done, len(exercises))
}

func roundPercent(done, total int) int {
	return int(math.Round(100 * float64(done) / float64(total)))
}

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// FindDayRoutine 按星期名、"Day N" 或裸数字匹配一天的安排，dayNumber 取1-7
func FindDayRoutine(week *model.Week, dayNumber int) *model.DayRoutine {
	if week == nil || dayNumber < 1 || dayNumber > 7 {
		return nil
	}
	target := weekdayNames[dayNumber-1]
	for i := range week.DailyRoutine {
		d := week.DailyRoutine[i].Day
		if strings.Contains(d, target) ||
			strings.Contains(d, fmt.Sprintf("Day %d", dayNumber)) ||
			strings.Contains(d, fmt.Sprintf("%d", dayNumber)) {
			return &week.DailyRoutine[i]
		}
	}
	return nil
}

// ExercisesForDay 展开一天的练习列表并赋稳定ID（w{week}-d{day}-e{index}）。
// 自由文本日程按关键字切分为多个练习，难度缺省为 Medium
func ExercisesForDay(week *model.Week, weekNumber, dayNumber int) []model.Exercise {
	day := FindDayRoutine(week, dayNumber)
	if day == nil {
		return nil
	}

	var out []model.Exercise
	if day.Exercises != nil {
		for i, ex := range day.Exercises {
			ex.ID = exerciseID(weekNumber, dayNumber, i)
			if ex.Difficulty == "" {
				ex.Difficulty = model.DifficultyMedium
			}
			out = append(out, ex)
		}
		return out
	}

	for i, seg := range segmentActivity(day.Activity) {
		ex := model.Exercise{
			Activity:   seg.Content,
			Duration:   day.Duration,
			ID:         exerciseID(weekNumber, dayNumber, i),
			Difficulty: model.DifficultyMedium,
		}
		if seg.Marker != "" {
			ex.Activity = seg.Marker
			ex.Description = seg.Content
		}
		out = append(out, ex)
	}
	return out
}

func exerciseID(week, day, index int) string {
	return fmt.Sprintf("w%d-d%d-e%d", week, day, index)
}

// ExerciseByID 在日程中定位一个练习ID，找不到返回false
func ExerciseByID(schedule *model.Schedule, exerciseID string) (model.Exercise, bool) {
	var w, d, e int
	if _, err := fmt.Sscanf(exerciseID, "w%d-d%d-e%d", &w, &d, &e); err != nil {
		return model.Exercise{}, false
	}
	if schedule == nil {
		return model.Exercise{}, false
	}
	for i := range schedule.Weeks {
		if schedule.Weeks[i].WeekNumber != w {
			continue
		}
		exercises := ExercisesForDay(&schedule.Weeks[i], w, d)
		if e >= 0 && e < len(exercises) {
			return exercises[e], true
		}
		return model.Exercise{}, false
	}
	return model.Exercise{}, false
}

// legacyDayTitles 旧数据兜底标题，按天序号索引
var legacyDayTitles = []string{
	"Mechanics", "VOD Review", "Positioning", "Rest",
	"Team Play", "Game Sense", "Assessment",
}

// 主题关键词有序表，先命中者优先
var themeKeywords = []struct {
	title    string
	keywords []string
}{
	{"VOD Review", []string{"vod", "review"}},
	{"Mechanics", []string{"aim", "mechanics", "click"}},
	{"Ranked Games", []string{"ranked", "game", "match"}},
	{"Macro & Positioning", []string{"positioning", "macro"}},
	{"Team Play", []string{"team", "comms"}},
}

// DayTitle 推导某天的展示标题：
// 显式theme > 练习名关键词 > 简短的首个练习名 > 旧标题表 > "Training"。
// 当天无安排时为 "Rest"
func DayTitle(week *model.Week, dayNumber int) string {
	if week == nil || len(week.DailyRoutine) == 0 {
		return "Training"
	}

	day := FindDayRoutine(week, dayNumber)
	if day == nil {
		return "Rest"
	}

	if day.Theme != "" {
		return day.Theme
	}

	if len(day.Exercises) > 0 {
		var names []string
		for _, ex := range day.Exercises {
			names = append(names, ex.Title())
		}
		joined := strings.ToLower(strings.Join(names, " "))

		for _, t := range themeKeywords {
			for _, kw := range t.keywords {
				if strings.Contains(joined, kw) {
					return t.title
				}
			}
		}

		if first := day.Exercises[0].Title(); first != "" && len(first) < 20 {
			return first
		}
	}

	if dayNumber >= 1 && dayNumber <= len(legacyDayTitles) {
		return legacyDayTitles[dayNumber-1]
	}
	return "Training"
}
