package progression

import (
	"fmt"
	"testing"

	"esports_coach_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyXPDeltaSingleLevelUp(t *testing.T) {
	s := ApplyXPDelta(1, 950, 100)

	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 50, s.XP)
	assert.True(t, s.LeveledUp)
	assert.False(t, s.LeveledDown)
}

func TestApplyXPDeltaCascadesThroughLevels(t *testing.T) {
	// 1级需1000，2级需2000：+5000 应到3级剩2000
	s := ApplyXPDelta(1, 0, 5000)

	assert.Equal(t, 3, s.Level)
	assert.Equal(t, 2000, s.XP)
	assert.True(t, s.LeveledUp)
}

func TestApplyXPDeltaLevelDown(t *testing.T) {
	s := ApplyXPDelta(3, 100, -200)

	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 1900, s.XP)
	assert.True(t, s.LeveledDown)
	assert.False(t, s.LeveledUp)
}

func TestApplyXPDeltaClampsAtLevelOne(t *testing.T) {
	s := ApplyXPDelta(1, 100, -500)

	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0, s.XP)
	assert.False(t, s.LeveledUp)
}

func TestApplyXPDeltaInvariantHolds(t *testing.T) {
	cases := []struct {
		level, xp, delta int
	}{
		{1, 0, 0}, {1, 999, 1}, {1, 0, 123456}, {5, 4999, 1},
		{5, 0, -1}, {10, 500, -30000}, {2, 1999, 2001}, {1, 0, -1},
		{7, 3000, -3001}, {3, 0, 999999},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("l%d_xp%d_d%d", c.level, c.xp, c.delta), func(t *testing.T) {
			s := ApplyXPDelta(c.level, c.xp, c.delta)
			assert.GreaterOrEqual(t, s.Level, 1)
			assert.GreaterOrEqual(t, s.XP, 0)
			assert.Less(t, s.XP, Threshold(s.Level))
		})
	}
}

func TestApplyXPDeltaReversible(t *testing.T) {
	cases := []struct {
		level, xp, delta int
	}{
		{1, 0, 50}, {1, 950, 100}, {2, 0, 5000}, {4, 3999, 1}, {3, 100, 200},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("l%d_xp%d_d%d", c.level, c.xp, c.delta), func(t *testing.T) {
			forward := ApplyXPDelta(c.level, c.xp, c.delta)
			back := ApplyXPDelta(forward.Level, forward.XP, -c.delta)
			assert.Equal(t, c.level, back.Level)
			assert.Equal(t, c.xp, back.XP)
		})
	}
}

func TestXPValue(t *testing.T) {
	assert.Equal(t, 50, XPValue(model.DifficultyLow))
	assert.Equal(t, 100, XPValue(model.DifficultyMedium))
	assert.Equal(t, 200, XPValue(model.DifficultyHigh))
	assert.Equal(t, 50, XPValue(model.DifficultyAuto))
	assert.Equal(t, 50, XPValue(model.ExerciseDifficulty("Unknown")))
}

func TestToggleExerciseMarkAndUndo(t *testing.T) {
	initial := model.TrainingProgress{
		CompletedExercises: []string{"w1-d1-e0"},
		XP:                 50,
	}

	// 标记完成
	after, delta := ToggleExercise(initial, "w1-d2-e1", model.DifficultyHigh)
	assert.Equal(t, 200, delta)
	assert.Equal(t, 250, after.XP)
	assert.Contains(t, after.CompletedExercises, "w1-d2-e1")

	// 再次切换撤销，回到初始状态
	restored, delta2 := ToggleExercise(after, "w1-d2-e1", model.DifficultyHigh)
	assert.Equal(t, -200, delta2)
	assert.Equal(t, initial.XP, restored.XP)
	assert.Equal(t, initial.CompletedExercises, restored.CompletedExercises)
	assert.Zero(t, delta+delta2)
}

func TestToggleExerciseXPFloor(t *testing.T) {
	initial := model.TrainingProgress{
		CompletedExercises: []string{"w1-d1-e0"},
		XP:                 0,
	}

	after, delta := ToggleExercise(initial, "w1-d1-e0", model.DifficultyMedium)
	assert.Equal(t, -100, delta)
	assert.Equal(t, 0, after.XP)
	assert.Empty(t, after.CompletedExercises)
}

func testSchedule() *model.Schedule {
	return &model.Schedule{
		Weeks: []model.Week{
			{
				WeekNumber: 1,
				Focus:      "Fundamentals",
				DailyRoutine: []model.DayRoutine{
					{
						Day: "Monday",
						Exercises: []model.Exercise{
							{Activity: "Aim warm-up", Duration: "20 min", Difficulty: model.DifficultyLow},
							{Activity: "Ranked match", Duration: "40 min", Difficulty: model.DifficultyHigh},
						},
					},
					{
						Day:      "Wednesday",
						Duration: "1h",
						Activity: "Warm-up: stretch\nStudy: VOD review\nRanked Games: 2 matches",
					},
				},
			},
		},
	}
}

func TestTotalExerciseCount(t *testing.T) {
	// 结构化2个 + 自由文本3段
	assert.Equal(t, 5, TotalExerciseCount(testSchedule()))
	assert.Equal(t, 0, TotalExerciseCount(nil))
	assert.Equal(t, 0, TotalExerciseCount(&model.Schedule{}))
}

func TestPlanCompletionPercent(t *testing.T) {
	schedule := testSchedule()

	assert.Equal(t, 0, PlanCompletionPercent(schedule, nil))
	assert.Equal(t, 40, PlanCompletionPercent(schedule, []string{"w1-d1-e0", "w1-d1-e1"}))

	all := []string{"w1-d1-e0", "w1-d1-e1", "w1-d3-e0", "w1-d3-e1", "w1-d3-e2"}
	assert.Equal(t, 100, PlanCompletionPercent(schedule, all))

	// 空日程不得除零
	assert.Equal(t, 0, PlanCompletionPercent(&model.Schedule{}, []string{"x"}))
}

func TestSegmentActivityProperty(t *testing.T) {
	raw := "Warm-up: stretch\nStudy: VOD review\nRanked Games: 2 matches"
	segments := segmentActivity(raw)

	require.Len(t, segments, 3)
	assert.Equal(t, "Warm-up", segments[0].Marker)
	assert.Equal(t, "Study", segments[1].Marker)
	assert.Equal(t, "Ranked Games", segments[2].Marker)
	assert.Equal(t, "stretch", segments[0].Content)
}

func TestSegmentActivityNoMarkers(t *testing.T) {
	segments := segmentActivity("Free play session")
	require.Len(t, segments, 1)
	assert.Equal(t, "Free play session", segments[0].Content)

	assert.Empty(t, segmentActivity(""))
	assert.Empty(t, segmentActivity("   "))
}

func TestSegmentActivitySkipsEmptySegments(t *testing.T) {
	// 关键字后无内容的段不计
	segments := segmentActivity("Warm-up: stretch\nStudy:")
	require.Len(t, segments, 1)
	assert.Equal(t, "Warm-up", segments[0].Marker)
}

func TestExercisesForDayStructured(t *testing.T) {
	schedule := testSchedule()
	exercises := ExercisesForDay(&schedule.Weeks[0], 1, 1)

	require.Len(t, exercises, 2)
	assert.Equal(t, "w1-d1-e0", exercises[0].ID)
	assert.Equal(t, "w1-d1-e1", exercises[1].ID)
	assert.Equal(t, model.DifficultyLow, exercises[0].Difficulty)
}

func TestExercisesForDayFreeText(t *testing.T) {
	schedule := testSchedule()
	exercises := ExercisesForDay(&schedule.Weeks[0], 1, 3)

	require.Len(t, exercises, 3)
	assert.Equal(t, "Warm-up", exercises[0].Activity)
	assert.Equal(t, "stretch", exercises[0].Description)
	assert.Equal(t, "1h", exercises[0].Duration)
	assert.Equal(t, model.DifficultyMedium, exercises[0].Difficulty)
	assert.Equal(t, "w1-d3-e2", exercises[2].ID)
}

func TestExercisesForDayMissing(t *testing.T) {
	schedule := testSchedule()
	assert.Empty(t, ExercisesForDay(&schedule.Weeks[0], 1, 5))
}

func TestDailyCompletion(t *testing.T) {
	schedule := testSchedule()
	exercises := ExercisesForDay(&schedule.Weeks[0], 1, 1)

	assert.Equal(t, 0, DailyCompletion(exercises, nil))
	assert.Equal(t, 50, DailyCompletion(exercises, []string{"w1-d1-e0"}))
	assert.Equal(t, 100, DailyCompletion(exercises, []string{"w1-d1-e0", "w1-d1-e1"}))
	assert.Equal(t, 0, DailyCompletion(nil, []string{"w1-d1-e0"}))
}

func TestExerciseByID(t *testing.T) {
	schedule := testSchedule()

	ex, ok := ExerciseByID(schedule, "w1-d3-e1")
	require.True(t, ok)
	assert.Equal(t, "Study", ex.Activity)

	_, ok = ExerciseByID(schedule, "w9-d1-e0")
	assert.False(t, ok)

	_, ok = ExerciseByID(schedule, "not-an-id")
	assert.False(t, ok)
}

func TestDayTitle(t *testing.T) {
	week := &model.Week{
		WeekNumber: 1,
		DailyRoutine: []model.DayRoutine{
			{Day: "Monday", Theme: "Entry Duels", Exercises: []model.Exercise{{Activity: "Aim drills"}}},
			{Day: "Tuesday", Exercises: []model.Exercise{{Activity: "VOD session"}}},
			{Day: "Wednesday", Exercises: []model.Exercise{{Activity: "Ranked queue"}}},
			{Day: "Thursday", Exercises: []model.Exercise{{Activity: "Deep breathing for extended tournament play"}}},
			{Day: "Friday", Activity: "Free play session"},
		},
	}

	assert.Equal(t, "Entry Duels", DayTitle(week, 1))
	assert.Equal(t, "VOD Review", DayTitle(week, 2))
	assert.Equal(t, "Ranked Games", DayTitle(week, 3))
	// 无关键词且首名过长，回退旧标题表
	assert.Equal(t, "Rest", DayTitle(week, 4))
	// 仅有自由文本，同样回退旧标题表
	assert.Equal(t, "Team Play", DayTitle(week, 5))
	// 当天完全无安排
	assert.Equal(t, "Rest", DayTitle(week, 6))
}

func TestDayTitleNoRoutine(t *testing.T) {
	assert.Equal(t, "Training", DayTitle(nil, 1))
	assert.Equal(t, "Training", DayTitle(&model.Week{}, 1))
}
