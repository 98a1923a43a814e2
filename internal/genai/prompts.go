package genai

import (
	"fmt"
	"strings"

	"esports_coach_backend/internal/model"
)

// mobaHintKeywords 命中任一则按MOBA结构输出，否则默认FPS结构。
// 自由文本提示的分类只是尽力而为
var mobaHintKeywords = []string{"league", "lol", "moba", "dota", "smite"}

func isMOBAHint(hint string) bool {
	lower := strings.ToLower(hint)
	for _, kw := range mobaHintKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

const mobaContract = `{
  "summary": "string",
  "strengths": ["string"],
  "weaknesses": ["string"],
  "key_moments": [{"timestamp": "m:ss", "description": "string"}],
  "improvement_plan": "string",
  "mechanics": {
    "cs_rating": 0,
    "trading_rating": 0,
    "skill_shots": "string",
    "combos": "string",
    "reaction_time": "string"
  },
  "macro": {
    "vision_score_rating": 0,
    "map_awareness": "string",
    "objective_control": "string",
    "rotation_quality": "string"
  },
  "phases_analyzed": [{"phase": "string", "performance": "string", "notes": "string"}]
}`

const fpsContract = `{
  "summary": "string",
  "strengths": ["string"],
  "weaknesses": ["string"],
  "key_moments": [{"timestamp": "m:ss", "description": "string"}],
  "improvement_plan": "string",
  "mechanics": {
    "aim_rating": 0,
    "movement_rating": 0,
    "positioning_rating": 0,
    "crosshair_placement": "string",
    "reaction_time": "string"
  },
  "economy": {"rating": 0, "analysis": "string"},
  "rounds_analyzed": [{"round_number": 1, "outcome": "Win|Loss", "kda": "k/d/a", "highlight": "string"}]
}`

// buildAnalysisPrompt 依据上下文提示选择输出结构并拼装分析提示词
func buildAnalysisPrompt(contextHint string) string {
	contract := fpsContract
	if isMOBAHint(contextHint) {
		contract = mobaContract
	}

	return fmt.Sprintf(`You are a professional esports coach analyzing a gameplay recording.

Context from the player: %s

Watch the attached video carefully and produce a detailed, honest performance analysis.
Reference concrete in-game moments with timestamps. Rate mechanics on a 0-100 scale.

Respond with ONLY a JSON object in exactly this shape, no prose before or after:
%s`, contextHint, contract)
}

// themeInstruction 依据可用时间决定每周主题密度
func themeInstruction(answers model.ProfileAnswers) string {
	daysHigh := answers.AvailabilityDays == "5–6" || answers.AvailabilityDays == "Every day"
	hoursHigh := answers.AvailabilityHours == "2–4h" || answers.AvailabilityHours == "+4h"

	switch {
	case !daysHigh && !hoursHigh:
		return "The player has very limited time. Each theme (focus area) should span two consecutive weeks so progress is achievable."
	case !daysHigh && hoursHigh:
		return "Use exactly one theme (focus area) per week."
	case daysHigh && !hoursHigh:
		return "Use 1-2 themes (focus areas) per week."
	default:
		return "The player has plenty of time. Use 2-3 themes (focus areas) per week."
	}
}

// buildPlanPrompt 拼装四周训练计划生成提示词
func buildPlanPrompt(game string, answers model.ProfileAnswers) string {
	var profile strings.Builder
	fmt.Fprintf(&profile, "Game: %s\n", game)
	fmt.Fprintf(&profile, "Days per week available: %s\n", answers.AvailabilityDays)
	fmt.Fprintf(&profile, "Hours per session: %s\n", answers.AvailabilityHours)
	if answers.GoalMain != "" {
		fmt.Fprintf(&profile, "Main goal: %s\n", answers.GoalMain)
	}
	if answers.GoalSpecific != "" {
		fmt.Fprintf(&profile, "Specific goal: %s\n", answers.GoalSpecific)
	}
	if rank := answers.Rank(); rank != "Unranked" {
		fmt.Fprintf(&profile, "Current rank: %s\n", rank)
	}
	if answers.Limitations != "" {
		fmt.Fprintf(&profile, "Limitations: %s\n", answers.Limitations)
	}

	return fmt.Sprintf(`You are a professional %s coach. Create a personalized 4-week training schedule for this player:

%s
%s

Give every day a varied, specific title describing what the player actually works on.
Do NOT reuse generic titles like "Training Day" or "Practice" across days.

Respond with ONLY a JSON object:
{
  "weeks": [
    {
      "week_number": 1,
      "focus": "string",
      "daily_routine": [
        {
          "day": "Monday",
          "theme": "string",
          "exercises": [
            {"activity": "string", "description": "string", "duration": "string", "difficulty": "Low|Medium|High"}
          ]
        }
      ]
    }
  ]
}`, game, profile.String(), themeInstruction(answers))
}

const chatSystemPrompt = "You are an esports coach discussing a player's analyzed gameplay. Be specific, constructive, and concise."
