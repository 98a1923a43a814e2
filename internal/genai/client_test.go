package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"esports_coach_backend/internal/config"
	"esports_coach_backend/internal/model"
	"esports_coach_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// modelReply 构造线上API的成功响应
func modelReply(text string) []byte {
	resp := map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{
						map[string]interface{}{"text": text},
					},
				},
			},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

// newTestClient 指向假服务器，休眠替换为仅记录时长
func newTestClient(serverURL string, sleeps *[]time.Duration) *Client {
	c := NewClient(config.AIConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
	c.sleep = func(ctx context.Context, d time.Duration) error {
		if sleeps != nil {
			*sleeps = append(*sleeps, d)
		}
		return nil
	}
	return c
}

const fpsAnalysisJSON = `{
	"summary": "Solid aim, weak rotations.",
	"strengths": ["Crosshair placement"],
	"weaknesses": ["Over-rotating"],
	"key_moments": [{"timestamp": "0:45", "description": "Double kill entry"}],
	"improvement_plan": "Drill angle clearing.",
	"mechanics": {"aim_rating": 85, "movement_rating": 72, "positioning_rating": 65, "crosshair_placement": "Good", "reaction_time": "185ms"},
	"economy": {"rating": 70, "analysis": "Mistimed force buys."},
	"rounds_analyzed": [{"round_number": 1, "outcome": "Win", "kda": "2/0/0", "highlight": "Pistol multi-kill"}]
}`

func TestAnalyzeVideoParsesFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply("```json\n" + fpsAnalysisJSON + "\n```"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	result, err := c.AnalyzeVideo(context.Background(), []byte("video"), "video/mp4", "CS2 ranked match", nil)

	require.NoError(t, err)
	assert.Equal(t, "Solid aim, weak rotations.", result.Summary)
	assert.Equal(t, 85, result.Mechanics.AimRating)
	require.NotNil(t, result.Economy)
	assert.Equal(t, 70, result.Economy.Rating)
}

func TestAnalyzeVideoHonorsServerRetryDelay(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","details":[{"retryDelay": "31s"}]}}`))
			return
		}
		w.Write(modelReply(fpsAnalysisJSON))
	}))
	defer server.Close()

	var sleeps []time.Duration
	var statuses []string
	c := newTestClient(server.URL, &sleeps)

	result, err := c.AnalyzeVideo(context.Background(), []byte("video"), "video/mp4", "Valorant VOD", func(msg string) {
		statuses = append(statuses, msg)
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, attempts)
	// 31s 提示 + 2s 余量
	require.Len(t, sleeps, 1)
	assert.GreaterOrEqual(t, sleeps[0], 33*time.Second)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Quota exceeded. Waiting 33s before retrying...", statuses[0])
}

func TestAnalyzeVideoExponentialFallbackWithoutHint(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
			return
		}
		w.Write(modelReply(fpsAnalysisJSON))
	}))
	defer server.Close()

	var sleeps []time.Duration
	c := newTestClient(server.URL, &sleeps)

	_, err := c.AnalyzeVideo(context.Background(), []byte("video"), "video/mp4", "CS2", nil)

	require.NoError(t, err)
	// 无提示时从5秒起倍增
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, sleeps)
}

func TestAnalyzeVideoExhaustsFiveAttempts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &[]time.Duration{})
	_, err := c.AnalyzeVideo(context.Background(), []byte("video"), "video/mp4", "CS2", nil)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 5, attempts)
}

func TestAnalyzeVideoNonQuotaErrorAbortsImmediately(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	_, err := c.AnalyzeVideo(context.Background(), []byte("video"), "video/mp4", "CS2", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 1, attempts)
}

func TestAnalyzeVideoMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply("I watched the video and it looked great!"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	_, err := c.AnalyzeVideo(context.Background(), []byte("video"), "video/mp4", "CS2", nil)

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAnalyzeVideoSelectsMOBAContract(t *testing.T) {
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompts = append(prompts, req.Contents[0].Parts[0].Text)
		w.Write(modelReply(`{"summary":"ok"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)

	_, err := c.AnalyzeVideo(context.Background(), []byte("v"), "video/mp4", "League of Legends mid lane VOD", nil)
	require.NoError(t, err)
	_, err = c.AnalyzeVideo(context.Background(), []byte("v"), "video/mp4", "CS2 faceit match", nil)
	require.NoError(t, err)

	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "cs_rating")
	assert.Contains(t, prompts[0], "phases_analyzed")
	assert.Contains(t, prompts[1], "aim_rating")
	assert.Contains(t, prompts[1], "rounds_analyzed")
}

func TestSanitizeHistoryDropsLeadingModelTurns(t *testing.T) {
	history := []Turn{
		{Role: "model", Content: "Welcome!"},
		{Role: "user", Content: "How was my aim?"},
		{Role: "model", Content: "Decent."},
	}

	sanitized := SanitizeHistory(history)

	require.Len(t, sanitized, 2)
	assert.Equal(t, "user", sanitized[0].Role)
	assert.Equal(t, "How was my aim?", sanitized[0].Content)
}

func TestSanitizeHistoryAllModelTurns(t *testing.T) {
	assert.Empty(t, SanitizeHistory([]Turn{{Role: "model", Content: "hi"}}))
	assert.Empty(t, SanitizeHistory(nil))
}

func TestChatReturnsReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		// 发送给模型的历史必须以用户轮开始
		assert.Equal(t, "user", req.Contents[0].Role)
		w.Write(modelReply("Work on your crosshair placement."))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	reply := c.Chat(context.Background(), "What should I practice?", []Turn{
		{Role: "model", Content: "Hello!"},
		{Role: "user", Content: "Hi"},
		{Role: "model", Content: "Ready when you are."},
	})

	assert.Equal(t, "Work on your crosshair placement.", reply)
}

func TestChatAbsorbsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	reply := c.Chat(context.Background(), "hello", nil)

	assert.Equal(t, "Sorry, I encountered an error while processing your request.", reply)
}

const planJSON = `{"weeks":[{"week_number":1,"focus":"Aim","daily_routine":[{"day":"Monday","exercises":[{"activity":"Gridshot","duration":"20 min","difficulty":"Low"}]}]}]}`

func TestGenerateTrainingPlanExtractsJSONFromProse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply("Here is your plan:\n" + planJSON + "\nEnjoy!"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	schedule, err := c.GenerateTrainingPlan(context.Background(), "Valorant", model.ProfileAnswers{
		AvailabilityDays:  "3–4",
		AvailabilityHours: "1–2h",
	}, nil)

	require.NoError(t, err)
	require.Len(t, schedule.Weeks, 1)
	assert.Equal(t, "Aim", schedule.Weeks[0].Focus)
	require.Len(t, schedule.Weeks[0].DailyRoutine, 1)
}

func TestGenerateTrainingPlanNoJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply("I cannot generate a plan right now."))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	_, err := c.GenerateTrainingPlan(context.Background(), "CS2", model.ProfileAnswers{}, nil)

	assert.ErrorIs(t, err, ErrInvalidPlanResponse)
}

func TestGenerateTrainingPlanRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("model overloaded"))
			return
		}
		w.Write(modelReply(planJSON))
	}))
	defer server.Close()

	var sleeps []time.Duration
	c := newTestClient(server.URL, &sleeps)
	schedule, err := c.GenerateTrainingPlan(context.Background(), "CS2", model.ProfileAnswers{}, nil)

	require.NoError(t, err)
	assert.Len(t, schedule.Weeks, 1)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{2 * time.Second}, sleeps)
}

func TestGenerateTrainingPlanExhaustsThreeAttempts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &[]time.Duration{})
	_, err := c.GenerateTrainingPlan(context.Background(), "CS2", model.ProfileAnswers{}, nil)

	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 3, attempts)
}

func TestGenerateTrainingPlanNonRetryableAborts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	_, err := c.GenerateTrainingPlan(context.Background(), "CS2", model.ProfileAnswers{}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestThemeInstructionDecisionTable(t *testing.T) {
	cases := []struct {
		days, hours string
		contains    string
	}{
		{"1–2", "<1h", "two consecutive weeks"},
		{"3–4", "1–2h", "two consecutive weeks"},
		{"1–2", "2–4h", "one theme"},
		{"3–4", "+4h", "one theme"},
		{"5–6", "<1h", "1-2 themes"},
		{"Every day", "1–2h", "1-2 themes"},
		{"5–6", "2–4h", "2-3 themes"},
		{"Every day", "+4h", "2-3 themes"},
	}

	for _, c := range cases {
		t.Run(c.days+"_"+c.hours, func(t *testing.T) {
			got := themeInstruction(model.ProfileAnswers{
				AvailabilityDays:  c.days,
				AvailabilityHours: c.hours,
			})
			assert.Contains(t, got, c.contains)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}

func TestExtractJSONObject(t *testing.T) {
	got, ok := extractJSONObject(`prose {"weeks":[]} trailing`)
	require.True(t, ok)
	assert.Equal(t, `{"weeks":[]}`, got)

	_, ok = extractJSONObject("no braces here")
	assert.False(t, ok)
}
