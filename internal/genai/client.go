// Package genai 封装对外部生成式AI服务的调用：
// 视频分析、对话、训练计划生成，以及围绕它们的有界退避重试
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"esports_coach_backend/internal/config"
	"esports_coach_backend/internal/model"
	"esports_coach_backend/pkg/backoff"
	"esports_coach_backend/pkg/logger"
	"esports_coach_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// StatusFunc 重试等待前向调用方透出人类可读的进度
type StatusFunc func(message string)

// Turn 一轮对话，Role 取 "user" 或 "model"
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	mu         sync.RWMutex
	cfg        config.AIConfig
	httpClient *http.Client

	// 测试用休眠替身，nil 时走真实时钟
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// UpdateConfig 配置热更新时替换密钥和模型名，进行中的请求不受影响
func (c *Client) UpdateConfig(cfg config.AIConfig) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

func (c *Client) config() config.AIConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// ---- 线上API的请求/响应结构 ----

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generateContent 单次调用模型，返回拼接后的文本。
// 限流响应转成带等待提示的配额错误，其余非200保留原始负载
func (c *Client) generateContent(ctx context.Context, modelName string, req generateRequest) (string, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	cfg := c.config()
	url := fmt.Sprintf("%s/models/%s:generateContent", cfg.BaseURL, modelName)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", newQuotaError(string(body))
	}
	if resp.StatusCode != http.StatusOK {
		if strings.Contains(string(body), "RESOURCE_EXHAUSTED") {
			return "", newQuotaError(string(body))
		}
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("AI returned no candidates")
	}

	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}

// AnalyzeVideo 上传视频给模型分析，最多尝试5次。
// 配额错误按服务端提示（外加2秒余量）或从5秒起倍增的退避等待；
// 其余错误立即失败。重试耗尽后给出可区分的容量错误
func (c *Client) AnalyzeVideo(ctx context.Context, video []byte, mimeType, contextHint string, onStatus StatusFunc) (*model.AnalysisResult, error) {
	prompt := buildAnalysisPrompt(contextHint)
	req := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(video),
				}},
			},
		}},
	}

	start := time.Now()
	text, err := backoff.Do(ctx, backoff.Policy{
		MaxAttempts: 5,
		IsRetryable: func(err error) bool {
			return errors.Is(err, ErrQuotaExhausted)
		},
		DelayFor: func(attempt int, err error) time.Duration {
			if hint, ok := RetryHint(err); ok {
				// 服务端给了建议等待时长，外加安全余量
				return hint + 2*time.Second
			}
			return backoff.Exponential(5 * time.Second)(attempt, err)
		},
		OnStatus: func(delay time.Duration, attempt int) {
			monitoring.AIRetryCounter.WithLabelValues("analyze_video").Inc()
			if onStatus != nil {
				onStatus(fmt.Sprintf("Quota exceeded. Waiting %ds before retrying...", int(delay.Seconds())))
			}
		},
		Sleep: c.sleep,
	}, func(ctx context.Context) (string, error) {
		return c.generateContent(ctx, c.visionModel(), req)
	})

	if err != nil {
		monitoring.ObserveAICall("analyze_video", "error", start)
		if errors.Is(err, ErrQuotaExhausted) {
			return nil, fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
		}
		return nil, err
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &result); err != nil {
		monitoring.ObserveAICall("analyze_video", "malformed", start)
		logger.Log.Error("AI analysis response is not valid JSON",
			zap.String("raw", text),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	monitoring.ObserveAICall("analyze_video", "success", start)
	return &result, nil
}

// SanitizeHistory 去掉开头的非用户轮次。
// 历史必须以用户轮开始，否则上游服务直接报错
func SanitizeHistory(history []Turn) []Turn {
	for i, t := range history {
		if t.Role == "user" {
			return history[i:]
		}
	}
	return nil
}

// Chat 围绕一次分析的多轮对话。任何失败都吸收为对用户安全的文案，
// 单轮出错不应中断整个会话流
func (c *Client) Chat(ctx context.Context, message string, history []Turn) string {
	start := time.Now()

	var contents []content
	for _, t := range SanitizeHistory(history) {
		contents = append(contents, content{
			Role:  t.Role,
			Parts: []part{{Text: t.Content}},
		})
	}
	contents = append(contents, content{
		Role:  "user",
		Parts: []part{{Text: message}},
	})

	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: chatSystemPrompt}}},
		Contents:          contents,
	}

	text, err := c.generateContent(ctx, c.config().Model, req)
	if err != nil {
		monitoring.ObserveAICall("chat", "error", start)
		logger.Log.Warn("AI chat turn failed", zap.Error(err))
		return "Sorry, I encountered an error while processing your request."
	}

	monitoring.ObserveAICall("chat", "success", start)
	return strings.TrimSpace(text)
}

// planRetryIndicators 错误信息中暗示限流/配额/服务端故障的片段
var planRetryIndicators = []string{"429", "quota", "rate limit", "RESOURCE_EXHAUSTED", "UNAVAILABLE", "overloaded"}

func isPlanRetryable(err error) bool {
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	msg := err.Error()
	for _, ind := range planRetryIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	// 5xx 服务端错误
	for code := 500; code <= 599; code++ {
		if strings.Contains(msg, fmt.Sprintf("(status %d)", code)) {
			return true
		}
	}
	return false
}

// GenerateTrainingPlan 生成4周训练计划，最多尝试3次，
// 限流/配额/5xx类错误按2秒起倍增退避重试
func (c *Client) GenerateTrainingPlan(ctx context.Context, game string, answers model.ProfileAnswers, onStatus StatusFunc) (*model.Schedule, error) {
	prompt := buildPlanPrompt(game, answers)
	req := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt}},
		}},
	}

	start := time.Now()
	text, err := backoff.Do(ctx, backoff.Policy{
		MaxAttempts: 3,
		IsRetryable: isPlanRetryable,
		DelayFor:    backoff.Exponential(2 * time.Second),
		OnStatus: func(delay time.Duration, attempt int) {
			monitoring.AIRetryCounter.WithLabelValues("generate_plan").Inc()
			if onStatus != nil {
				onStatus(fmt.Sprintf("AI service busy. Waiting %ds before retrying...", int(delay.Seconds())))
			}
		},
		Sleep: c.sleep,
	}, func(ctx context.Context) (string, error) {
		return c.generateContent(ctx, c.config().Model, req)
	})

	if err != nil {
		monitoring.ObserveAICall("generate_plan", "error", start)
		return nil, err
	}

	raw, ok := extractJSONObject(stripCodeFence(text))
	if !ok {
		monitoring.ObserveAICall("generate_plan", "malformed", start)
		logger.Log.Error("AI plan response contains no JSON object", zap.String("raw", text))
		return nil, ErrInvalidPlanResponse
	}

	var schedule model.Schedule
	if err := json.Unmarshal([]byte(raw), &schedule); err != nil {
		monitoring.ObserveAICall("generate_plan", "malformed", start)
		logger.Log.Error("AI plan response is not valid JSON",
			zap.String("raw", text),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlanResponse, err)
	}
	if len(schedule.Weeks) == 0 {
		return nil, fmt.Errorf("%w: schedule has no weeks", ErrInvalidPlanResponse)
	}

	monitoring.ObserveAICall("generate_plan", "success", start)
	return &schedule, nil
}

// visionModel 视频分析模型，未单独配置时退回对话模型
func (c *Client) visionModel() string {
	cfg := c.config()
	if cfg.VisionModel != "" {
		return cfg.VisionModel
	}
	return cfg.Model
}
