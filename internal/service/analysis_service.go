package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"esports_coach_backend/internal/config"
	"esports_coach_backend/internal/genai"
	"esports_coach_backend/internal/model"
	"esports_coach_backend/internal/repository"
	"esports_coach_backend/internal/util"
	"esports_coach_backend/pkg/logger"

	"go.uber.org/zap"
)

type AnalysisService struct {
	AnalysisRepo *repository.AnalysisRepository
	ChatRepo     *repository.ChatMessageRepository
	Storage      *StorageService
	AI           *genai.Client
	Upload       config.UploadConfig
	Achievements *AchievementService
}

func NewAnalysisService(
	analysisRepo *repository.AnalysisRepository,
	chatRepo *repository.ChatMessageRepository,
	storage *StorageService,
	ai *genai.Client,
	upload config.UploadConfig,
	achievements *AchievementService,
) *AnalysisService {
	return &AnalysisService{
		AnalysisRepo: analysisRepo,
		ChatRepo:     chatRepo,
		Storage:      storage,
		AI:           ai,
		Upload:       upload,
		Achievements: achievements,
	}
}

// ValidateVideo 上传前的同步校验：容器格式和大小。
// 校验失败不发起任何网络调用
func (s *AnalysisService) ValidateVideo(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return util.ErrInvalidVideoType
	}

	maxBytes := int64(s.Upload.MaxVideoMB) * 1024 * 1024
	if size > maxBytes {
		return util.ErrVideoTooLarge
	}
	return nil
}

// UploadAndAnalyze 完整的分析流程：
// 落临时文件 → ffprobe 元数据+缩略图 → 上传对象存储 → 送模型分析 → 落库。
// 缩略图失败不阻塞分析，记日志后继续
func (s *AnalysisService) UploadAndAnalyze(ctx context.Context, userID uint, video io.Reader, filename string, size int64, game, title, contextHint string, onStatus genai.StatusFunc) (*model.Analysis, error) {
	if err := s.ValidateVideo(filename, size); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, video); err != nil {
		return nil, err
	}

	// 深度校验实际内容而不只是扩展名
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := util.ValidateMimeType(tmp, append([]string{util.MimeOctetStream}, util.AllowedVideoMimeTypes...)); err != nil {
		return nil, util.ErrInvalidVideoType
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		return nil, err
	}

	base := model.GenerateUUID()
	videoKey := fmt.Sprintf("videos/%d/%s%s", userID, base, filepath.Ext(filename))
	contentType := "video/" + strings.TrimPrefix(filepath.Ext(filename), ".")

	videoURL, err := s.Storage.UploadFile(ctx, videoKey, tmp.Name(), contentType)
	if err != nil {
		return nil, err
	}

	thumbnail := s.generateThumbnail(ctx, userID, base, tmp.Name())

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	videoBytes, err := io.ReadAll(tmp)
	if err != nil {
		return nil, err
	}

	hint := contextHint
	if hint == "" {
		hint = game
	}
	result, err := s.AI.AnalyzeVideo(ctx, videoBytes, contentType, hint, onStatus)
	if err != nil {
		return nil, err
	}

	analysis := &model.Analysis{
		UserID:     userID,
		VideoURL:   videoURL,
		VideoTitle: title,
		Game:       game,
		Thumbnail:  thumbnail,
		Duration:   info.Duration,
		Result:     result,
	}

	if err := s.AnalysisRepo.Create(analysis); err != nil {
		return nil, err
	}

	if s.Achievements != nil {
		if total, err := s.AnalysisRepo.CountByUser(userID); err == nil {
			s.Achievements.OnAnalysisCreated(userID, int(total))
		}
	}
	return analysis, nil
}

func (s *AnalysisService) generateThumbnail(ctx context.Context, userID uint, base, videoPath string) string {
	thumbPath := filepath.Join(os.TempDir(), base+".jpg")
	defer os.Remove(thumbPath)

	if err := util.GenerateThumbnail(videoPath, thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("thumbnail generation failed", zap.Error(err))
		return ""
	}

	key := fmt.Sprintf("thumbnails/%d/%s.jpg", userID, base)
	url, err := s.Storage.UploadFile(ctx, key, thumbPath, "image/jpeg")
	if err != nil {
		logger.Log.Warn("thumbnail upload failed", zap.Error(err))
		return ""
	}
	return url
}

func (s *AnalysisService) GetAnalyses(userID uint) ([]model.Analysis, error) {
	return s.AnalysisRepo.FindByUser(userID)
}

func (s *AnalysisService) GetAnalysis(id string, userID uint) (*model.Analysis, error) {
	analysis, err := s.AnalysisRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrAnalysisNotFound
	}
	if analysis.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return analysis, nil
}

func (s *AnalysisService) DeleteAnalysis(id string, userID uint) error {
	if _, err := s.GetAnalysis(id, userID); err != nil {
		return err
	}
	if err := s.ChatRepo.DeleteByAnalysis(id); err != nil {
		return err
	}
	return s.AnalysisRepo.Delete(id)
}

func (s *AnalysisService) GetMessages(analysisID string, userID uint) ([]model.ChatMessage, error) {
	if _, err := s.GetAnalysis(analysisID, userID); err != nil {
		return nil, err
	}
	return s.ChatRepo.FindByAnalysis(analysisID)
}

// Chat 围绕一次分析的对话轮。
// 历史映射为模型轮次后交给AI；单轮失败已在客户端吸收为文案，
// 这里只会因持久化问题报错
func (s *AnalysisService) Chat(ctx context.Context, analysisID string, userID uint, message string) (*model.ChatMessage, error) {
	analysis, err := s.GetAnalysis(analysisID, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.ChatRepo.FindByAnalysis(analysisID)
	if err != nil {
		return nil, err
	}

	history := make([]genai.Turn, 0, len(stored)+1)
	if analysis.Result != nil {
		// 把分析结论作为首个用户轮注入，模型才有讨论上下文
		history = append(history, genai.Turn{
			Role:    "user",
			Content: fmt.Sprintf("Here is my gameplay analysis for %s: %s", analysis.Game, analysis.Result.Summary),
		})
	}
	for _, m := range stored {
		role := "user"
		if m.Sender == "ai" {
			role = "model"
		}
		history = append(history, genai.Turn{Role: role, Content: m.Content})
	}

	if err := s.ChatRepo.Create(&model.ChatMessage{
		AnalysisID: analysisID,
		Sender:     "user",
		Content:    message,
	}); err != nil {
		return nil, err
	}

	replyText := s.AI.Chat(ctx, message, history)

	reply := &model.ChatMessage{
		AnalysisID: analysisID,
		Sender:     "ai",
		Content:    replyText,
	}
	if err := s.ChatRepo.Create(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// IsTerminalCapacityError 供上层区分“稍后再试”和一般失败
func IsTerminalCapacityError(err error) bool {
	return errors.Is(err, genai.ErrCapacityExceeded)
}
