package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"esports_coach_backend/internal/model"
	"esports_coach_backend/internal/progression"
	"esports_coach_backend/internal/repository"
	"esports_coach_backend/internal/util"
	"esports_coach_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrAvatarUploadFailed 头像上传失败但其余资料已保存，调用方按部分失败提示
var ErrAvatarUploadFailed = errors.New("failed to upload avatar, but other changes were saved")

const leaderboardCacheKey = "leaderboard:top"
const leaderboardCacheTTL = time.Minute

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
	Redis    *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService, rdb *redis.Client) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
		Redis:    rdb,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

// ProfileUpdateInput 资料编辑表单
type ProfileUpdateInput struct {
	Nickname      string   `json:"nickname"`
	Description   string   `json:"description"`
	Age           int      `json:"age"`
	Gender        string   `json:"gender"`
	FavoriteGames []string `json:"favoriteGames"`
	Goals         []string `json:"goals"`
}

// UpdateProfile 保存资料。头像上传失败不阻塞其余字段的保存，
// 此时返回已保存的用户和 ErrAvatarUploadFailed
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput, avatar io.Reader, avatarName string, avatarSize int64) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	var avatarErr error
	if avatar != nil {
		filename := fmt.Sprintf("avatars/%d-%s%s", userID, model.GenerateUUID(), filepath.Ext(avatarName))
		url, err := s.Storage.Upload(ctx, filename, avatar, avatarSize, util.MimeImage)
		if err != nil {
			logger.Log.Warn("Avatar upload failed, saving remaining profile fields",
				zap.Uint("userID", userID),
				zap.Error(err))
			avatarErr = ErrAvatarUploadFailed
		} else {
			user.Avatar = url
		}
	}

	user.Nickname = input.Nickname
	user.Description = input.Description
	user.Age = input.Age
	user.Gender = input.Gender
	user.FavoriteGames = input.FavoriteGames
	user.Goals = input.Goals

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	return user, avatarErr
}

// ApplyXP 把XP增量结算到账号级进度并落库。
// 返回结算结果，含 LeveledUp 供上层决定如何庆祝
func (s *UserService) ApplyXP(userID uint, delta int) (progression.LevelState, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return progression.LevelState{}, util.ErrUserNotFound
	}

	state := progression.ApplyXPDelta(user.Level, user.XP, delta)
	if err := s.UserRepo.UpdateLevelAndXP(userID, state.Level, state.XP); err != nil {
		return progression.LevelState{}, err
	}

	return state, nil
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	UserID   uint   `json:"userId"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}

// Leaderboard 按等级+XP排序的前N名，Redis缓存一分钟
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("%s:%d", leaderboardCacheKey, limit)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByLevelAndXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		name := u.Nickname
		if name == "" {
			name = u.Name
		}
		entries = append(entries, LeaderboardEntry{
			UserID:   u.ID,
			Nickname: name,
			Avatar:   u.Avatar,
			Level:    u.Level,
			XP:       u.XP,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, cacheKey, data, leaderboardCacheTTL)
		}
	}

	return entries, nil
}
