package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"esports_coach_backend/internal/config"
	"esports_coach_backend/internal/genai"
	"esports_coach_backend/internal/util"
	"esports_coach_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

func TestValidateVideoExtensions(t *testing.T) {
	s := &AnalysisService{Upload: config.UploadConfig{MaxVideoMB: 300}}

	for _, name := range []string{"game.mp4", "game.webm", "clip.MOV"} {
		assert.NoError(t, s.ValidateVideo(name, 1024), name)
	}

	for _, name := range []string{"game.avi", "game.mkv", "notes.txt", "game"} {
		err := s.ValidateVideo(name, 1024)
		assert.ErrorIs(t, err, util.ErrInvalidVideoType, name)
	}
}

func TestValidateVideoSizeLimit(t *testing.T) {
	s := &AnalysisService{Upload: config.UploadConfig{MaxVideoMB: 300}}

	limit := int64(300) * 1024 * 1024
	assert.NoError(t, s.ValidateVideo("game.mp4", limit))
	assert.ErrorIs(t, s.ValidateVideo("game.mp4", limit+1), util.ErrVideoTooLarge)
}

func TestIsTerminalCapacityError(t *testing.T) {
	assert.True(t, IsTerminalCapacityError(genai.ErrCapacityExceeded))
	assert.True(t, IsTerminalCapacityError(fmt.Errorf("wrapped: %w", genai.ErrCapacityExceeded)))
	assert.False(t, IsTerminalCapacityError(genai.ErrMalformedResponse))
	assert.False(t, IsTerminalCapacityError(nil))
}
