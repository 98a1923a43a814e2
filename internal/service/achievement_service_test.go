package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"esports_coach_backend/internal/model"
)

func TestTierFor(t *testing.T) {
	tiers := []model.Tier{
		{Name: "Bronze", Requirement: 5},
		{Name: "Silver", Requirement: 15},
		{Name: "Gold", Requirement: 30},
		{Name: "Platinum", Requirement: 60},
	}

	tests := []struct {
		progress int
		want     string
	}{
		{0, ""},
		{4, ""},
		{5, "Bronze"},
		{14, "Bronze"},
		{15, "Silver"},
		{59, "Gold"},
		{60, "Platinum"},
		{1000, "Platinum"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tierFor(tiers, tt.progress), "progress=%d", tt.progress)
	}
}

func TestTierForNoTiers(t *testing.T) {
	assert.Equal(t, "", tierFor(nil, 100))
}
