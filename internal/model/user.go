package model

import (
	"time"
)

type UserRole string

const (
	Player UserRole = "player"
	Admin  UserRole = "admin"
)

// User 平台账号。Level/XP 为账号级进度，满足 0 <= XP < Level*1000
// swagger:model User
type User struct {
	BaseModel
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:100;unique;not null" json:"email"`
	Password      string    `gorm:"size:100;not null" json:"-"`
	Role          UserRole  `gorm:"type:enum('player','admin');default:'player'" json:"role"`
	Level         int       `gorm:"default:1" json:"level"`
	XP            int       `gorm:"default:0" json:"xp"`
	Nickname      string    `gorm:"size:50" json:"nickname"`
	Avatar        string    `gorm:"size:255" json:"avatar"`
	Description   string    `gorm:"type:text" json:"description"`
	Age           int       `gorm:"default:0" json:"age,omitempty"`
	Gender        string    `gorm:"size:20" json:"gender,omitempty"`
	FavoriteGames []string  `gorm:"serializer:json;type:json" json:"favoriteGames"`
	Goals         []string  `gorm:"serializer:json;type:json" json:"goals"`
	Disabled      bool      `gorm:"default:false" json:"disabled"`
	LastLogin     time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen      time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
