package model

import "time"

type Role string

const (
	RoleUser         Role = "USER"
	RoleStoreManager Role = "STORE_MANAGER"
	RoleAdmin        Role = "ADMIN"
)

// 不正な値はUSERに落とす
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStoreManager:
		return RoleStoreManager
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	FullName     string `gorm:"type:varchar(255);not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Contact      string `gorm:"type:varchar(255)"`
	Location     string `gorm:"type:varchar(255)"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'"`
	TokenVersion int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
