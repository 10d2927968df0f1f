// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// 字段长度上限，与表结构保持一致。
const (
	MaxUsernameLength     = 50
	MaxEmailLength        = 100
	MaxPasswordHashLength = 255
	MaxPostTitleLength    = 200
)

// User 表示应用程序中的用户。
// 删除用户时，其名下的 Post 和 Comment 一并删除 (外键定义在子表上)。
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex:idx_users_username;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex:idx_users_email;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // bcrypt 哈希，不序列化
	CreatedAt    time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`
}

// UserUpdate 描述一次部分更新，nil 字段保持不变。
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty 报告是否没有任何字段需要更新。
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}
