package domain

import "time"

// Post 表示用户发布的帖子。
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`

	Author *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// PostUpdate 描述一次部分更新，nil 字段保持不变。
type PostUpdate struct {
	Title   *string
	Content *string
}

func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil
}
