package dto

import (
	"time"

	"team-project-api/internal/domain"
)

// CreateCommentRequest 在帖子下评论，帖子 ID 取自路径
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  uint   `json:"user_id" binding:"required,gt=0"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
	}
}

func NewCommentResponses(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
