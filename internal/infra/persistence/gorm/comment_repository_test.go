package gormpersistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
)

func TestGormCommentRepository_CreateChecksReferences(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, NewGormUserRepository(db), "alice")
	post := &domain.Post{Title: "t", Content: "c", UserID: alice.ID}
	require.NoError(t, NewGormPostRepository(db).Create(context.Background(), post))
	repo := NewGormCommentRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Comment{Content: "x", PostID: 99, UserID: alice.ID})
	assert.ErrorIs(t, err, repository.ErrPostNotFound, "帖子不存在时应返回 ErrPostNotFound")

	err = repo.Create(ctx, &domain.Comment{Content: "x", PostID: post.ID, UserID: 99})
	assert.ErrorIs(t, err, repository.ErrUserNotFound, "作者不存在时应返回 ErrUserNotFound")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGormCommentRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, NewGormUserRepository(db), "alice")
	post := &domain.Post{Title: "t", Content: "c", UserID: alice.ID}
	require.NoError(t, NewGormPostRepository(db).Create(context.Background(), post))
	repo := NewGormCommentRepository(db)
	ctx := context.Background()

	comment := &domain.Comment{Content: "first", PostID: post.ID, UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, comment))
	require.NoError(t, repo.Create(ctx, &domain.Comment{Content: "second", PostID: post.ID, UserID: alice.ID}))
	assert.False(t, comment.CreatedAt.IsZero())

	list, total, err := repo.ListByPost(ctx, post.ID, domain.NewPage(1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Content)

	updated, err := repo.UpdateContent(ctx, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, comment.CreatedAt.Unix(), updated.CreatedAt.Unix())

	_, err = repo.UpdateContent(ctx, 99, "nope")
	assert.ErrorIs(t, err, repository.ErrCommentNotFound)

	require.NoError(t, repo.Delete(ctx, comment.ID))
	_, err = repo.FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, repository.ErrCommentNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, comment.ID), repository.ErrCommentNotFound)
}

// alice 创建用户、帖子、评论后删除用户，三者 ID 都应为 1，删除后全部消失
func TestScenario_AliceLifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserRepository(db)
	posts := NewGormPostRepository(db)
	comments := NewGormCommentRepository(db)
	ctx := context.Background()

	alice := createUser(t, users, "alice")
	post := &domain.Post{Title: "Hello", Content: "World", UserID: alice.ID}
	require.NoError(t, posts.Create(ctx, post))
	comment := &domain.Comment{Content: "Nice", PostID: post.ID, UserID: alice.ID}
	require.NoError(t, comments.Create(ctx, comment))

	assert.Equal(t, uint(1), alice.ID)
	assert.Equal(t, uint(1), post.ID)
	assert.Equal(t, uint(1), comment.ID)

	require.NoError(t, users.Delete(ctx, alice.ID))

	_, err := posts.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
	_, err = comments.FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, repository.ErrCommentNotFound)
}
