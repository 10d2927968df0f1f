package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
	"team-project-api/internal/repository/mocks"
	"team-project-api/internal/service"
)

func newPostService(t *testing.T) (*service.PostService, *mocks.PostRepository, *mocks.UserRepository) {
	posts := mocks.NewPostRepository(t)
	users := mocks.NewUserRepository(t)
	return service.NewPostService(passthroughTx(t), posts, users), posts, users
}

func TestPostService_Create(t *testing.T) {
	postService, posts, _ := newPostService(t)
	posts.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
		return p.Title == "Hello" && p.Content == "World" && p.UserID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Post).ID = 1
	}).Return(nil).Once()

	post, err := postService.Create(context.Background(), 1, "Hello", "World")

	require.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
}

func TestPostService_Create_UnknownUser(t *testing.T) {
	postService, posts, _ := newPostService(t)
	posts.On("Create", mock.Anything, mock.Anything).Return(repository.ErrUserNotFound).Once()

	_, err := postService.Create(context.Background(), 9, "Hello", "World")

	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestPostService_Create_Validation(t *testing.T) {
	postService, _, _ := newPostService(t)
	ctx := context.Background()

	_, err := postService.Create(ctx, 1, "", "World")
	assert.ErrorIs(t, err, service.ErrInvalidInput, "标题为空")

	_, err = postService.Create(ctx, 1, strings.Repeat("t", 201), "World")
	assert.ErrorIs(t, err, service.ErrInvalidInput, "标题过长")

	_, err = postService.Create(ctx, 1, "Hello", "   ")
	assert.ErrorIs(t, err, service.ErrInvalidInput, "内容为空")
}

func TestPostService_ListByUser_UnknownUser(t *testing.T) {
	postService, _, users := newPostService(t)
	users.On("FindByID", mock.Anything, uint(5)).Return(nil, repository.ErrUserNotFound).Once()

	_, _, err := postService.ListByUser(context.Background(), 5, domain.NewPage(1, 20))

	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestPostService_ListByUser(t *testing.T) {
	postService, posts, users := newPostService(t)
	page := domain.NewPage(1, 20)
	users.On("FindByID", mock.Anything, uint(1)).Return(&domain.User{ID: 1}, nil).Once()
	posts.On("List", mock.Anything, uint(1), page).Return([]domain.Post{{ID: 1, UserID: 1}}, int64(1), nil).Once()

	list, total, err := postService.ListByUser(context.Background(), 1, page)

	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), total)
}

func TestPostService_Update(t *testing.T) {
	postService, posts, _ := newPostService(t)
	ctx := context.Background()

	_, err := postService.Update(ctx, 1, domain.PostUpdate{})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	update := domain.PostUpdate{Title: strPtr("New")}
	posts.On("Update", mock.Anything, uint(1), update).Return(&domain.Post{ID: 1, Title: "New"}, nil).Once()
	posts.On("Update", mock.Anything, uint(2), update).Return(nil, repository.ErrPostNotFound).Once()

	post, err := postService.Update(ctx, 1, update)
	require.NoError(t, err)
	assert.Equal(t, "New", post.Title)

	_, err = postService.Update(ctx, 2, update)
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestPostService_Delete(t *testing.T) {
	postService, posts, _ := newPostService(t)
	posts.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	posts.On("Delete", mock.Anything, uint(2)).Return(repository.ErrPostNotFound).Once()

	assert.NoError(t, postService.Delete(context.Background(), 1))
	assert.ErrorIs(t, postService.Delete(context.Background(), 2), service.ErrPostNotFound)
}
