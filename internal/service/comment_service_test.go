package service_test

import (
	"context"
	"errors"
	"testing"

	"reading-log-server/internal/model"
	"reading-log-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, comment)
	if c, ok := args.Get(0).(*model.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, uuid, content string) (*model.Comment, error) {
	args := m.Called(ctx, uuid, content)
	if c, ok := args.Get(0).(*model.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, uuid string) (bool, error) {
	args := m.Called(ctx, uuid)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postUUID string) ([]model.CommentForPost, error) {
	args := m.Called(ctx, postUUID)
	if comments, ok := args.Get(0).([]model.CommentForPost); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentRepository) ListAll(ctx context.Context) ([]model.Comment, error) {
	args := m.Called(ctx)
	if comments, ok := args.Get(0).([]model.Comment); ok {
		return comments, args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestCommentService() (*service.CommentService, *MockCommentRepository, *MockCacheRepository) {
	mockCommentRepo := new(MockCommentRepository)
	mockCache := new(MockCacheRepository)

	svc := service.NewCommentService(mockCommentRepo, mockCache)

	return svc, mockCommentRepo, mockCache
}

// комментарий сбрасывает кэш поста, чтобы счетчик не отставал
func TestCreateComment_InvalidatesPostCache(t *testing.T) {
	svc, mockCommentRepo, mockCache := newTestCommentService()
	ctx := context.Background()

	mockCommentRepo.On("Create", ctx, mock.MatchedBy(func(c *model.Comment) bool {
		return c.UUID != "" && c.PostUUID == "p1" && c.UserUUID == "u1" && c.Content == "Отличная книга"
	})).Return(&model.Comment{UUID: "c1", PostUUID: "p1"}, nil)
	mockCache.On("DeletePost", ctx, "p1").Return(nil)

	comment, err := svc.CreateComment(ctx, "u1", "p1", "Отличная книга")

	assert.NoError(t, err)
	assert.Equal(t, "c1", comment.UUID)
	mockCache.AssertExpectations(t)
}

func TestUpdateComment_NotFound(t *testing.T) {
	svc, mockCommentRepo, _ := newTestCommentService()
	ctx := context.Background()

	mockCommentRepo.On("Update", ctx, "missing", "текст").
		Return(nil, errors.New("no rows"))

	_, err := svc.UpdateComment(ctx, "missing", "текст")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "комментарий не найден")
}

func TestDeleteComment_NotFound(t *testing.T) {
	svc, mockCommentRepo, _ := newTestCommentService()
	ctx := context.Background()

	mockCommentRepo.On("Delete", ctx, "missing").Return(false, nil)

	err := svc.DeleteComment(ctx, "missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "комментарий не найден")
}

func TestDeleteComment_Success(t *testing.T) {
	svc, mockCommentRepo, _ := newTestCommentService()
	ctx := context.Background()

	mockCommentRepo.On("Delete", ctx, "c1").Return(true, nil)

	assert.NoError(t, svc.DeleteComment(ctx, "c1"))
}

// пустой результат выравнивается в пустой срез, а не nil
func TestListByPost_EmptyIsNotNil(t *testing.T) {
	svc, mockCommentRepo, _ := newTestCommentService()
	ctx := context.Background()

	mockCommentRepo.On("ListByPost", ctx, "p1").Return(nil, nil)

	comments, err := svc.ListByPost(ctx, "p1")

	assert.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Len(t, comments, 0)
}
