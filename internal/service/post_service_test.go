package service_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"reading-log-server/internal/model"
	"reading-log-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

// MockPostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	args := m.Called(ctx, post)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) GetByUUID(ctx context.Context, uuid string) (*model.Post, error) {
	args := m.Called(ctx, uuid)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) ListFeed(ctx context.Context, page, limit int) ([]model.Post, int, error) {
	args := m.Called(ctx, page, limit)
	if posts, ok := args.Get(0).([]model.Post); ok {
		return posts, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockPostRepository) ListByUser(ctx context.Context, userUUID string, page, limit int) ([]model.Post, int, error) {
	args := m.Called(ctx, userUUID, page, limit)
	if posts, ok := args.Get(0).([]model.Post); ok {
		return posts, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

func (m *MockPostRepository) ListLikes(ctx context.Context, postUUID string) ([]string, error) {
	args := m.Called(ctx, postUUID)
	if likes, ok := args.Get(0).([]string); ok {
		return likes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) HasLike(ctx context.Context, postUUID, userUUID string) (bool, error) {
	args := m.Called(ctx, postUUID, userUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) AddLike(ctx context.Context, postUUID, userUUID string) error {
	args := m.Called(ctx, postUUID, userUUID)
	return args.Error(0)
}

func (m *MockPostRepository) RemoveLike(ctx context.Context, postUUID, userUUID string) error {
	args := m.Called(ctx, postUUID, userUUID)
	return args.Error(0)
}

// MockCacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetPost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPost(ctx context.Context, uuid string) (*model.Post, error) {
	args := m.Called(ctx, uuid)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCacheRepository) DeletePost(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

// MockMediaStorage
type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) UploadObject(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockMediaStorage) GeneratePresignedGetURL(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// ===== HELPERS =====

func newTestPostService() (*service.PostService, *MockPostRepository, *MockUserRepository, *MockCacheRepository, *MockMediaStorage) {
	mockPostRepo := new(MockPostRepository)
	mockUserRepo := new(MockUserRepository)
	mockCache := new(MockCacheRepository)
	mockStorage := new(MockMediaStorage)

	svc := service.NewPostService(mockPostRepo, mockUserRepo, mockCache, mockStorage, 10)

	return svc, mockPostRepo, mockUserRepo, mockCache, mockStorage
}

// ===== TESTS =====

// пустой authorName заполняется именем автора поста
func TestCreatePost_WithoutImage(t *testing.T) {
	svc, mockPostRepo, mockUserRepo, _, mockStorage := newTestPostService()
	ctx := context.Background()

	post := &model.Post{UserUUID: "u1", BookTitle: "Мастер и Маргарита"}

	mockUserRepo.On("FindByUUID", ctx, "u1").Return(&model.User{UUID: "u1", Username: "reader"}, nil)
	mockPostRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Post) bool {
		return p.UUID != "" && p.BookTitle == "Мастер и Маргарита" && p.AuthorName.String == "reader"
	})).Return(&model.Post{UUID: "p1", UserUUID: "u1", BookTitle: "Мастер и Маргарита"}, nil)

	created, err := svc.CreatePost(ctx, post, nil)

	assert.NoError(t, err)
	assert.Equal(t, "p1", created.UUID)
	assert.NotNil(t, created.Likes)
	mockStorage.AssertNotCalled(t, "UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_WithImage(t *testing.T) {
	svc, mockPostRepo, mockUserRepo, _, mockStorage := newTestPostService()
	ctx := context.Background()

	body := strings.NewReader("image-bytes")
	image := &model.ImageUpload{Filename: "cover.png", ContentType: "image/png", Body: body}

	mockUserRepo.On("FindByUUID", ctx, "u1").Return(&model.User{UUID: "u1", Username: "reader"}, nil)
	mockStorage.On("UploadObject", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".png")
	}), "image/png", body).Return(nil)
	mockPostRepo.On("Create", ctx, mock.MatchedBy(func(p *model.Post) bool {
		return strings.HasPrefix(p.ImageURL, "/api/media/")
	})).Return(&model.Post{UUID: "p1", ImageURL: "/api/media/key.png"}, nil)

	created, err := svc.CreatePost(ctx, &model.Post{UserUUID: "u1", BookTitle: "Идиот"}, image)

	assert.NoError(t, err)
	assert.Equal(t, "/api/media/key.png", created.ImageURL)
	mockStorage.AssertExpectations(t)
}

func TestCreatePost_UploadFails(t *testing.T) {
	svc, mockPostRepo, _, _, mockStorage := newTestPostService()
	ctx := context.Background()

	image := &model.ImageUpload{Filename: "cover.png", ContentType: "image/png", Body: strings.NewReader("x")}

	mockStorage.On("UploadObject", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("s3 down"))

	post := &model.Post{
		BookTitle:  "Обломов",
		AuthorName: sql.NullString{String: "reader", Valid: true},
	}
	_, err := svc.CreatePost(ctx, post, image)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "не удалось загрузить изображение")
	mockPostRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// попадание в кэш не ходит в БД
func TestGetPost_CacheHit(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	cached := &model.Post{UUID: "p1", BookTitle: "Мы", Likes: []string{"u2"}}
	mockCache.On("GetPost", ctx, "p1").Return(cached, nil)

	post, err := svc.GetPost(ctx, "p1")

	assert.NoError(t, err)
	assert.Equal(t, cached, post)
	mockPostRepo.AssertNotCalled(t, "GetByUUID", mock.Anything, mock.Anything)
}

// промах кэша дополняет его из БД
func TestGetPost_CacheMiss(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	fromDB := &model.Post{UUID: "p1", BookTitle: "Мы"}
	mockCache.On("GetPost", ctx, "p1").Return(nil, nil)
	mockPostRepo.On("GetByUUID", ctx, "p1").Return(fromDB, nil)
	mockPostRepo.On("ListLikes", ctx, "p1").Return([]string{"u2", "u3"}, nil)
	mockCache.On("SetPost", ctx, fromDB).Return(nil)

	post, err := svc.GetPost(ctx, "p1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, post.Likes)
	mockCache.AssertExpectations(t)
}

// отказ кэша не отказ сервиса
func TestGetPost_CacheErrorFallsBackToDB(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	fromDB := &model.Post{UUID: "p1"}
	mockCache.On("GetPost", ctx, "p1").Return(nil, errors.New("redis down"))
	mockPostRepo.On("GetByUUID", ctx, "p1").Return(fromDB, nil)
	mockPostRepo.On("ListLikes", ctx, "p1").Return([]string{}, nil)
	mockCache.On("SetPost", ctx, fromDB).Return(errors.New("redis down"))

	post, err := svc.GetPost(ctx, "p1")

	assert.NoError(t, err)
	assert.Equal(t, "p1", post.UUID)
}

func TestGetFeed_TotalPages(t *testing.T) {
	svc, mockPostRepo, _, _, _ := newTestPostService()
	ctx := context.Background()

	posts := []model.Post{{UUID: "p1"}, {UUID: "p2"}}
	mockPostRepo.On("ListFeed", ctx, 1, 10).Return(posts, 25, nil)
	mockPostRepo.On("ListLikes", ctx, "p1").Return([]string{}, nil)
	mockPostRepo.On("ListLikes", ctx, "p2").Return([]string{"u9"}, nil)

	got, totalPages, err := svc.GetFeed(ctx, 0) // страница меньше 1 откатывается к первой

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 3, totalPages) // 25 постов по 10 на страницу
	assert.Equal(t, []string{"u9"}, got[1].Likes)
}

// свой пост лайкать нельзя
func TestToggleLike_OwnPost(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("GetByUUID", ctx, "p1").Return(&model.Post{UUID: "p1", UserUUID: "u1"}, nil)

	_, err := svc.ToggleLike(ctx, "p1", "u1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "нельзя лайкать свой пост")
	mockPostRepo.AssertNotCalled(t, "AddLike", mock.Anything, mock.Anything, mock.Anything)
	mockPostRepo.AssertNotCalled(t, "RemoveLike", mock.Anything, mock.Anything, mock.Anything)
	mockCache.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}

func TestToggleLike_AddsLike(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("GetByUUID", ctx, "p1").Return(&model.Post{UUID: "p1", UserUUID: "u1"}, nil)
	mockPostRepo.On("HasLike", ctx, "p1", "u2").Return(false, nil)
	mockPostRepo.On("AddLike", ctx, "p1", "u2").Return(nil)
	mockCache.On("DeletePost", ctx, "p1").Return(nil)

	liked, err := svc.ToggleLike(ctx, "p1", "u2")

	assert.NoError(t, err)
	assert.True(t, liked)
	mockPostRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestToggleLike_RemovesLike(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("GetByUUID", ctx, "p1").Return(&model.Post{UUID: "p1", UserUUID: "u1"}, nil)
	mockPostRepo.On("HasLike", ctx, "p1", "u2").Return(true, nil)
	mockPostRepo.On("RemoveLike", ctx, "p1", "u2").Return(nil)
	mockCache.On("DeletePost", ctx, "p1").Return(nil)

	liked, err := svc.ToggleLike(ctx, "p1", "u2")

	assert.NoError(t, err)
	assert.False(t, liked)
}

// удаление поста убирает изображение из хранилища и запись из кэша
func TestDeletePost_CleansUp(t *testing.T) {
	svc, mockPostRepo, _, mockCache, mockStorage := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("GetByUUID", ctx, "p1").
		Return(&model.Post{UUID: "p1", UserUUID: "u1", ImageURL: "/api/media/key.png"}, nil)
	mockPostRepo.On("Delete", ctx, "p1").Return(nil)
	mockStorage.On("DeleteObject", ctx, "key.png").Return(nil)
	mockCache.On("DeletePost", ctx, "p1").Return(nil)

	err := svc.DeletePost(ctx, "p1", "u1")

	assert.NoError(t, err)
	mockStorage.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

// чужие URL изображений в хранилище не трогаются
func TestDeletePost_ForeignImageURL(t *testing.T) {
	svc, mockPostRepo, _, mockCache, mockStorage := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("GetByUUID", ctx, "p1").
		Return(&model.Post{UUID: "p1", UserUUID: "u1", ImageURL: "https://example.com/pic.png"}, nil)
	mockPostRepo.On("Delete", ctx, "p1").Return(nil)
	mockCache.On("DeletePost", ctx, "p1").Return(nil)

	err := svc.DeletePost(ctx, "p1", "u1")

	assert.NoError(t, err)
	mockStorage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestUpdatePost_PartialUpdate(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	existing := &model.Post{UUID: "p1", UserUUID: "u1", BookTitle: "Старое название", ImageURL: "/api/media/old.png"}
	mockPostRepo.On("GetByUUID", ctx, "p1").Return(existing, nil)
	mockPostRepo.On("Update", ctx, mock.MatchedBy(func(p *model.Post) bool {
		return p.BookTitle == "Новое название" && p.ImageURL == "/api/media/old.png"
	})).Return(nil)
	mockCache.On("DeletePost", ctx, "p1").Return(nil)
	mockPostRepo.On("ListLikes", ctx, "p1").Return([]string{}, nil)

	post, err := svc.UpdatePost(ctx, "p1", "u1", &model.PostUpdate{BookTitle: "Новое название"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Новое название", post.BookTitle)
	mockCache.AssertExpectations(t)
}

// чужой пост нельзя ни изменить, ни удалить
func TestUpdatePost_NotOwner(t *testing.T) {
	svc, mockPostRepo, _, mockCache, _ := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("GetByUUID", ctx, "p1").
		Return(&model.Post{UUID: "p1", UserUUID: "u1"}, nil)

	_, err := svc.UpdatePost(ctx, "p1", "u2", &model.PostUpdate{BookTitle: "x"}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "нельзя изменять чужой пост")
	mockPostRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockCache.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}

func TestDeletePost_NotOwner(t *testing.T) {
	svc, mockPostRepo, _, mockCache, mockStorage := newTestPostService()
	ctx := context.Background()

	mockPostRepo.On("GetByUUID", ctx, "p1").
		Return(&model.Post{UUID: "p1", UserUUID: "u1", ImageURL: "/api/media/key.png"}, nil)

	err := svc.DeletePost(ctx, "p1", "u2")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "нельзя изменять чужой пост")
	mockPostRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockStorage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	mockCache.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}
