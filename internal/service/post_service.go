package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"

	"reading-log-server/internal/model"
	"reading-log-server/internal/ports"

	"github.com/google/uuid"
)

type PostService struct {
	postRepository ports.PostRepository
	userRepository ports.UserRepository
	cacheRepo      ports.CacheRepository
	mediaStorage   ports.MediaStorage
	pageSize       int
}

func NewPostService(
	postRepository ports.PostRepository,
	userRepository ports.UserRepository,
	cacheRepo ports.CacheRepository,
	mediaStorage ports.MediaStorage,
	pageSize int,
) *PostService {
	return &PostService{
		postRepository: postRepository,
		userRepository: userRepository,
		cacheRepo:      cacheRepo,
		mediaStorage:   mediaStorage,
		pageSize:       pageSize,
	}
}

// CreatePost сохраняет пост. Если пришло изображение, оно сначала
// уходит в хранилище и пост получает его публичный путь.
// Пустой authorName заполняется именем автора поста
func (s *PostService) CreatePost(ctx context.Context, post *model.Post, image *model.ImageUpload) (*model.Post, error) {
	post.UUID = uuid.New().String()

	if !post.AuthorName.Valid {
		user, err := s.userRepository.FindByUUID(ctx, post.UserUUID)
		if err != nil {
			return nil, fmt.Errorf("[PostService] пользователь не найден: %w", err)
		}
		post.AuthorName = sql.NullString{String: user.Username, Valid: true}
	}

	if image != nil {
		key := uuid.New().String() + filepath.Ext(image.Filename)
		if err := s.mediaStorage.UploadObject(ctx, key, image.ContentType, image.Body); err != nil {
			return nil, fmt.Errorf("[PostService] не удалось загрузить изображение: %w", err)
		}
		post.ImageURL = MediaPublicPath(key)
	}

	created, err := s.postRepository.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("[PostService] ошибка создания поста: %w", err)
	}

	created.Likes = []string{}
	return created, nil
}

// GetPost отдает пост из кэша, при промахе идет в БД и кэширует результат
func (s *PostService) GetPost(ctx context.Context, postUUID string) (*model.Post, error) {
	cached, err := s.cacheRepo.GetPost(ctx, postUUID)
	if err != nil {
		// кэш не причина отказывать, идем в БД
		log.Printf("[PostService] ошибка чтения из кэша: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	post, err := s.postRepository.GetByUUID(ctx, postUUID)
	if err != nil {
		return nil, fmt.Errorf("[PostService] пост не найден: %w", err)
	}

	if err := s.fillLikes(ctx, post); err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetPost(ctx, post); err != nil {
		log.Printf("[PostService] не удалось закэшировать пост: %v", err)
	}

	return post, nil
}

// GetFeed : страница ленты и общее число страниц
func (s *PostService) GetFeed(ctx context.Context, page int) ([]model.Post, int, error) {
	if page < 1 {
		page = 1
	}

	posts, total, err := s.postRepository.ListFeed(ctx, page, s.pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("[PostService] не удалось получить ленту: %w", err)
	}

	for i := range posts {
		if err := s.fillLikes(ctx, &posts[i]); err != nil {
			return nil, 0, err
		}
	}

	return posts, s.totalPages(total), nil
}

// GetUserPosts : посты одного пользователя, той же страницей что и лента
func (s *PostService) GetUserPosts(ctx context.Context, userUUID string, page int) ([]model.Post, int, error) {
	if page < 1 {
		page = 1
	}

	posts, total, err := s.postRepository.ListByUser(ctx, userUUID, page, s.pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("[PostService] не удалось получить посты пользователя: %w", err)
	}

	for i := range posts {
		if err := s.fillLikes(ctx, &posts[i]); err != nil {
			return nil, 0, err
		}
	}

	return posts, s.totalPages(total), nil
}

// UpdatePost перезаписывает непустые поля и инвалидирует кэш.
// Менять пост может только его автор
func (s *PostService) UpdatePost(ctx context.Context, postUUID, userUUID string, update *model.PostUpdate, image *model.ImageUpload) (*model.Post, error) {
	post, err := s.postRepository.GetByUUID(ctx, postUUID)
	if err != nil {
		return nil, fmt.Errorf("[PostService] пост не найден: %w", err)
	}

	if post.UserUUID != userUUID {
		return nil, fmt.Errorf("[PostService] нельзя изменять чужой пост")
	}

	if update.BookTitle != "" {
		post.BookTitle = update.BookTitle
	}
	if update.Content != "" {
		post.Content = sql.NullString{String: update.Content, Valid: true}
	}
	if update.AuthorName != "" {
		post.AuthorName = sql.NullString{String: update.AuthorName, Valid: true}
	}
	if update.ReadingProgress != nil {
		post.ReadingProgress = sql.NullInt64{Int64: *update.ReadingProgress, Valid: true}
	}

	if image != nil {
		key := uuid.New().String() + filepath.Ext(image.Filename)
		if err := s.mediaStorage.UploadObject(ctx, key, image.ContentType, image.Body); err != nil {
			return nil, fmt.Errorf("[PostService] не удалось загрузить изображение: %w", err)
		}
		s.deleteImage(ctx, post.ImageURL)
		post.ImageURL = MediaPublicPath(key)
	} else if update.ImageURL != "" {
		post.ImageURL = update.ImageURL
	}

	if err := s.postRepository.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("[PostService] не удалось обновить пост: %w", err)
	}

	if err := s.cacheRepo.DeletePost(ctx, postUUID); err != nil {
		log.Printf("[PostService] не удалось инвалидировать кэш: %v", err)
	}

	if err := s.fillLikes(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost удаляет пост вместе с изображением и записью в кэше.
// Удалять пост может только его автор
func (s *PostService) DeletePost(ctx context.Context, postUUID, userUUID string) error {
	post, err := s.postRepository.GetByUUID(ctx, postUUID)
	if err != nil {
		return fmt.Errorf("[PostService] пост не найден: %w", err)
	}

	if post.UserUUID != userUUID {
		return fmt.Errorf("[PostService] нельзя изменять чужой пост")
	}

	if err := s.postRepository.Delete(ctx, postUUID); err != nil {
		return fmt.Errorf("[PostService] не удалось удалить пост: %w", err)
	}

	s.deleteImage(ctx, post.ImageURL)

	if err := s.cacheRepo.DeletePost(ctx, postUUID); err != nil {
		log.Printf("[PostService] не удалось инвалидировать кэш: %v", err)
	}

	return nil
}

// ToggleLike переключает членство пользователя в лайках поста.
// Свой пост лайкать нельзя. Возвращает true, если лайк поставлен
func (s *PostService) ToggleLike(ctx context.Context, postUUID, userUUID string) (bool, error) {
	post, err := s.postRepository.GetByUUID(ctx, postUUID)
	if err != nil {
		return false, fmt.Errorf("[PostService] пост не найден: %w", err)
	}

	if post.UserUUID == userUUID {
		return false, fmt.Errorf("[PostService] нельзя лайкать свой пост")
	}

	liked, err := s.postRepository.HasLike(ctx, postUUID, userUUID)
	if err != nil {
		return false, fmt.Errorf("[PostService] ошибка проверки лайка: %w", err)
	}

	if liked {
		if err := s.postRepository.RemoveLike(ctx, postUUID, userUUID); err != nil {
			return false, fmt.Errorf("[PostService] не удалось удалить лайк: %w", err)
		}
	} else {
		if err := s.postRepository.AddLike(ctx, postUUID, userUUID); err != nil {
			return false, fmt.Errorf("[PostService] не удалось сохранить лайк: %w", err)
		}
	}

	if err := s.cacheRepo.DeletePost(ctx, postUUID); err != nil {
		log.Printf("[PostService] не удалось инвалидировать кэш: %v", err)
	}

	return !liked, nil
}

func (s *PostService) fillLikes(ctx context.Context, post *model.Post) error {
	likes, err := s.postRepository.ListLikes(ctx, post.UUID)
	if err != nil {
		return fmt.Errorf("[PostService] не удалось получить лайки: %w", err)
	}
	if likes == nil {
		likes = []string{}
	}
	post.Likes = likes
	return nil
}

func (s *PostService) totalPages(total int) int {
	pages := total / s.pageSize
	if total%s.pageSize != 0 {
		pages++
	}
	return pages
}

// deleteImage убирает объект из хранилища, если путь указывает в него.
// Ошибка удаления пост не ломает
func (s *PostService) deleteImage(ctx context.Context, imageURL string) {
	key := MediaKeyFromPath(imageURL)
	if key == "" {
		return
	}
	if err := s.mediaStorage.DeleteObject(ctx, key); err != nil {
		log.Printf("[PostService] не удалось удалить изображение %s: %v", key, err)
	}
}
