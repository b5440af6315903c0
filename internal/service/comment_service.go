package service

import (
	"context"
	"fmt"
	"log"

	"reading-log-server/internal/model"
	"reading-log-server/internal/ports"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepository ports.CommentRepository
	cacheRepo         ports.CacheRepository
}

func NewCommentService(commentRepository ports.CommentRepository, cacheRepo ports.CacheRepository) *CommentService {
	return &CommentService{
		commentRepository: commentRepository,
		cacheRepo:         cacheRepo,
	}
}

// CreateComment сохраняет комментарий и сбрасывает кэш поста,
// чтобы счетчик комментариев не отставал
func (s *CommentService) CreateComment(ctx context.Context, userUUID, postUUID, content string) (*model.Comment, error) {
	comment := &model.Comment{
		UUID:     uuid.New().String(),
		PostUUID: postUUID,
		UserUUID: userUUID,
		Content:  content,
	}

	created, err := s.commentRepository.Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("[CommentService] ошибка создания комментария: %w", err)
	}

	if err := s.cacheRepo.DeletePost(ctx, postUUID); err != nil {
		log.Printf("[CommentService] не удалось инвалидировать кэш: %v", err)
	}

	return created, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, commentUUID, content string) (*model.Comment, error) {
	updated, err := s.commentRepository.Update(ctx, commentUUID, content)
	if err != nil {
		return nil, fmt.Errorf("[CommentService] комментарий не найден: %w", err)
	}

	return updated, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentUUID string) error {
	deleted, err := s.commentRepository.Delete(ctx, commentUUID)
	if err != nil {
		return fmt.Errorf("[CommentService] не удалось удалить комментарий: %w", err)
	}
	if !deleted {
		return fmt.Errorf("[CommentService] комментарий не найден")
	}

	return nil
}

func (s *CommentService) ListByPost(ctx context.Context, postUUID string) ([]model.CommentForPost, error) {
	comments, err := s.commentRepository.ListByPost(ctx, postUUID)
	if err != nil {
		return nil, fmt.Errorf("[CommentService] не удалось получить комментарии поста: %w", err)
	}

	if comments == nil {
		comments = []model.CommentForPost{}
	}
	return comments, nil
}

func (s *CommentService) ListAll(ctx context.Context) ([]model.Comment, error) {
	comments, err := s.commentRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("[CommentService] не удалось получить комментарии: %w", err)
	}

	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}
