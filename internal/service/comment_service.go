package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"goblog/internal/cache"
	"goblog/internal/config"
	"goblog/internal/models"
	"goblog/internal/repository"
	"goblog/internal/validation"
)

type CreateCommentRequest struct {
	PostID   int64
	AuthorID int64
	Content  string
}

// UpdateCommentRequest - частичное обновление, nil означает "не менять"
type UpdateCommentRequest struct {
	CommentID    int64
	ActingUserID int64
	Content      *string
}

type CommentService interface {
	GetComments(ctx context.Context, postID int64, page, limit int) (*models.CommentPage, error)
	GetComment(ctx context.Context, commentID int64) (*models.Comment, error)
	CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, actingUserID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	cache       cache.Cache
	inv         *cache.Invalidator
	cfg         *config.Config
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, c cache.Cache, inv *cache.Invalidator, cfg *config.Config) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		cache:       c,
		inv:         inv,
		cfg:         cfg,
	}
}

// GetComments - сквозное чтение списка комментариев поста, старые первыми
func (s *commentService) GetComments(ctx context.Context, postID int64, page, limit int) (*models.CommentPage, error) {
	key := cache.CommentsListKey(postID, page, limit)

	b, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if b != nil {
		var cached models.CommentPage
		if err := json.Unmarshal(b, &cached); err == nil {
			return &cached, nil
		}
	}

	// parent must exist before we page over its comments
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	offset := (page - 1) * limit

	comments, err := s.commentRepo.GetPageByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	result := &models.CommentPage{
		Comments:   comments,
		Pagination: models.NewPagination(page, limit, total),
	}

	b, err = json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации страницы комментариев: %w", err)
	}
	if err := s.cache.Set(ctx, key, b, s.cfg.Cache.ListTTL); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *commentService) GetComment(ctx context.Context, commentID int64) (*models.Comment, error) {
	key := cache.CommentDetailKey(commentID)

	b, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if b != nil {
		var cached models.Comment
		if err := json.Unmarshal(b, &cached); err == nil {
			return &cached, nil
		}
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	b, err = json.Marshal(comment)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации комментария: %w", err)
	}
	if err := s.cache.Set(ctx, key, b, s.cfg.Cache.DetailTTL); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	err := validation.RequireFields(map[string]string{
		"content": req.Content,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	}

	if err := validation.ValidateComment(comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.inv.SweepCommentsList(ctx, req.PostID); err != nil {
		return nil, err
	}
	// detail view of the post shows the comment count
	if err := s.inv.PostDetail(ctx, req.PostID); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, req UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}

	if err := validation.CheckOwnership(comment.AuthorID, req.ActingUserID); err != nil {
		return nil, err
	}

	// apply only the fields present in the payload
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, validation.RequireFields(map[string]string{"content": ""})
		}
		comment.Content = *req.Content
	}

	if err := validation.ValidateComment(comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.inv.CommentRelated(ctx, comment.CommentID, comment.PostID); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, actingUserID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if err := validation.CheckOwnership(comment.AuthorID, actingUserID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	if err := s.inv.CommentRelated(ctx, commentID, comment.PostID); err != nil {
		return err
	}

	return s.inv.PostDetail(ctx, comment.PostID)
}
