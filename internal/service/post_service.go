package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"goblog/internal/cache"
	"goblog/internal/config"
	"goblog/internal/models"
	"goblog/internal/repository"
	"goblog/internal/storage"
	"goblog/internal/validation"
)

type CreatePostRequest struct {
	AuthorID int64
	Title    string
	Content  string
}

// UpdatePostRequest - частичное обновление: применяются только переданные
// поля, nil означает "не менять"
type UpdatePostRequest struct {
	PostID       int64
	ActingUserID int64
	Title        *string
	Content      *string
}

type PostService interface {
	GetPosts(ctx context.Context, page, limit int) (*models.PostPage, error)
	GetPost(ctx context.Context, postID int64) (*models.Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, actingUserID int64) error
	AddImage(ctx context.Context, postID, actingUserID int64, fileName string, file io.Reader, size int64) (*models.Image, error)
	DeleteImage(ctx context.Context, postID, imageID, actingUserID int64) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	cache     cache.Cache
	inv       *cache.Invalidator
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, store storage.Storage, c cache.Cache, inv *cache.Invalidator, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   store,
		cache:     c,
		inv:       inv,
		cfg:       cfg,
	}
}

// GetPosts - сквозное чтение: промах кеша уходит в БД и наполняет кеш
func (s *postService) GetPosts(ctx context.Context, page, limit int) (*models.PostPage, error) {
	key := cache.PostsListKey(page, limit)

	b, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if b != nil {
		var cached models.PostPage
		if err := json.Unmarshal(b, &cached); err == nil {
			return &cached, nil
		}
	}

	offset := (page - 1) * limit

	posts, err := s.postRepo.GetPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.PostPage{
		Posts:      posts,
		Pagination: models.NewPagination(page, limit, total),
	}

	b, err = json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации страницы постов: %w", err)
	}
	if err := s.cache.Set(ctx, key, b, s.cfg.Cache.ListTTL); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *postService) GetPost(ctx context.Context, postID int64) (*models.Post, error) {
	key := cache.PostDetailKey(postID)

	b, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if b != nil {
		var cached models.Post
		if err := json.Unmarshal(b, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	b, err = json.Marshal(post)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации поста: %w", err)
	}
	if err := s.cache.Set(ctx, key, b, s.cfg.Cache.DetailTTL); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	err := validation.RequireFields(map[string]string{
		"title":   req.Title,
		"content": req.Content,
	})
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: req.AuthorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}

	if err := validation.ValidatePost(post); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if err := s.inv.SweepPostsList(ctx); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if err := validation.CheckOwnership(post.AuthorID, req.ActingUserID); err != nil {
		return nil, err
	}

	// apply only the fields present in the payload
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, validation.RequireFields(map[string]string{"title": ""})
		}
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, validation.RequireFields(map[string]string{"content": ""})
		}
		post.Content = *req.Content
	}

	if err := validation.ValidatePost(post); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if err := s.inv.PostDetail(ctx, post.PostID); err != nil {
		return nil, err
	}
	if err := s.inv.SweepPostsList(ctx); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, actingUserID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := validation.CheckOwnership(post.AuthorID, actingUserID); err != nil {
		return err
	}

	images, err := s.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}
	for _, image := range images {
		if err := s.storage.DeleteImage(ctx, image.ObjectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
		}
	}

	// comments and image rows go away with the post (FK cascade)
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	return s.inv.PostRelated(ctx, postID)
}

func (s *postService) AddImage(ctx context.Context, postID, actingUserID int64, fileName string, file io.Reader, size int64) (*models.Image, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := validation.CheckOwnership(post.AuthorID, actingUserID); err != nil {
		return nil, err
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения в MinIO: %w", err)
	}

	image := &models.Image{
		PostID:     postID,
		ObjectName: objectName,
		ImageURL:   imageURL,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", delErr)
		}
		return nil, fmt.Errorf("ошибка сохранения изображения в БД: %w", err)
	}

	if err := s.inv.PostDetail(ctx, postID); err != nil {
		return nil, err
	}

	return image, nil
}

func (s *postService) DeleteImage(ctx context.Context, postID, imageID, actingUserID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := validation.CheckOwnership(post.AuthorID, actingUserID); err != nil {
		return err
	}

	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	return s.inv.PostDetail(ctx, postID)
}
