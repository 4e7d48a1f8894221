package cache

import (
	"context"
	"fmt"
)

// Ключи кеша - единое место, чтобы не расползались по коду.

func PostsListKey(page, limit int) string {
	return fmt.Sprintf("posts:list:page=%d:limit=%d", page, limit)
}

func PostDetailKey(postID int64) string {
	return fmt.Sprintf("posts:detail:%d", postID)
}

func CommentsListKey(postID int64, page, limit int) string {
	return fmt.Sprintf("comments:list:post=%d:page=%d:limit=%d", postID, page, limit)
}

func CommentDetailKey(commentID int64) string {
	return fmt.Sprintf("comments:detail:%d", commentID)
}

// SweepBounds ограничивает перебор ключей списков при инвалидации
type SweepBounds struct {
	MaxPages  int
	LimitStep int
	MaxLimit  int
}

// Invalidator удаляет ключи, устаревшие после мутации.
//
// Списочные ключи параметризованы произвольной парой (page, limit), поэтому
// перечислить все когда-либо записанные ключи невозможно. Вместо учёта
// записанных ключей выполняется ограниченный перебор: page в [1, MaxPages],
// limit в [LimitStep, MaxLimit] с шагом LimitStep. Списки, закешированные с
// параметрами вне этих границ, остаются устаревшими до истечения TTL -
// осознанный компромисс между стоимостью инвалидации и учётом ключей.
type Invalidator struct {
	cache  Cache
	bounds SweepBounds
}

func NewInvalidator(c Cache, b SweepBounds) *Invalidator {
	return &Invalidator{cache: c, bounds: b}
}

func (i *Invalidator) sweepKeys(build func(page, limit int) string) []string {
	var keys []string
	for page := 1; page <= i.bounds.MaxPages; page++ {
		for limit := i.bounds.LimitStep; limit <= i.bounds.MaxLimit; limit += i.bounds.LimitStep {
			keys = append(keys, build(page, limit))
		}
	}
	return keys
}

// SweepPostsList удаляет списочные ключи постов в пределах границ перебора
func (i *Invalidator) SweepPostsList(ctx context.Context) error {
	return i.cache.Del(ctx, i.sweepKeys(PostsListKey)...)
}

// SweepCommentsList удаляет списочные ключи комментариев поста
func (i *Invalidator) SweepCommentsList(ctx context.Context, postID int64) error {
	return i.cache.Del(ctx, i.sweepKeys(func(page, limit int) string {
		return CommentsListKey(postID, page, limit)
	})...)
}

// PostDetail удаляет точечный ключ поста
func (i *Invalidator) PostDetail(ctx context.Context, postID int64) error {
	return i.cache.Del(ctx, PostDetailKey(postID))
}

// CommentDetail удаляет точечный ключ комментария
func (i *Invalidator) CommentDetail(ctx context.Context, commentID int64) error {
	return i.cache.Del(ctx, CommentDetailKey(commentID))
}

// PostRelated - составная инвалидация: деталь поста, перебор списков постов
// и перебор списков комментариев этого поста
func (i *Invalidator) PostRelated(ctx context.Context, postID int64) error {
	keys := []string{PostDetailKey(postID)}
	keys = append(keys, i.sweepKeys(PostsListKey)...)
	keys = append(keys, i.sweepKeys(func(page, limit int) string {
		return CommentsListKey(postID, page, limit)
	})...)
	return i.cache.Del(ctx, keys...)
}

// CommentRelated - составная инвалидация: деталь комментария и перебор
// списков комментариев его поста
func (i *Invalidator) CommentRelated(ctx context.Context, commentID, postID int64) error {
	keys := []string{CommentDetailKey(commentID)}
	keys = append(keys, i.sweepKeys(func(page, limit int) string {
		return CommentsListKey(postID, page, limit)
	})...)
	return i.cache.Del(ctx, keys...)
}
