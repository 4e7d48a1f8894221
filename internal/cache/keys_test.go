package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBounds() SweepBounds {
	return SweepBounds{MaxPages: 10, LimitStep: 10, MaxLimit: 100}
}

func TestKeys_Deterministic(t *testing.T) {
	assert.Equal(t, "posts:list:page=2:limit=20", PostsListKey(2, 20))
	assert.Equal(t, "posts:detail:7", PostDetailKey(7))
	assert.Equal(t, "comments:list:post=7:page=1:limit=10", CommentsListKey(7, 1, 10))
	assert.Equal(t, "comments:detail:42", CommentDetailKey(42))
}

func TestInvalidator_SweepBounds(t *testing.T) {
	mem := NewMemoryCache()
	inv := NewInvalidator(mem, testBounds())
	ctx := context.Background()

	// all keys inside the swept bounds
	for page := 1; page <= 10; page++ {
		for limit := 10; limit <= 100; limit += 10 {
			err := mem.Set(ctx, PostsListKey(page, limit), []byte("x"), time.Minute)
			require.NoError(t, err)
		}
	}
	// keys outside the bounds survive the sweep until their TTL runs out
	require.NoError(t, mem.Set(ctx, PostsListKey(11, 10), []byte("x"), time.Minute))
	require.NoError(t, mem.Set(ctx, PostsListKey(1, 15), []byte("x"), time.Minute))

	err := inv.SweepPostsList(ctx)
	require.NoError(t, err)

	for page := 1; page <= 10; page++ {
		for limit := 10; limit <= 100; limit += 10 {
			b, err := mem.Get(ctx, PostsListKey(page, limit))
			require.NoError(t, err)
			assert.Nil(t, b, fmt.Sprintf("ключ page=%d limit=%d должен быть удален", page, limit))
		}
	}

	b, err := mem.Get(ctx, PostsListKey(11, 10))
	require.NoError(t, err)
	assert.NotNil(t, b)

	b, err = mem.Get(ctx, PostsListKey(1, 15))
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestInvalidator_MissingKeysAreNoop(t *testing.T) {
	mem := NewMemoryCache()
	inv := NewInvalidator(mem, testBounds())
	ctx := context.Background()

	// nothing was ever cached, composite invalidation must not fail
	assert.NoError(t, inv.PostRelated(ctx, 1))
	assert.NoError(t, inv.CommentRelated(ctx, 42, 1))
	assert.NoError(t, inv.SweepPostsList(ctx))
	assert.NoError(t, inv.SweepCommentsList(ctx, 1))
	assert.NoError(t, inv.PostDetail(ctx, 99))
	assert.NoError(t, inv.CommentDetail(ctx, 99))
}

func TestInvalidator_PostRelated(t *testing.T) {
	mem := NewMemoryCache()
	inv := NewInvalidator(mem, testBounds())
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, PostDetailKey(7), []byte("post"), time.Minute))
	require.NoError(t, mem.Set(ctx, PostsListKey(1, 10), []byte("list"), time.Minute))
	require.NoError(t, mem.Set(ctx, CommentsListKey(7, 1, 10), []byte("comments"), time.Minute))
	// another post's caches stay put
	require.NoError(t, mem.Set(ctx, PostDetailKey(8), []byte("other"), time.Minute))
	require.NoError(t, mem.Set(ctx, CommentsListKey(8, 1, 10), []byte("other"), time.Minute))

	require.NoError(t, inv.PostRelated(ctx, 7))

	for _, key := range []string{PostDetailKey(7), PostsListKey(1, 10), CommentsListKey(7, 1, 10)} {
		b, err := mem.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, b, key)
	}

	for _, key := range []string{PostDetailKey(8), CommentsListKey(8, 1, 10)} {
		b, err := mem.Get(ctx, key)
		require.NoError(t, err)
		assert.NotNil(t, b, key)
	}
}

func TestInvalidator_CommentRelated(t *testing.T) {
	mem := NewMemoryCache()
	inv := NewInvalidator(mem, testBounds())
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, CommentDetailKey(42), []byte("comment"), time.Minute))
	require.NoError(t, mem.Set(ctx, CommentsListKey(7, 2, 20), []byte("comments"), time.Minute))
	require.NoError(t, mem.Set(ctx, PostsListKey(1, 10), []byte("posts"), time.Minute))

	require.NoError(t, inv.CommentRelated(ctx, 42, 7))

	b, err := mem.Get(ctx, CommentDetailKey(42))
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = mem.Get(ctx, CommentsListKey(7, 2, 20))
	require.NoError(t, err)
	assert.Nil(t, b)

	// posts lists are not part of comment-related invalidation
	b, err = mem.Get(ctx, PostsListKey(1, 10))
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestMemoryCache_TTL(t *testing.T) {
	mem := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "k", []byte("v"), 10*time.Millisecond))

	b, err := mem.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), b)

	time.Sleep(20 * time.Millisecond)

	b, err = mem.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, b)
}
