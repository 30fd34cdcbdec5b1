package services

import (
	"testing"
	"time"

	"blog-platform-api/models"
	"blog-platform-api/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postServiceFixture struct {
	posts    PostService
	comments CommentService
	store    *repositories.MemoryStore

	alice models.Identity
	bob   models.Identity
	admin models.Identity
}

func newPostServiceFixture(t *testing.T) *postServiceFixture {
	t.Helper()

	store := repositories.NewMemoryStore()
	guard := NewGuard()

	f := &postServiceFixture{
		posts:    NewPostService(store.Posts(), store.Comments(), guard),
		comments: NewCommentService(store.Comments(), store.Posts(), guard),
		store:    store,
		alice:    models.Identity{UserID: "alice", Email: "alice@example.com", Role: models.RoleUser},
		bob:      models.Identity{UserID: "bob", Email: "bob@example.com", Role: models.RoleUser},
		admin:    models.Identity{UserID: "root", Email: "admin@example.com", Role: models.RoleAdmin},
	}

	for _, identity := range []models.Identity{f.alice, f.bob, f.admin} {
		now := time.Now()
		require.NoError(t, store.Users().Create(&models.User{
			ID:        identity.UserID,
			Email:     identity.Email,
			Name:      identity.UserID,
			Role:      identity.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}))
	}

	return f
}

func TestPostService_AnonymousCannotCreate(t *testing.T) {
	f := newPostServiceFixture(t)

	_, err := f.posts.CreatePost(models.Anonymous(), models.CreatePostInput{
		Title:   "Hello",
		Content: "World",
	})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestPostService_NonAuthorCannotDelete(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.posts.CreatePost(f.alice, models.CreatePostInput{
		Title:     "Alice's post",
		Content:   "content",
		Published: true,
	})
	require.NoError(t, err)

	err = f.posts.DeletePost(f.bob, post.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// The post is unchanged.
	got, err := f.posts.GetPost(f.bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "Alice's post", got.Title)
}

func TestPostService_AdminCanDeleteAnyPost(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.posts.CreatePost(f.alice, models.CreatePostInput{
		Title:     "Alice's post",
		Content:   "content",
		Published: true,
	})
	require.NoError(t, err)

	require.NoError(t, f.posts.DeletePost(f.admin, post.ID))

	_, err = f.posts.GetPost(f.admin, post.ID)
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestPostService_DeleteCascadesComments(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.posts.CreatePost(f.alice, models.CreatePostInput{
		Title:     "Commented",
		Content:   "content",
		Published: true,
	})
	require.NoError(t, err)

	_, err = f.comments.CreateComment(f.bob, models.CreateCommentInput{
		PostID:  post.ID,
		Content: "nice post",
	})
	require.NoError(t, err)

	require.NoError(t, f.posts.DeletePost(f.alice, post.ID))

	count, err := f.comments.CountByPost(post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostService_DraftsHiddenFromStrangers(t *testing.T) {
	f := newPostServiceFixture(t)

	draft, err := f.posts.CreatePost(f.alice, models.CreatePostInput{
		Title:   "Draft",
		Content: "unfinished",
	})
	require.NoError(t, err)

	var notFound *models.NotFoundError

	_, err = f.posts.GetPost(f.bob, draft.ID)
	assert.ErrorAs(t, err, &notFound)

	_, err = f.posts.GetPost(models.Anonymous(), draft.ID)
	assert.ErrorAs(t, err, &notFound)

	// Author and admin still see it.
	got, err := f.posts.GetPost(f.alice, draft.ID)
	require.NoError(t, err)
	assert.False(t, got.Published)

	_, err = f.posts.GetPost(f.admin, draft.ID)
	require.NoError(t, err)

	// And it never shows up in the public listing.
	listed, err := f.posts.ListPosts(models.PostListParams{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestPostService_UpdateAppliesOnlyProvidedFields(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.posts.CreatePost(f.alice, models.CreatePostInput{
		Title:     "Original",
		Content:   "content",
		Excerpt:   "short",
		Published: false,
	})
	require.NoError(t, err)

	published := true
	updated, err := f.posts.UpdatePost(f.alice, post.ID, models.UpdatePostInput{
		Published: &published,
	})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "short", updated.Excerpt)
	assert.True(t, updated.Published)
	assert.False(t, updated.UpdatedAt.Before(post.UpdatedAt))
}

func TestPostService_DeleteUnknownPost(t *testing.T) {
	f := newPostServiceFixture(t)

	err := f.posts.DeletePost(f.alice, uuid.NewString())
	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCommentService_DeleteAuthorOnly(t *testing.T) {
	f := newPostServiceFixture(t)

	post, err := f.posts.CreatePost(f.alice, models.CreatePostInput{
		Title:     "Post",
		Content:   "content",
		Published: true,
	})
	require.NoError(t, err)

	comment, err := f.comments.CreateComment(f.bob, models.CreateCommentInput{
		PostID:  post.ID,
		Content: "bob's comment",
	})
	require.NoError(t, err)

	// Neither the post author nor an admin may remove someone else's comment.
	assert.ErrorIs(t, f.comments.DeleteComment(f.alice, comment.ID), models.ErrForbidden)
	assert.ErrorIs(t, f.comments.DeleteComment(f.admin, comment.ID), models.ErrForbidden)

	require.NoError(t, f.comments.DeleteComment(f.bob, comment.ID))
}
