package services

import (
	"time"

	"blog-platform-api/models"
	"blog-platform-api/repositories"

	"github.com/google/uuid"
)

type PostService interface {
	ListPosts(params models.PostListParams) ([]models.Post, error)
	GetPost(identity models.Identity, id string) (*models.Post, error)
	MyPosts(identity models.Identity) ([]models.Post, error)
	CreatePost(identity models.Identity, input models.CreatePostInput) (*models.Post, error)
	UpdatePost(identity models.Identity, id string, input models.UpdatePostInput) (*models.Post, error)
	DeletePost(identity models.Identity, id string) error
}

type postService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	guard       Guard
}

func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, guard Guard) PostService {
	return &postService{postRepo: postRepo, commentRepo: commentRepo, guard: guard}
}

// ListPosts is a public read: published posts, newest first.
func (s *postService) ListPosts(params models.PostListParams) ([]models.Post, error) {
	return s.postRepo.ListPublished(params.Limit, params.Offset)
}

// GetPost hides unpublished posts from everyone but their author and admins,
// reporting them as not found rather than forbidden.
func (s *postService) GetPost(identity models.Identity, id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &models.NotFoundError{Resource: "post", ID: id}
	}

	if !post.Published && !identity.Owns(post.AuthorID) && !identity.IsAdmin() {
		return nil, &models.NotFoundError{Resource: "post", ID: id}
	}

	return post, nil
}

func (s *postService) MyPosts(identity models.Identity) ([]models.Post, error) {
	if identity.Anonymous {
		return nil, models.ErrUnauthenticated
	}
	return s.postRepo.ListByAuthor(identity.UserID)
}

func (s *postService) CreatePost(identity models.Identity, input models.CreatePostInput) (*models.Post, error) {
	if err := s.guard.Require(identity, ActionCreatePost, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		Excerpt:   input.Excerpt,
		Published: input.Published,
		AuthorID:  identity.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) UpdatePost(identity models.Identity, id string, input models.UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &models.NotFoundError{Resource: "post", ID: id}
	}

	if err := s.guard.Require(identity, ActionUpdatePost, post.AuthorID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes the post and its comments; orphaned comments would be
// unreachable through the API.
func (s *postService) DeletePost(identity models.Identity, id string) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return &models.NotFoundError{Resource: "post", ID: id}
	}

	if err := s.guard.Require(identity, ActionDeletePost, post.AuthorID); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByPost(id); err != nil {
		return err
	}

	return s.postRepo.Delete(id)
}
