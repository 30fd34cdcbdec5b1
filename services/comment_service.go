package services

import (
	"time"

	"blog-platform-api/models"
	"blog-platform-api/repositories"

	"github.com/google/uuid"
)

type CommentService interface {
	ListByPost(postID string) ([]models.Comment, error)
	CountByPost(postID string) (int64, error)
	CreateComment(identity models.Identity, input models.CreateCommentInput) (*models.Comment, error)
	DeleteComment(identity models.Identity, id string) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	guard       Guard
}

func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, guard Guard) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo, guard: guard}
}

func (s *commentService) ListByPost(postID string) ([]models.Comment, error) {
	return s.commentRepo.ListByPost(postID)
}

func (s *commentService) CountByPost(postID string) (int64, error) {
	return s.commentRepo.CountByPost(postID)
}

func (s *commentService) CreateComment(identity models.Identity, input models.CreateCommentInput) (*models.Comment, error) {
	if err := s.guard.Require(identity, ActionCreateComment, ""); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &models.NotFoundError{Resource: "post", ID: input.PostID}
	}
	// Commenting follows post visibility: drafts accept comments only from
	// whoever can see them.
	if !post.Published && !identity.Owns(post.AuthorID) && !identity.IsAdmin() {
		return nil, &models.NotFoundError{Resource: "post", ID: input.PostID}
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    input.PostID,
		AuthorID:  identity.UserID,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) DeleteComment(identity models.Identity, id string) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return &models.NotFoundError{Resource: "comment", ID: id}
	}

	if err := s.guard.Require(identity, ActionDeleteComment, comment.AuthorID); err != nil {
		return err
	}

	return s.commentRepo.Delete(id)
}
