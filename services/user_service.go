package services

import (
	"time"

	"blog-platform-api/models"
	"blog-platform-api/repositories"
)

type UserService interface {
	GetUser(id string) (*models.User, error)
	ListUsers(identity models.Identity) ([]models.User, error)
	UpdateUser(identity models.Identity, id string, input models.UpdateUserInput) (*models.User, error)
	DeleteUser(identity models.Identity, id string) error
}

type userService struct {
	userRepo    repositories.UserRepository
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	guard       Guard
}

func NewUserService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, guard Guard) UserService {
	return &userService{userRepo: userRepo, postRepo: postRepo, commentRepo: commentRepo, guard: guard}
}

// GetUser is ungated: author info is embedded in public posts and comments.
func (s *userService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) ListUsers(identity models.Identity) ([]models.User, error) {
	if err := s.guard.Require(identity, ActionManageUsers, ""); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll()
}

func (s *userService) UpdateUser(identity models.Identity, id string, input models.UpdateUserInput) (*models.User, error) {
	if err := s.guard.Require(identity, ActionManageUsers, ""); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &models.NotFoundError{Resource: "user", ID: id}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, &models.ValidationError{Fields: map[string][]string{
				"role": {"role must be user or admin"},
			}}
		}
		user.Role = models.UserRole(*input.Role)
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser rejects deletion while the user still owns posts or comments, so
// tokens and resources never point at a missing author.
func (s *userService) DeleteUser(identity models.Identity, id string) error {
	if err := s.guard.Require(identity, ActionManageUsers, ""); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return &models.NotFoundError{Resource: "user", ID: id}
	}

	postCount, err := s.postRepo.CountByAuthor(id)
	if err != nil {
		return err
	}
	commentCount, err := s.commentRepo.CountByAuthor(id)
	if err != nil {
		return err
	}
	if postCount > 0 || commentCount > 0 {
		return &models.ConflictError{Message: "user still owns posts or comments"}
	}

	return s.userRepo.Delete(id)
}
