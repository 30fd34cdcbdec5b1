package repositories

import (
	"sort"
	"sync"

	"blog-platform-api/models"
)

// MemoryStore backs the demo deployment: the same data the platform would keep
// in postgres, held in maps behind a RWMutex. Reads run concurrently, writes
// serialize. All methods hand out copies so callers never alias store state.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	posts    map[string]models.Post
	comments map[string]models.Comment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		posts:    make(map[string]models.Post),
		comments: make(map[string]models.Comment),
	}
}

func (s *MemoryStore) Users() UserRepository       { return &memoryUserRepository{store: s} }
func (s *MemoryStore) Posts() PostRepository       { return &memoryPostRepository{store: s} }
func (s *MemoryStore) Comments() CommentRepository { return &memoryCommentRepository{store: s} }

type memoryUserRepository struct {
	store *MemoryStore
}

// Create enforces email uniqueness under the write lock, the same guarantee
// the unique index gives the gorm backend. Two concurrent registrations of
// one email cannot both succeed.
func (r *memoryUserRepository) Create(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return &models.ConflictError{Message: "email already registered"}
		}
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(id string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, user := range r.store.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) GetAll() ([]models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	users := make([]models.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *memoryUserRepository) Update(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

type memoryPostRepository struct {
	store *MemoryStore
}

func (r *memoryPostRepository) Create(post *models.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.posts[post.ID] = *post
	return nil
}

func (r *memoryPostRepository) GetByID(id string) (*models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	post, ok := r.store.posts[id]
	if !ok {
		return nil, nil
	}
	return &post, nil
}

func (r *memoryPostRepository) ListPublished(limit, offset int) ([]models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	posts := make([]models.Post, 0, len(r.store.posts))
	for _, post := range r.store.posts {
		if post.Published {
			posts = append(posts, post)
		}
	}
	sortPostsNewestFirst(posts)
	// Negative paging values come straight off the wire; treat them like the
	// gorm backend does and ignore them.
	if offset < 0 {
		offset = 0
	}
	if offset >= len(posts) {
		return []models.Post{}, nil
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *memoryPostRepository) ListByAuthor(authorID string) ([]models.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	posts := make([]models.Post, 0)
	for _, post := range r.store.posts {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (r *memoryPostRepository) Update(post *models.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.posts[post.ID] = *post
	return nil
}

func (r *memoryPostRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.posts, id)
	return nil
}

func (r *memoryPostRepository) CountByAuthor(authorID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, post := range r.store.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func sortPostsNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

type memoryCommentRepository struct {
	store *MemoryStore
}

func (r *memoryCommentRepository) Create(comment *models.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.comments[comment.ID] = *comment
	return nil
}

func (r *memoryCommentRepository) GetByID(id string) (*models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	comment, ok := r.store.comments[id]
	if !ok {
		return nil, nil
	}
	return &comment, nil
}

func (r *memoryCommentRepository) ListByPost(postID string) ([]models.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	comments := make([]models.Comment, 0)
	for _, comment := range r.store.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *memoryCommentRepository) CountByPost(postID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, comment := range r.store.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *memoryCommentRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.comments, id)
	return nil
}

func (r *memoryCommentRepository) DeleteByPost(postID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, comment := range r.store.comments {
		if comment.PostID == postID {
			delete(r.store.comments, id)
		}
	}
	return nil
}

func (r *memoryCommentRepository) CountByAuthor(authorID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, comment := range r.store.comments {
		if comment.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}
