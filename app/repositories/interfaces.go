package repositories

import "timeline/app/models"

// PostRepository defines the interface for post data access. Posts are
// listed in the order they were created.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	List() ([]*models.Post, error)
}

// ThreadFunc computes the next thread state from the current one.
type ThreadFunc func(models.Thread) (models.Thread, error)

// ThreadRepository stores the comment thread of every (session, post) pair.
// A missing thread reads as models.NewThread().
type ThreadRepository interface {
	Load(sessionID string, postID int) (models.Thread, error)
	Update(sessionID string, postID int, fn ThreadFunc) (models.Thread, error)
	DeleteSession(sessionID string) error
}
