package mock

import (
	"fmt"
	"strings"
	"sync"

	"timeline/app/models"
	"timeline/app/repositories"
)

type PostRepository struct {
	posts []*models.Post
	mutex sync.RWMutex
}

type ThreadRepository struct {
	threads map[string]models.Thread
	mutex   sync.Mutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{}
}

func NewThreadRepository() *ThreadRepository {
	return &ThreadRepository{threads: make(map[string]models.Thread)}
}

// PostRepository implementation
func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.posts {
		if existing.ID == post.ID {
			return repositories.ErrDuplicate
		}
	}
	m.posts = append(m.posts, post)
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, post := range m.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, len(m.posts))
	copy(posts, m.posts)
	return posts, nil
}

// ThreadRepository implementation
func (m *ThreadRepository) Load(sessionID string, postID int) (models.Thread, error) {
	return m.Update(sessionID, postID, func(t models.Thread) (models.Thread, error) {
		return t, nil
	})
}

func (m *ThreadRepository) Update(sessionID string, postID int, fn repositories.ThreadFunc) (models.Thread, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := fmt.Sprintf("%s:%d", sessionID, postID)
	current, ok := m.threads[key]
	if !ok {
		current = models.NewThread()
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	m.threads[key] = next
	return next, nil
}

func (m *ThreadRepository) DeleteSession(sessionID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	prefix := sessionID + ":"
	for key := range m.threads {
		if strings.HasPrefix(key, prefix) {
			delete(m.threads, key)
		}
	}
	return nil
}
