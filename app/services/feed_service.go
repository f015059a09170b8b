package services

import (
	"fmt"
	"time"

	"timeline/app/i18n"
	"timeline/app/models"
	"timeline/app/repositories"

	"github.com/pkg/errors"
)

// PostView is a post with everything its view renders: the derived time
// labels and the session's comment thread.
type PostView struct {
	*models.Post
	Key           string        `json:"key"`
	PublishedISO  string        `json:"published_iso"`
	AbsoluteLabel string        `json:"absolute_label"`
	RelativeLabel string        `json:"relative_label"`
	Thread        models.Thread `json:"thread"`
	CanSubmit     bool          `json:"can_submit"`
	FormError     string        `json:"form_error,omitempty"`
}

// FeedService handles the feed container: the ordered posts and their views
type FeedService struct {
	postRepo   repositories.PostRepository
	threadRepo repositories.ThreadRepository
	locale     *i18n.Locale
	now        func() time.Time
}

// NewFeedService creates a new FeedService
func NewFeedService(postRepo repositories.PostRepository, threadRepo repositories.ThreadRepository, locale *i18n.Locale) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		threadRepo: threadRepo,
		locale:     locale,
		now:        time.Now,
	}
}

// SetClock replaces the wall clock used for relative labels
func (s *FeedService) SetClock(now func() time.Time) {
	s.now = now
}

// Locale returns the display locale
func (s *FeedService) Locale() *i18n.Locale {
	return s.locale
}

// Seed stores the posts in the given order
func (s *FeedService) Seed(posts []*models.Post) error {
	for _, post := range posts {
		if err := post.Validate(); err != nil {
			return errors.Wrapf(err, "invalid post %d", post.ID)
		}
		if err := s.postRepo.Create(post); err != nil {
			return errors.Wrapf(err, "failed to store post %d", post.ID)
		}
	}
	return nil
}

// Feed builds one view per post, in feed order, for a session
func (s *FeedService) Feed(sessionID string) ([]*PostView, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	now := s.now()
	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		view, err := s.view(sessionID, post, now)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Post builds the view of a single post
func (s *FeedService) Post(sessionID string, id int) (*PostView, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, post, s.now())
}

func (s *FeedService) view(sessionID string, post *models.Post, now time.Time) (*PostView, error) {
	thread, err := s.threadRepo.Load(sessionID, post.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load thread for post %d", post.ID)
	}
	return &PostView{
		Post:          post,
		Key:           fmt.Sprintf("post-%d", post.ID),
		PublishedISO:  post.PublishedAt.Format(time.RFC3339),
		AbsoluteLabel: s.locale.Absolute(post.PublishedAt),
		RelativeLabel: s.locale.Relative(post.PublishedAt, now),
		Thread:        thread,
		CanSubmit:     models.CanSubmit(thread),
	}, nil
}
