package services

import (
	"timeline/app/config"
	"timeline/app/i18n"
	applog "timeline/app/log"
	"timeline/app/models"
	"timeline/app/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NoIndex marks a delete request that carries no position.
const NoIndex = -1

// CommentForm is the payload of the comment form.
type CommentForm struct {
	Text string `json:"text" validate:"required"`
}

// ValidationError carries the localized message shown next to the form.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ThreadService handles the comment state of post views
type ThreadService struct {
	postRepo   repositories.PostRepository
	threadRepo repositories.ThreadRepository
	locale     *i18n.Locale
	validate   *validator.Validate
	deleteMode string
}

// NewThreadService creates a new ThreadService
func NewThreadService(postRepo repositories.PostRepository, threadRepo repositories.ThreadRepository, locale *i18n.Locale, deleteMode string) (*ThreadService, error) {
	v, err := locale.NewValidator()
	if err != nil {
		return nil, err
	}
	if deleteMode == "" {
		deleteMode = config.DeleteByValue
	}
	return &ThreadService{
		postRepo:   postRepo,
		threadRepo: threadRepo,
		locale:     locale,
		validate:   v,
		deleteMode: deleteMode,
	}, nil
}

// DeleteMode reports whether deletes match by value or by position
func (s *ThreadService) DeleteMode() string {
	return s.deleteMode
}

// Thread returns the session's thread for a post
func (s *ThreadService) Thread(sessionID string, postID int) (models.Thread, error) {
	if err := s.ensurePost(postID); err != nil {
		return models.Thread{}, err
	}
	return s.threadRepo.Load(sessionID, postID)
}

// Submit appends a comment and clears the draft
func (s *ThreadService) Submit(sessionID string, postID int, text string) (models.Thread, error) {
	form := CommentForm{Text: text}
	if err := s.validate.Struct(form); err != nil {
		return models.Thread{}, &ValidationError{Message: s.locale.Translate(err), Err: models.ErrEmptyComment}
	}
	if err := s.ensurePost(postID); err != nil {
		return models.Thread{}, err
	}

	thread, err := s.threadRepo.Update(sessionID, postID, func(t models.Thread) (models.Thread, error) {
		return models.Submit(t, form.Text)
	})
	if errors.Is(err, models.ErrEmptyComment) {
		return thread, &ValidationError{Message: s.locale.FieldRequired(), Err: err}
	}
	if err != nil {
		return thread, err
	}

	s.logger(sessionID, postID).WithField("comments", len(thread.Comments)).Debug("comment submitted")
	return thread, nil
}

// UpdateDraft replaces the pending draft
func (s *ThreadService) UpdateDraft(sessionID string, postID int, text string) (models.Thread, error) {
	if err := s.ensurePost(postID); err != nil {
		return models.Thread{}, err
	}
	return s.threadRepo.Update(sessionID, postID, func(t models.Thread) (models.Thread, error) {
		return models.UpdateDraft(t, text), nil
	})
}

// UpdateDraftAt replaces the draft unless a comment was submitted after
// revision, in which case the current thread is returned untouched.
func (s *ThreadService) UpdateDraftAt(sessionID string, postID int, revision int, text string) (models.Thread, error) {
	if err := s.ensurePost(postID); err != nil {
		return models.Thread{}, err
	}
	return s.threadRepo.Update(sessionID, postID, func(t models.Thread) (models.Thread, error) {
		next := models.UpdateDraftAt(t, revision, text)
		if next.Revision != revision {
			s.logger(sessionID, postID).WithField("revision", revision).Debug("stale draft dropped")
		}
		return next, nil
	})
}

// DeleteComment removes a comment. In value mode every comment equal to
// text goes; in position mode only the one at index, which must still read
// text. A position-mode request without an index falls back to value mode.
func (s *ThreadService) DeleteComment(sessionID string, postID int, text string, index int) (models.Thread, error) {
	if err := s.ensurePost(postID); err != nil {
		return models.Thread{}, err
	}

	byPosition := s.deleteMode == config.DeleteByPosition && index != NoIndex
	thread, err := s.threadRepo.Update(sessionID, postID, func(t models.Thread) (models.Thread, error) {
		if byPosition {
			return models.DeleteCommentAt(t, index, text)
		}
		return models.DeleteComment(t, text), nil
	})
	if err != nil {
		return thread, err
	}

	s.logger(sessionID, postID).WithFields(logrus.Fields{
		"by_position": byPosition,
		"comments":    len(thread.Comments),
	}).Debug("comment deleted")
	return thread, nil
}

// EndSession discards every thread of a session
func (s *ThreadService) EndSession(sessionID string) error {
	return s.threadRepo.DeleteSession(sessionID)
}

func (s *ThreadService) ensurePost(postID int) error {
	_, err := s.postRepo.GetByID(postID)
	return err
}

func (s *ThreadService) logger(sessionID string, postID int) *logrus.Entry {
	return applog.Log.WithFields(logrus.Fields{"session": sessionID, "post_id": postID})
}
