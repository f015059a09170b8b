package models

import "errors"

// DefaultComment seeds every new thread.
const DefaultComment = "Post muito bacana, hein?!"

var (
	// ErrEmptyComment is returned when a comment is submitted without text.
	ErrEmptyComment = errors.New("comment text is required")
	// ErrStaleComment is returned by DeleteCommentAt when the position no
	// longer holds the expected text.
	ErrStaleComment = errors.New("comment at position has changed")
)

// NewThread returns the initial state of a post view.
func NewThread() Thread {
	return Thread{Comments: []string{DefaultComment}}
}

// Submit appends text to the comments and clears the draft. Duplicates are
// accepted.
func Submit(t Thread, text string) (Thread, error) {
	if text == "" {
		return t, ErrEmptyComment
	}
	comments := make([]string, 0, len(t.Comments)+1)
	comments = append(comments, t.Comments...)
	comments = append(comments, text)
	return Thread{Comments: comments, Revision: t.Revision + 1}, nil
}

// UpdateDraft replaces the pending draft.
func UpdateDraft(t Thread, text string) Thread {
	return Thread{Comments: t.Comments, Draft: text, Revision: t.Revision}
}

// UpdateDraftAt replaces the draft only if no submission happened since
// revision. A late draft write never restores text that was already
// published.
func UpdateDraftAt(t Thread, revision int, text string) Thread {
	if revision != t.Revision {
		return t
	}
	return UpdateDraft(t, text)
}

// DeleteComment removes every comment equal to text. Matching is by value,
// so all duplicates go at once and a second call is a no-op.
func DeleteComment(t Thread, text string) Thread {
	comments := make([]string, 0, len(t.Comments))
	for _, c := range t.Comments {
		if c != text {
			comments = append(comments, c)
		}
	}
	return Thread{Comments: comments, Draft: t.Draft, Revision: t.Revision}
}

// DeleteCommentAt removes the single comment at index, provided it still
// reads text.
func DeleteCommentAt(t Thread, index int, text string) (Thread, error) {
	if index < 0 || index >= len(t.Comments) || t.Comments[index] != text {
		return t, ErrStaleComment
	}
	comments := make([]string, 0, len(t.Comments)-1)
	comments = append(comments, t.Comments[:index]...)
	comments = append(comments, t.Comments[index+1:]...)
	return Thread{Comments: comments, Draft: t.Draft, Revision: t.Revision}, nil
}

// CanSubmit reports whether the submit control is enabled.
func CanSubmit(t Thread) bool {
	return len(t.Draft) > 0
}
