package controllers

import (
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"timeline/app/middleware"
	"timeline/app/models"
	"timeline/app/services"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// CommentController handles HTTP requests that change a post's thread
type CommentController struct {
	threadService *services.ThreadService
	feed          *FeedController
}

// NewCommentController creates a new CommentController. Form errors are
// answered by re-rendering the feed.
func NewCommentController(threadService *services.ThreadService, feed *FeedController) *CommentController {
	return &CommentController{
		threadService: threadService,
		feed:          feed,
	}
}

type textPayload struct {
	Text     string `json:"text"`
	Revision *int   `json:"revision,omitempty"`
}

// Index returns the session's thread of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	thread, err := cc.threadService.Thread(middleware.SessionID(r.Context()), id)
	if err != nil {
		sendServiceError(w, r, "Failed to fetch comments", err)
		return
	}

	etag, err := threadETag(thread)
	if err != nil {
		sendServiceError(w, r, "Failed to fingerprint comments", err)
		return
	}
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && subtle.ConstantTimeCompare([]byte(match), []byte(etag)) == 1 {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	sendJSON(w, http.StatusOK, thread)
}

// Create handles the submission of the comment form
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	text, err := readText(r, "comment")
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := cc.threadService.Submit(middleware.SessionID(r.Context()), id, text)
	if err != nil {
		cc.fail(w, r, id, "Failed to create comment", err)
		return
	}
	cc.respond(w, r, id, http.StatusCreated, thread)
}

// Draft handles changes of the comment textarea
func (cc *CommentController) Draft(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	payload, err := readPayload(r, "comment")
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	var thread models.Thread
	if payload.Revision != nil {
		thread, err = cc.threadService.UpdateDraftAt(sessionID, id, *payload.Revision, payload.Text)
	} else {
		thread, err = cc.threadService.UpdateDraft(sessionID, id, payload.Text)
	}
	if err != nil {
		cc.fail(w, r, id, "Failed to update draft", err)
		return
	}
	cc.respond(w, r, id, http.StatusOK, thread)
}

// Delete handles the delete control of a comment. The text comes from the
// form or the query string; index is optional.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	text := r.FormValue("text")

	index := services.NoIndex
	if raw := r.FormValue("index"); raw != "" {
		index, err = strconv.Atoi(raw)
		if err != nil || index < 0 {
			sendError(w, r, "Invalid comment index", http.StatusBadRequest)
			return
		}
	}

	thread, err := cc.threadService.DeleteComment(middleware.SessionID(r.Context()), id, text, index)
	if err != nil {
		cc.fail(w, r, id, "Failed to delete comment", err)
		return
	}
	cc.respond(w, r, id, http.StatusOK, thread)
}

// EndSession discards every thread of the caller's session. The next render
// starts again from the initial threads.
func (cc *CommentController) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := cc.threadService.EndSession(middleware.SessionID(r.Context())); err != nil {
		sendServiceError(w, r, "Failed to end session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (cc *CommentController) respond(w http.ResponseWriter, r *http.Request, id int, status int, thread models.Thread) {
	if isAPI(r) {
		sendJSON(w, status, thread)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/#post-%d", id), http.StatusSeeOther)
}

// fail re-renders the feed with the message under the form for validation
// errors on HTML requests; everything else goes through sendServiceError.
func (cc *CommentController) fail(w http.ResponseWriter, r *http.Request, id int, prefix string, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) && !isAPI(r) {
		cc.feed.render(w, r, http.StatusUnprocessableEntity, id, verr.Message)
		return
	}
	sendServiceError(w, r, prefix, err)
}

// readText extracts the text from a JSON body or from the named form field
func readText(r *http.Request, field string) (string, error) {
	payload, err := readPayload(r, field)
	return payload.Text, err
}

// readPayload reads the text and the optional revision from a JSON body or
// from the form fields field and "revision".
func readPayload(r *http.Request, field string) (textPayload, error) {
	var payload textPayload
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return payload, errors.Wrap(err, "Invalid JSON")
		}
		return payload, nil
	}
	if err := r.ParseForm(); err != nil {
		return payload, errors.Wrap(err, "Failed to parse form")
	}
	payload.Text = r.FormValue(field)
	if raw := r.FormValue("revision"); raw != "" {
		revision, err := strconv.Atoi(raw)
		if err != nil {
			return payload, errors.Wrap(err, "Invalid revision")
		}
		payload.Revision = &revision
	}
	return payload, nil
}

// threadETag fingerprints a thread so clients can poll cheaply
func threadETag(thread models.Thread) (string, error) {
	data, err := json.Marshal(thread)
	if err != nil {
		return "", err
	}
	sum := sha3.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
}
