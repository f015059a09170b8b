package controllers

import (
	"bytes"
	"html/template"
	"net/http"

	"timeline/app/config"
	"timeline/app/middleware"
	"timeline/app/services"
)

// FeedController handles HTTP requests for the feed container
type FeedController struct {
	feedService   *services.FeedService
	threadService *services.ThreadService
	templates     map[string]*template.Template
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService *services.FeedService, threadService *services.ThreadService) *FeedController {
	return &FeedController{
		feedService:   feedService,
		threadService: threadService,
		templates:     loadTemplates(),
	}
}

// Index renders every post of the feed with the session's threads
func (fc *FeedController) Index(w http.ResponseWriter, r *http.Request) {
	fc.render(w, r, http.StatusOK, 0, "")
}

// Show handles displaying a single post
func (fc *FeedController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	view, err := fc.feedService.Post(middleware.SessionID(r.Context()), id)
	if err != nil {
		sendServiceError(w, r, "Failed to fetch post", err)
		return
	}
	sendJSON(w, http.StatusOK, view)
}

// render answers the feed as JSON or HTML. A non-empty formError is shown
// under the comment form of post errorPostID.
func (fc *FeedController) render(w http.ResponseWriter, r *http.Request, status int, errorPostID int, formError string) {
	views, err := fc.feedService.Feed(middleware.SessionID(r.Context()))
	if err != nil {
		sendServiceError(w, r, "Failed to fetch posts", err)
		return
	}

	if isAPI(r) {
		sendJSON(w, status, map[string]interface{}{
			"posts": views,
		})
		return
	}

	for _, view := range views {
		if view.ID == errorPostID {
			view.FormError = formError
		}
	}

	locale := fc.feedService.Locale()
	data := feedPage{
		Posts:      views,
		Labels:     locale.Labels(),
		Required:   locale.FieldRequired(),
		ByPosition: fc.threadService.DeleteMode() == config.DeleteByPosition,
	}

	var buf bytes.Buffer
	if err := fc.templates["index"].ExecuteTemplate(&buf, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
