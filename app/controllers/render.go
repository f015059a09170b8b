package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"timeline/app/i18n"
	applog "timeline/app/log"
	"timeline/app/models"
	"timeline/app/repositories"
	"timeline/app/services"
	"timeline/app/views"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// feedPage is the data of the feed template
type feedPage struct {
	Posts      []*services.PostView
	Labels     i18n.Labels
	Required   string
	ByPosition bool
}

// postData is what the post partial renders
type postData struct {
	*services.PostView
	Labels          i18n.Labels
	RequiredMessage string
	ByPosition      bool
}

// commentData is what the comment partial renders
type commentData struct {
	PostID      int
	Index       int
	Text        string
	ByPosition  bool
	DeleteLabel string
}

var templateFuncs = template.FuncMap{
	"postCard": func(view *services.PostView, page feedPage) postData {
		return postData{
			PostView:        view,
			Labels:          page.Labels,
			RequiredMessage: page.Required,
			ByPosition:      page.ByPosition,
		}
	},
	"commentCard": func(post postData, index int, text string) commentData {
		return commentData{
			PostID:      post.ID,
			Index:       index,
			Text:        text,
			ByPosition:  post.ByPosition,
			DeleteLabel: post.Labels.DeleteComment,
		}
	},
}

// loadTemplates loads and parses all templates
func loadTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["index"] = template.Must(template.New("index").Funcs(templateFuncs).ParseFS(views.Files,
		"layout.html",
		"shared/header.html",
		"feed/index.html",
		"shared/post.html",
		"shared/comment.html",
	))
	return templates
}

// isAPI reports whether the request expects JSON
func isAPI(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPI(r) {
		sendJSON(w, status, map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStaleComment):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// sendServiceError answers err with its mapped status, logging server faults
func sendServiceError(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		applog.Log.WithFields(logrus.Fields{
			"path":  r.URL.Path,
			"error": err.Error(),
		}).Error(prefix)
	}
	message := err.Error()
	if status != http.StatusUnprocessableEntity {
		message = prefix + ": " + message
	}
	sendError(w, r, message, status)
}

// postID reads the {id} route variable
func postID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}
