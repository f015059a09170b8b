package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"timeline/app/config"
	"timeline/app/controllers"
	"timeline/app/i18n"
	"timeline/app/middleware"
	"timeline/app/models"
	"timeline/app/repositories"
	"timeline/app/services"
	"timeline/static"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Options tune the application built by SetupRoutes
type Options struct {
	Locale     *i18n.Locale
	SessionTTL time.Duration
	DeleteMode string
	// Now replaces the wall clock for relative labels; nil means time.Now.
	Now func() time.Time
}

// SetupRoutes stores the posts in db and returns the application router.
func SetupRoutes(db *badger.DB, posts []*models.Post, opts Options) (*mux.Router, error) {
	if opts.Locale == nil {
		opts.Locale = i18n.MustNew(i18n.PortugueseBR)
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.DeleteMode == "" {
		opts.DeleteMode = config.DeleteByValue
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	threadRepo := repositories.NewBadgerThreadRepository(db, opts.SessionTTL)

	feedService := services.NewFeedService(postRepo, threadRepo, opts.Locale)
	if opts.Now != nil {
		feedService.SetClock(opts.Now)
	}
	if err := feedService.Seed(posts); err != nil {
		return nil, err
	}

	threadService, err := services.NewThreadService(postRepo, threadRepo, opts.Locale, opts.DeleteMode)
	if err != nil {
		return nil, err
	}

	feedController := controllers.NewFeedController(feedService, threadService)
	commentController := controllers.NewCommentController(threadService, feedController)

	return NewRouter(feedController, commentController), nil
}

// NewRouter wires the controllers to their routes.
func NewRouter(feedController *controllers.FeedController, commentController *controllers.CommentController) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Session)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static.Files))))

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/session", commentController.EndSession).Methods("DELETE")

	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", feedController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", feedController.Show).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}/comments", commentController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id:[0-9]+}/comments", commentController.Delete).Methods("DELETE")
	apiPosts.HandleFunc("/{id:[0-9]+}/draft", commentController.Draft).Methods("PUT")

	// Web routes
	router.HandleFunc("/", feedController.Index).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", feedController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/comments/delete", commentController.Delete).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/draft", commentController.Draft).Methods("POST")

	return router
}
