package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"timeline/app/i18n"
	"timeline/app/middleware"
	"timeline/app/models"
	"timeline/app/repositories"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var testPublishedAt = time.Date(2024, time.May, 10, 9, 20, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *badger.DB {
	db, err := repositories.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testPosts() []*models.Post {
	return []*models.Post{
		models.NewPost(1, models.Author{Name: "Christian Borges", Role: "Front End", AvatarURL: "https://github.com/Christian-Fernando993.png"},
			testPublishedAt, []models.ContentBlock{
				{Kind: models.KindText, Value: "Fala galeraa 👋"},
				{Kind: models.KindLink, Value: "jane.design/doctorcare"},
			}),
		models.NewPost(2, models.Author{Name: "João Pinheiro", Role: "Estudante de Front End"},
			testPublishedAt.Add(-24*time.Hour), []models.ContentBlock{
				{Kind: models.KindText, Value: "Outro post"},
			}),
	}
}

// setupTestRouter builds the full application over an in-memory store with
// the clock fixed two days after the first post.
func setupTestRouter(t *testing.T, tag, deleteMode string) *mux.Router {
	router, err := SetupRoutes(setupTestDB(t), testPosts(), Options{
		Locale:     i18n.MustNew(tag),
		SessionTTL: time.Hour,
		DeleteMode: deleteMode,
		Now:        func() time.Time { return testPublishedAt.Add(48 * time.Hour) },
	})
	require.NoError(t, err)
	return router
}

// client replays the session cookie across requests like a browser does.
type client struct {
	t       *testing.T
	router  http.Handler
	session *http.Cookie
}

func newClient(t *testing.T, router http.Handler) *client {
	return &client{t: t, router: router}
}

func (c *client) do(method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.session != nil {
		req.AddCookie(c.session)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			c.session = cookie
		}
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do("GET", target, nil, nil)
}

func (c *client) postForm(target, form string) *httptest.ResponseRecorder {
	return c.do("POST", target, strings.NewReader(form), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
}

func (c *client) sendJSON(method, target, body string) *httptest.ResponseRecorder {
	return c.do(method, target, strings.NewReader(body), map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})
}

// document fetches the feed page and parses it.
func (c *client) document() *goquery.Document {
	w := c.get("/")
	require.Equal(c.t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(c.t, err)
	return doc
}

func commentTexts(doc *goquery.Document, postID string) []string {
	texts := []string{}
	doc.Find("#post-" + postID + " .comment p").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts
}
