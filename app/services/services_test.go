package services

import (
	"testing"
	"time"

	"timeline/app/i18n"
	"timeline/app/models"
	"timeline/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

var publishedAt = time.Date(2024, time.May, 10, 9, 20, 0, 0, time.UTC)

func testPosts() []*models.Post {
	author := models.Author{Name: "Christian Borges", Role: "Front End"}
	return []*models.Post{
		models.NewPost(2, author, publishedAt, []models.ContentBlock{{Kind: models.KindText, Value: "second id, first shown"}}),
		models.NewPost(1, author, publishedAt.Add(-15*24*time.Hour), []models.ContentBlock{{Kind: models.KindLink, Value: "jane.design/doctorcare"}}),
	}
}

func setupServices(t *testing.T, tag, deleteMode string) (*FeedService, *ThreadService) {
	postRepo := mock.NewPostRepository()
	threadRepo := mock.NewThreadRepository()
	locale := i18n.MustNew(tag)

	feed := NewFeedService(postRepo, threadRepo, locale)
	feed.SetClock(func() time.Time { return publishedAt.Add(48 * time.Hour) })
	require.NoError(t, feed.Seed(testPosts()))

	threads, err := NewThreadService(postRepo, threadRepo, locale, deleteMode)
	require.NoError(t, err)
	return feed, threads
}
