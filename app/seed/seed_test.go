package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timeline/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	posts, err := Default(time.UTC)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	first := posts[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Christian Borges", first.Author.Name)
	assert.Equal(t, time.Date(2024, time.May, 10, 9, 20, 0, 0, time.UTC), first.PublishedAt)
	assert.Equal(t, models.KindText, first.Content[0].Kind)
	assert.Equal(t, models.KindLink, first.Content[2].Kind)
	assert.Equal(t, "jane.design/doctorcare", first.Content[2].Value)

	assert.Equal(t, 2, posts[1].ID)
	assert.Equal(t, "Estudante de Front End", posts[1].Author.Role)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "duplicate ids",
			yaml: `posts:
  - {id: 1, author: {name: A}, published_at: "2024-01-01", content: [{kind: text, value: x}]}
  - {id: 1, author: {name: B}, published_at: "2024-01-02", content: [{kind: text, value: y}]}`,
			wantErr: "duplicate id 1",
		},
		{
			name:    "bad date",
			yaml:    `posts: [{id: 1, author: {name: A}, published_at: "someday", content: [{kind: text, value: x}]}]`,
			wantErr: "published_at",
		},
		{
			name:    "unknown kind",
			yaml:    `posts: [{id: 1, author: {name: A}, published_at: "2024-01-01", content: [{kind: video, value: x}]}]`,
			wantErr: "post #1",
		},
		{
			name:    "no content",
			yaml:    `posts: [{id: 1, author: {name: A}, published_at: "2024-01-01"}]`,
			wantErr: "post #1",
		},
		{
			name:    "unknown field",
			yaml:    `posts: [{id: 1, title: nope}]`,
			wantErr: "decode feed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml), time.UTC)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadInfersLinkKind(t *testing.T) {
	yaml := `posts:
  - id: 7
    author: {name: Ana}
    published_at: "2024-04-25T17:00:00Z"
    content:
      - value: Olha isso
      - value: https://rocketseat.com.br
      - value: veja https://rocketseat.com.br depois`
	posts, err := Load(strings.NewReader(yaml), time.UTC)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	kinds := []models.ContentKind{}
	for _, b := range posts[0].Content {
		kinds = append(kinds, b.Kind)
	}
	assert.Equal(t, []models.ContentKind{models.KindText, models.KindLink, models.KindText}, kinds)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.yaml")
	require.NoError(t, os.WriteFile(path, defaultFeed, 0644))

	posts, err := LoadFile(path, time.UTC)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), time.UTC)
	assert.Error(t, err)
}
