// Package seed loads the post records shown by the feed.
package seed

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"time"

	"timeline/app/models"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"mvdan.cc/xurls/v2"
)

//go:embed feed.yaml
var defaultFeed []byte

var urlPattern = xurls.Relaxed()

type feedFile struct {
	Posts []postRecord `yaml:"posts"`
}

type postRecord struct {
	ID          int                   `yaml:"id"`
	Author      models.Author         `yaml:"author"`
	PublishedAt string                `yaml:"published_at"`
	Content     []models.ContentBlock `yaml:"content"`
}

// Default returns the feed compiled into the binary.
func Default(loc *time.Location) ([]*models.Post, error) {
	return Load(bytes.NewReader(defaultFeed), loc)
}

// LoadFile reads a YAML feed from disk.
func LoadFile(path string, loc *time.Location) ([]*models.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open feed file")
	}
	defer f.Close()
	return Load(f, loc)
}

// Load decodes a YAML feed. Timestamps without a zone are read in loc.
// Every post is validated and IDs must be unique; the order of the file is
// the display order.
func Load(r io.Reader, loc *time.Location) ([]*models.Post, error) {
	var file feedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decode feed")
	}

	seen := make(map[int]bool, len(file.Posts))
	posts := make([]*models.Post, 0, len(file.Posts))
	for i, rec := range file.Posts {
		publishedAt, err := dateparse.ParseIn(rec.PublishedAt, loc)
		if err != nil {
			return nil, errors.Wrapf(err, "post #%d: published_at", i+1)
		}

		for j := range rec.Content {
			if rec.Content[j].Kind == "" {
				rec.Content[j].Kind = inferKind(rec.Content[j].Value)
			}
		}

		post := models.NewPost(rec.ID, rec.Author, publishedAt, rec.Content)
		if err := post.Validate(); err != nil {
			return nil, errors.Wrapf(err, "post #%d", i+1)
		}
		if seen[post.ID] {
			return nil, errors.Errorf("post #%d: duplicate id %d", i+1, post.ID)
		}
		seen[post.ID] = true
		posts = append(posts, post)
	}
	return posts, nil
}

// inferKind treats a block whose whole value is a URL as a link.
func inferKind(value string) models.ContentKind {
	loc := urlPattern.FindStringIndex(value)
	if loc != nil && loc[0] == 0 && loc[1] == len(value) {
		return models.KindLink
	}
	return models.KindText
}
