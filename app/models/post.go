package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewPost builds a post, copying the content so later changes to the
// caller's slice never reach the post.
func NewPost(id int, author Author, publishedAt time.Time, content []ContentBlock) *Post {
	blocks := make([]ContentBlock, len(content))
	copy(blocks, content)
	return &Post{
		ID:          id,
		Author:      author,
		PublishedAt: publishedAt,
		Content:     blocks,
	}
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.PublishedAt.IsZero() {
		return errors.New("published_at cannot be zero")
	}

	return nil
}

// Blocks returns a copy of the post content in display order.
func (p *Post) Blocks() []ContentBlock {
	blocks := make([]ContentBlock, len(p.Content))
	copy(blocks, p.Content)
	return blocks
}

// IsLink reports whether the block renders as a link placeholder.
func (b ContentBlock) IsLink() bool {
	return b.Kind == KindLink
}
