package models

import "time"

// ContentKind tags a content block as plain text or as a link.
type ContentKind string

const (
	KindText ContentKind = "text"
	KindLink ContentKind = "link"
)

// Author identifies who published a post.
type Author struct {
	Name      string `json:"name" yaml:"name" validate:"required,max=100"`
	Role      string `json:"role" yaml:"role" validate:"max=100"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url" validate:"omitempty,url"`
}

// ContentBlock is one displayable unit of a post body.
type ContentBlock struct {
	Kind  ContentKind `json:"kind" yaml:"kind" validate:"required,oneof=text link"`
	Value string      `json:"value" yaml:"value" validate:"required"`
}

// Post is a feed entry. Content is fixed once the post is constructed.
type Post struct {
	ID          int            `json:"id" validate:"required,gt=0"`
	Author      Author         `json:"author" validate:"required"`
	PublishedAt time.Time      `json:"published_at" validate:"required"`
	Content     []ContentBlock `json:"content" validate:"required,min=1,dive"`
}

// Thread is the comment state owned by one post view: the submitted
// comments in insertion order and the pending draft. Revision counts
// submissions so drafts typed before the latest one can be told apart.
type Thread struct {
	Comments []string `json:"comments"`
	Draft    string   `json:"draft"`
	Revision int      `json:"revision"`
}
