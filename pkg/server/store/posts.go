package store

import "bookshelf/pkg/model"

// PostFilter narrows a post listing. Zero values leave the corresponding
// constraint unapplied.
type PostFilter struct {
	// Tag matches posts carrying the tag with this slug.
	Tag string
	// Author matches posts written by the user with this username.
	Author string
	// Search matches case-insensitively against title or content.
	Search string
}

// PostsStore provides access to blog posts, their comments and tags.
type PostsStore interface {
	ListPosts(filter PostFilter) ([]model.Post, error)
	ShowPost(id int64) (model.Post, error)
	CreatePost(post *model.Post) error
	UpdatePost(post *model.Post) error
	DeletePost(id int64) error

	// SetTags replaces the post's tag set with the named tags, creating
	// tags that do not exist yet.
	SetTags(postID int64, names []string) ([]model.Tag, error)
	ListTags() ([]model.Tag, error)

	CreateComment(comment *model.Comment) error
	ListComments(postID int64) ([]model.Comment, error)
	UpdateComment(comment *model.Comment) error
	DeleteComment(id int64) error
	ShowComment(id int64) (model.Comment, error)
}
