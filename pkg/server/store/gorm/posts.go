package gorm

import (
	"gorm.io/gorm"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// Ensure PostsStore implements store.PostsStore
var _ store.PostsStore = (*PostsStore)(nil)

// PostsStore implements store.PostsStore using GORM
type PostsStore struct {
	db *gorm.DB
}

// NewPostsStore creates a new PostsStore
func NewPostsStore(db *gorm.DB) *PostsStore {
	return &PostsStore{db: db}
}

// ListPosts returns posts matching the filter, newest first, with author
// and tags preloaded.
func (s *PostsStore) ListPosts(filter store.PostFilter) ([]model.Post, error) {
	query := s.db.Model(&model.Post{}).
		Preload("Author.Profile").Preload("Tags")

	if filter.Tag != "" {
		query = query.Where(`posts.id IN (
			SELECT post_id FROM post_tags
			JOIN tags ON tags.id = post_tags.tag_id
			WHERE tags.slug = ?
		)`, filter.Tag)
	}
	if filter.Author != "" {
		query = query.Where(`posts.author_id IN (
			SELECT id FROM users WHERE username = ?
		)`, filter.Author)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("posts.title ILIKE ? OR posts.content ILIKE ?", pattern, pattern)
	}

	var posts []model.Post
	err := query.Order("posts.published_date DESC").Find(&posts).Error
	if err != nil {
		return nil, translateError(err)
	}
	return posts, nil
}

// ShowPost retrieves one post with author, tags and comments preloaded.
func (s *PostsStore) ShowPost(id int64) (model.Post, error) {
	var post model.Post
	err := s.db.Preload("Author.Profile").Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return model.Post{}, translateError(err)
	}
	return post, nil
}

// CreatePost persists a new post.
func (s *PostsStore) CreatePost(post *model.Post) error {
	return translateError(s.db.Create(post).Error)
}

// UpdatePost writes the post's title and content.
func (s *PostsStore) UpdatePost(post *model.Post) error {
	tx := s.db.Model(&model.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":   post.Title,
		"content": post.Content,
	})
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeletePost removes the post. Comments and tag links cascade.
func (s *PostsStore) DeletePost(id int64) error {
	tx := s.db.Delete(&model.Post{}, id)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetTags replaces the post's tag set with the named tags, creating any
// that do not exist yet.
func (s *PostsStore) SetTags(postID int64, names []string) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			return err
		}

		for _, name := range names {
			slug := model.Slugify(name)
			var tag model.Tag
			err := tx.Where("slug = ?", slug).First(&tag).Error
			if err == gorm.ErrRecordNotFound {
				tag = model.Tag{Name: name, Slug: slug}
				err = tx.Create(&tag).Error
			}
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}

		if err := tx.Exec(`DELETE FROM post_tags WHERE post_id = ?`, postID).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			err := tx.Exec(`
				INSERT INTO post_tags (post_id, tag_id)
				VALUES (?, ?)
				ON CONFLICT DO NOTHING
			`, postID, tag.ID).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

// ListTags returns all tags ordered by name.
func (s *PostsStore) ListTags() ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.Order("tags.name ASC").Find(&tags).Error
	if err != nil {
		return nil, translateError(err)
	}
	return tags, nil
}

// CreateComment persists a comment under its post.
func (s *PostsStore) CreateComment(comment *model.Comment) error {
	var post model.Post
	if err := s.db.Select("id").First(&post, comment.PostID).Error; err != nil {
		return translateError(err)
	}
	return translateError(s.db.Create(comment).Error)
}

// ListComments returns a post's comments, oldest first.
func (s *PostsStore) ListComments(postID int64) ([]model.Comment, error) {
	var post model.Post
	if err := s.db.Select("id").First(&post, postID).Error; err != nil {
		return nil, translateError(err)
	}
	var comments []model.Comment
	err := s.db.Preload("Author").Where("post_id = ?", postID).
		Order("comments.created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, translateError(err)
	}
	return comments, nil
}

// ShowComment retrieves one comment by ID.
func (s *PostsStore) ShowComment(id int64) (model.Comment, error) {
	var comment model.Comment
	err := s.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		return model.Comment{}, translateError(err)
	}
	return comment, nil
}

// UpdateComment writes the comment's content.
func (s *PostsStore) UpdateComment(comment *model.Comment) error {
	tx := s.db.Model(&model.Comment{}).Where("id = ?", comment.ID).
		Update("content", comment.Content)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteComment removes a comment by ID.
func (s *PostsStore) DeleteComment(id int64) error {
	tx := s.db.Delete(&model.Comment{}, id)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
