package model

import "time"

// Post represents a blog post authored by a user
type Post struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title         string    `gorm:"column:title"`
	Content       string    `gorm:"column:content"`
	AuthorID      int64     `gorm:"column:author_id"`
	PublishedDate time.Time `gorm:"column:published_date;autoCreateTime"`

	Author   *User     `gorm:"foreignKey:AuthorID"`
	Tags     []Tag     `gorm:"many2many:post_tags"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}

// Comment represents a comment on a post
type Comment struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PostID    int64     `gorm:"column:post_id"`
	AuthorID  int64     `gorm:"column:author_id"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Author *User `gorm:"foreignKey:AuthorID"`
}

func (Comment) TableName() string {
	return "comments"
}

// Tag labels posts. Tags are created on the fly when a post mentions a
// new tag name.
type Tag struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;unique"`
	Slug string `gorm:"column:slug;unique"`
}

func (Tag) TableName() string {
	return "tags"
}
