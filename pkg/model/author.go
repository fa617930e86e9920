package model

// Author represents a book author
type Author struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name"`

	// Books is the author's reverse relation. Deleting an author
	// cascades to their books.
	Books []Book `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Author) TableName() string {
	return "authors"
}
