package model

// Book represents a published book in the catalog
type Book struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Title           string `gorm:"column:title"`
	PublicationYear int    `gorm:"column:publication_year"`
	AuthorID        int64  `gorm:"column:author_id"`

	Author *Author `gorm:"foreignKey:AuthorID"`
}

func (Book) TableName() string {
	return "books"
}
