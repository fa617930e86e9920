package model

// Library represents a library branch holding a collection of books
type Library struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name"`

	Books     []Book     `gorm:"many2many:library_books"`
	Librarian *Librarian `gorm:"foreignKey:LibraryID"`
}

func (Library) TableName() string {
	return "libraries"
}

// Librarian is the single librarian assigned to a library. The
// library_id column carries a unique constraint.
type Librarian struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name"`
	LibraryID int64  `gorm:"column:library_id;unique"`
}

func (Librarian) TableName() string {
	return "librarians"
}
