package endpoints

import (
	"time"

	"bookshelf/pkg/model"
)

// AuthorRef is the embedded author view on book responses.
type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookResponse is the wire form of a book.
type BookResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	Author          AuthorRef `json:"author"`
}

// BookSummary is the nested book view on author and library responses.
type BookSummary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
}

// AuthorResponse is the wire form of an author with their books.
type AuthorResponse struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Books []BookSummary `json:"books"`
}

// LibrarianRef is the embedded librarian view on library responses.
type LibrarianRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LibraryResponse is the wire form of a library.
type LibraryResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Books     []BookSummary `json:"books"`
	Librarian *LibrarianRef `json:"librarian"`
}

// UserResponse is the wire form of a user account.
type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DateOfBirth *string   `json:"date_of_birth"`
	IsStaff     bool      `json:"is_staff"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentResponse is the wire form of a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Post      int64     `json:"post"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TagResponse is the wire form of a tag.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostResponse is the wire form of a post. ContentHTML carries the
// rendered Markdown; Comments is only populated on detail views.
type PostResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	ContentHTML   string            `json:"content_html"`
	Author        string            `json:"author"`
	PublishedDate time.Time         `json:"published_date"`
	Tags          []TagResponse     `json:"tags"`
	Comments      []CommentResponse `json:"comments,omitempty"`
}

func newBookResponse(book model.Book) BookResponse {
	resp := BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		PublicationYear: book.PublicationYear,
		Author:          AuthorRef{ID: book.AuthorID},
	}
	if book.Author != nil {
		resp.Author.Name = book.Author.Name
	}
	return resp
}

func newBookResponses(books []model.Book) []BookResponse {
	resps := make([]BookResponse, 0, len(books))
	for _, book := range books {
		resps = append(resps, newBookResponse(book))
	}
	return resps
}

func newBookSummaries(books []model.Book) []BookSummary {
	summaries := make([]BookSummary, 0, len(books))
	for _, book := range books {
		summaries = append(summaries, BookSummary{
			ID:              book.ID,
			Title:           book.Title,
			PublicationYear: book.PublicationYear,
		})
	}
	return summaries
}

func newAuthorResponse(author model.Author) AuthorResponse {
	return AuthorResponse{
		ID:    author.ID,
		Name:  author.Name,
		Books: newBookSummaries(author.Books),
	}
}

func newAuthorResponses(authors []model.Author) []AuthorResponse {
	resps := make([]AuthorResponse, 0, len(authors))
	for _, author := range authors {
		resps = append(resps, newAuthorResponse(author))
	}
	return resps
}

func newLibraryResponse(library model.Library) LibraryResponse {
	resp := LibraryResponse{
		ID:    library.ID,
		Name:  library.Name,
		Books: newBookSummaries(library.Books),
	}
	if library.Librarian != nil {
		resp.Librarian = &LibrarianRef{
			ID:   library.Librarian.ID,
			Name: library.Librarian.Name,
		}
	}
	return resp
}

func newLibraryResponses(libraries []model.Library) []LibraryResponse {
	resps := make([]LibraryResponse, 0, len(libraries))
	for _, library := range libraries {
		resps = append(resps, newLibraryResponse(library))
	}
	return resps
}

func newUserResponse(user model.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role().String(),
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
	if user.DateOfBirth != nil {
		formatted := user.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &formatted
	}
	return resp
}

func newUserResponses(users []model.User) []UserResponse {
	resps := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resps = append(resps, newUserResponse(user))
	}
	return resps
}

func newCommentResponse(comment model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Post:      comment.PostID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.Author = comment.Author.Username
	}
	return resp
}

func newCommentResponses(comments []model.Comment) []CommentResponse {
	resps := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resps = append(resps, newCommentResponse(comment))
	}
	return resps
}

func newTagResponse(tag model.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}
}

func newTagResponses(tags []model.Tag) []TagResponse {
	resps := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		resps = append(resps, newTagResponse(tag))
	}
	return resps
}

func newPostResponse(post model.Post, contentHTML string) PostResponse {
	resp := PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		ContentHTML:   contentHTML,
		PublishedDate: post.PublishedDate,
		Tags:          newTagResponses(post.Tags),
	}
	if post.Author != nil {
		resp.Author = post.Author.Username
	}
	return resp
}
