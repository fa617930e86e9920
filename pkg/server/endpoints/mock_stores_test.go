package endpoints

import (
	"github.com/stretchr/testify/mock"

	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

// MockBooksStore implements store.BooksStore for testing using testify/mock
type MockBooksStore struct {
	mock.Mock
}

func NewMockBooksStore() *MockBooksStore {
	return &MockBooksStore{}
}

func (m *MockBooksStore) ListBooks(filter store.BookFilter) ([]model.Book, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBooksStore) ShowBook(id int64) (model.Book, error) {
	args := m.Called(id)
	return args.Get(0).(model.Book), args.Error(1)
}

func (m *MockBooksStore) CreateBook(book *model.Book) error {
	args := m.Called(book)
	return args.Error(0)
}

func (m *MockBooksStore) UpdateBook(book *model.Book) error {
	args := m.Called(book)
	return args.Error(0)
}

func (m *MockBooksStore) DeleteBook(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAuthorsStore implements store.AuthorsStore for testing using testify/mock
type MockAuthorsStore struct {
	mock.Mock
}

func NewMockAuthorsStore() *MockAuthorsStore {
	return &MockAuthorsStore{}
}

func (m *MockAuthorsStore) ListAuthors(search string) ([]model.Author, error) {
	args := m.Called(search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Author), args.Error(1)
}

func (m *MockAuthorsStore) ShowAuthor(id int64) (model.Author, error) {
	args := m.Called(id)
	return args.Get(0).(model.Author), args.Error(1)
}

func (m *MockAuthorsStore) CreateAuthor(author *model.Author) error {
	args := m.Called(author)
	return args.Error(0)
}

func (m *MockAuthorsStore) UpdateAuthor(author *model.Author) error {
	args := m.Called(author)
	return args.Error(0)
}

func (m *MockAuthorsStore) DeleteAuthor(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockLibrariesStore implements store.LibrariesStore for testing using testify/mock
type MockLibrariesStore struct {
	mock.Mock
}

func NewMockLibrariesStore() *MockLibrariesStore {
	return &MockLibrariesStore{}
}

func (m *MockLibrariesStore) ListLibraries() ([]model.Library, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Library), args.Error(1)
}

func (m *MockLibrariesStore) ShowLibrary(id int64) (model.Library, error) {
	args := m.Called(id)
	return args.Get(0).(model.Library), args.Error(1)
}

func (m *MockLibrariesStore) CreateLibrary(library *model.Library) error {
	args := m.Called(library)
	return args.Error(0)
}

func (m *MockLibrariesStore) UpdateLibrary(library *model.Library) error {
	args := m.Called(library)
	return args.Error(0)
}

func (m *MockLibrariesStore) DeleteLibrary(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockLibrariesStore) AddBook(libraryID, bookID int64) error {
	args := m.Called(libraryID, bookID)
	return args.Error(0)
}

func (m *MockLibrariesStore) RemoveBook(libraryID, bookID int64) error {
	args := m.Called(libraryID, bookID)
	return args.Error(0)
}

func (m *MockLibrariesStore) SetLibrarian(libraryID int64, name string) (model.Librarian, error) {
	args := m.Called(libraryID, name)
	return args.Get(0).(model.Librarian), args.Error(1)
}

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
}

func (m *MockUsersStore) CreateUser(user *model.User, role model.Role) error {
	args := m.Called(user, role)
	return args.Error(0)
}

func (m *MockUsersStore) ShowUser(id int64) (model.User, error) {
	args := m.Called(id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUsersStore) FindUser(username string) (model.User, error) {
	args := m.Called(username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUsersStore) ListUsers() ([]model.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUsersStore) SetRole(userID int64, role model.Role) error {
	args := m.Called(userID, role)
	return args.Error(0)
}

// MockPostsStore implements store.PostsStore for testing using testify/mock
type MockPostsStore struct {
	mock.Mock
}

func NewMockPostsStore() *MockPostsStore {
	return &MockPostsStore{}
}

func (m *MockPostsStore) ListPosts(filter store.PostFilter) ([]model.Post, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostsStore) ShowPost(id int64) (model.Post, error) {
	args := m.Called(id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostsStore) CreatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostsStore) UpdatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostsStore) DeletePost(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostsStore) SetTags(postID int64, names []string) ([]model.Tag, error) {
	args := m.Called(postID, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockPostsStore) ListTags() ([]model.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockPostsStore) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockPostsStore) UpdateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockPostsStore) ListComments(postID int64) ([]model.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockPostsStore) ShowComment(id int64) (model.Comment, error) {
	args := m.Called(id)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockPostsStore) DeleteComment(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAuthzStore implements store.AuthzStore for testing using testify/mock
type MockAuthzStore struct {
	mock.Mock
}

func NewMockAuthzStore() *MockAuthzStore {
	return &MockAuthzStore{}
}

func (m *MockAuthzStore) RoleHasPermission(role model.Role, permission store.Permission) (bool, error) {
	args := m.Called(role, permission)
	return args.Bool(0), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
