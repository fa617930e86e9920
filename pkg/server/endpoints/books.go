package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookshelf/pkg/audit"
	"bookshelf/pkg/model"
	"bookshelf/pkg/server"
	"bookshelf/pkg/server/store"
)

// BookRequest is the write payload for books. Pointer fields distinguish
// a missing key from a zero value so PATCH can be partial.
type BookRequest struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	Author          *int64  `json:"author"`
}

// RegisterBooksEndpoints registers the book catalog routes. Reads are
// public; writes require a token and a role with the matching permission.
func RegisterBooksEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/api/books/", handleListBooks(srv)).Methods("GET")
	router.Handle("/api/books/", authed(srv, handleCreateBook(srv))).Methods("POST")
	router.HandleFunc("/api/books/{id:[0-9]+}/", handleShowBook(srv)).Methods("GET")
	router.Handle("/api/books/{id:[0-9]+}/", authed(srv, handleUpdateBook(srv, false))).Methods("PUT")
	router.Handle("/api/books/{id:[0-9]+}/", authed(srv, handleUpdateBook(srv, true))).Methods("PATCH")
	router.Handle("/api/books/{id:[0-9]+}/", authed(srv, handleDeleteBook(srv))).Methods("DELETE")
}

func handleListBooks(srv *server.Server) http.HandlerFunc {
	booksStore := srv.BooksStore

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := store.BookFilter{
			Title:    query.Get("title"),
			Author:   query.Get("author"),
			Search:   query.Get("search"),
			Ordering: query.Get("ordering"),
		}
		if raw := query.Get("publication_year"); raw != "" {
			year, err := strconv.Atoi(raw)
			if err != nil {
				respondWithFieldErrors(w, map[string][]string{
					"publication_year": {"Enter a number."},
				})
				return
			}
			filter.PublicationYear = &year
		}
		if raw := query.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				respondWithFieldErrors(w, map[string][]string{
					"limit": {"Enter a number."},
				})
				return
			}
			filter.Limit = limit
		}
		if raw := query.Get("offset"); raw != "" {
			offset, err := strconv.Atoi(raw)
			if err != nil || offset < 0 {
				respondWithFieldErrors(w, map[string][]string{
					"offset": {"Enter a number."},
				})
				return
			}
			filter.Offset = offset
		}

		books, err := booksStore.ListBooks(filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newBookResponses(books))
	}
}

func handleShowBook(srv *server.Server) http.HandlerFunc {
	booksStore := srv.BooksStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		book, err := booksStore.ShowBook(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newBookResponse(book))
	}
}

func handleCreateBook(srv *server.Server) http.HandlerFunc {
	booksStore := srv.BooksStore
	authorsStore := srv.AuthorsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanCreate)
		if !ok {
			return
		}

		var req BookRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		fieldErrors := validateBookRequest(&req, false)
		if len(fieldErrors) > 0 {
			respondWithFieldErrors(w, fieldErrors)
			return
		}

		if _, err := authorsStore.ShowAuthor(*req.Author); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithFieldErrors(w, map[string][]string{
					"author": {"Invalid pk \"" + strconv.FormatInt(*req.Author, 10) + "\" - object does not exist."},
				})
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		book := model.Book{
			Title:           *req.Title,
			PublicationYear: *req.PublicationYear,
			AuthorID:        *req.Author,
		}
		if err := booksStore.CreateBook(&book); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		created, err := booksStore.ShowBook(book.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "create",
			Subject:   "book/" + strconv.FormatInt(book.ID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, newBookResponse(created))
	}
}

func handleUpdateBook(srv *server.Server, partial bool) http.HandlerFunc {
	booksStore := srv.BooksStore
	authorsStore := srv.AuthorsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanEdit)
		if !ok {
			return
		}

		bookID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		book, err := booksStore.ShowBook(bookID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		var req BookRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		fieldErrors := validateBookRequest(&req, partial)
		if len(fieldErrors) > 0 {
			respondWithFieldErrors(w, fieldErrors)
			return
		}

		if req.Title != nil {
			book.Title = *req.Title
		}
		if req.PublicationYear != nil {
			book.PublicationYear = *req.PublicationYear
		}
		if req.Author != nil {
			if _, err := authorsStore.ShowAuthor(*req.Author); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					respondWithFieldErrors(w, map[string][]string{
						"author": {"Invalid pk \"" + strconv.FormatInt(*req.Author, 10) + "\" - object does not exist."},
					})
					return
				}
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			book.AuthorID = *req.Author
		}

		if err := booksStore.UpdateBook(&book); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		updated, err := booksStore.ShowBook(bookID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "update",
			Subject:   "book/" + strconv.FormatInt(bookID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, newBookResponse(updated))
	}
}

func handleDeleteBook(srv *server.Server) http.HandlerFunc {
	booksStore := srv.BooksStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanDelete)
		if !ok {
			return
		}

		bookID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		if err := booksStore.DeleteBook(bookID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "delete",
			Subject:   "book/" + strconv.FormatInt(bookID, 10),
			Success:   true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

// validateBookRequest checks the write payload. For partial updates a
// missing field is fine; a present field still has to be valid.
func validateBookRequest(req *BookRequest, partial bool) map[string][]string {
	fieldErrors := map[string][]string{}

	if req.Title == nil {
		if !partial {
			fieldErrors["title"] = append(fieldErrors["title"], "This field is required.")
		}
	} else if *req.Title == "" {
		fieldErrors["title"] = append(fieldErrors["title"], "This field may not be blank.")
	}

	if req.PublicationYear == nil {
		if !partial {
			fieldErrors["publication_year"] = append(fieldErrors["publication_year"], "This field is required.")
		}
	} else if *req.PublicationYear > time.Now().Year() {
		fieldErrors["publication_year"] = append(fieldErrors["publication_year"], "Publication year cannot be in the future.")
	}

	if req.Author == nil && !partial {
		fieldErrors["author"] = append(fieldErrors["author"], "This field is required.")
	}

	return fieldErrors
}
