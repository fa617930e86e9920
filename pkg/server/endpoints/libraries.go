package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/pkg/audit"
	"bookshelf/pkg/model"
	"bookshelf/pkg/server"
	"bookshelf/pkg/server/store"
)

// LibraryRequest is the write payload for libraries.
type LibraryRequest struct {
	Name *string `json:"name"`
}

// LibraryBookRequest names the book to add to a library's collection.
type LibraryBookRequest struct {
	Book *int64 `json:"book_id"`
}

// LibrarianRequest is the payload for assigning a librarian.
type LibrarianRequest struct {
	Name *string `json:"name"`
}

// RegisterLibrariesEndpoints registers the library routes, including the
// collection membership and librarian assignment sub-resources.
func RegisterLibrariesEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/api/libraries/", handleListLibraries(srv)).Methods("GET")
	router.Handle("/api/libraries/", authed(srv, handleCreateLibrary(srv))).Methods("POST")
	router.HandleFunc("/api/libraries/{id:[0-9]+}/", handleShowLibrary(srv)).Methods("GET")
	router.Handle("/api/libraries/{id:[0-9]+}/", authed(srv, handleUpdateLibrary(srv))).Methods("PUT", "PATCH")
	router.Handle("/api/libraries/{id:[0-9]+}/", authed(srv, handleDeleteLibrary(srv))).Methods("DELETE")

	router.Handle("/api/libraries/{id:[0-9]+}/books/", authed(srv, handleAddLibraryBook(srv))).Methods("POST")
	router.Handle("/api/libraries/{id:[0-9]+}/books/{book_id:[0-9]+}/", authed(srv, handleRemoveLibraryBook(srv))).Methods("DELETE")
	router.Handle("/api/libraries/{id:[0-9]+}/librarian/", authed(srv, handleSetLibrarian(srv))).Methods("PUT")
}

func handleListLibraries(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore

	return func(w http.ResponseWriter, r *http.Request) {
		libraries, err := librariesStore.ListLibraries()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newLibraryResponses(libraries))
	}
}

func handleShowLibrary(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		library, err := librariesStore.ShowLibrary(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newLibraryResponse(library))
	}
}

func handleCreateLibrary(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		var req LibraryRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Name == nil || *req.Name == "" {
			respondWithFieldErrors(w, map[string][]string{
				"name": {"This field is required."},
			})
			return
		}

		library := model.Library{Name: *req.Name}
		if err := librariesStore.CreateLibrary(&library); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "create",
			Subject:   "library/" + strconv.FormatInt(library.ID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, newLibraryResponse(library))
	}
}

func handleUpdateLibrary(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanEdit)
		if !ok {
			return
		}

		libraryID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		var req LibraryRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Name == nil || *req.Name == "" {
			respondWithFieldErrors(w, map[string][]string{
				"name": {"This field is required."},
			})
			return
		}

		library := model.Library{ID: libraryID, Name: *req.Name}
		if err := librariesStore.UpdateLibrary(&library); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		updated, err := librariesStore.ShowLibrary(libraryID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "update",
			Subject:   "library/" + strconv.FormatInt(libraryID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, newLibraryResponse(updated))
	}
}

func handleDeleteLibrary(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		libraryID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		if err := librariesStore.DeleteLibrary(libraryID); err != nil {
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
			Subject:   "library/" + strconv.FormatInt(libraryID, 10),
			Success:   true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleAddLibraryBook(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanEdit)
		if !ok {
			return
		}

		libraryID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		var req LibraryBookRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Book == nil {
			respondWithFieldErrors(w, map[string][]string{
				"book_id": {"This field is required."},
			})
			return
		}

		if err := librariesStore.AddBook(libraryID, *req.Book); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		library, err := librariesStore.ShowLibrary(libraryID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "link",
			Subject:   "library/" + strconv.FormatInt(libraryID, 10) + "/book/" + strconv.FormatInt(*req.Book, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, newLibraryResponse(library))
	}
}

func handleRemoveLibraryBook(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanEdit)
		if !ok {
			return
		}

		libraryID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}
		bookID, ok := pathID(r, "book_id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		if err := librariesStore.RemoveBook(libraryID, bookID); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrNotLinked):
				respondWithError(w, http.StatusNotFound, "Not found")
			default:
				respondWithError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "unlink",
			Subject:   "library/" + strconv.FormatInt(libraryID, 10) + "/book/" + strconv.FormatInt(bookID, 10),
			Success:   true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSetLibrarian(srv *server.Server) http.HandlerFunc {
	librariesStore := srv.LibrariesStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		libraryID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		var req LibrarianRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Name == nil || *req.Name == "" {
			respondWithFieldErrors(w, map[string][]string{
				"name": {"This field is required."},
			})
			return
		}

		librarian, err := librariesStore.SetLibrarian(libraryID, *req.Name)
		if err != nil {
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
			Operation: "assign",
			Subject:   "library/" + strconv.FormatInt(libraryID, 10) + "/librarian",
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, LibrarianRef{ID: librarian.ID, Name: librarian.Name})
	}
}
