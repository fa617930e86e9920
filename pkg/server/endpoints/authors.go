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

// AuthorRequest is the write payload for authors.
type AuthorRequest struct {
	Name *string `json:"name"`
}

// RegisterAuthorsEndpoints registers the author routes. Listing and
// detail responses nest each author's books.
func RegisterAuthorsEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/api/authors/", handleListAuthors(srv)).Methods("GET")
	router.Handle("/api/authors/", authed(srv, handleCreateAuthor(srv))).Methods("POST")
	router.HandleFunc("/api/authors/{id:[0-9]+}/", handleShowAuthor(srv)).Methods("GET")
	router.Handle("/api/authors/{id:[0-9]+}/", authed(srv, handleUpdateAuthor(srv))).Methods("PUT", "PATCH")
	router.Handle("/api/authors/{id:[0-9]+}/", authed(srv, handleDeleteAuthor(srv))).Methods("DELETE")
}

func handleListAuthors(srv *server.Server) http.HandlerFunc {
	authorsStore := srv.AuthorsStore

	return func(w http.ResponseWriter, r *http.Request) {
		authors, err := authorsStore.ListAuthors(r.URL.Query().Get("search"))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newAuthorResponses(authors))
	}
}

func handleShowAuthor(srv *server.Server) http.HandlerFunc {
	authorsStore := srv.AuthorsStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		author, err := authorsStore.ShowAuthor(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newAuthorResponse(author))
	}
}

func handleCreateAuthor(srv *server.Server) http.HandlerFunc {
	authorsStore := srv.AuthorsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanCreate)
		if !ok {
			return
		}

		var req AuthorRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Name == nil || *req.Name == "" {
			respondWithFieldErrors(w, map[string][]string{
				"name": {"This field is required."},
			})
			return
		}

		author := model.Author{Name: *req.Name}
		if err := authorsStore.CreateAuthor(&author); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "create",
			Subject:   "author/" + strconv.FormatInt(author.ID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, newAuthorResponse(author))
	}
}

func handleUpdateAuthor(srv *server.Server) http.HandlerFunc {
	authorsStore := srv.AuthorsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanEdit)
		if !ok {
			return
		}

		authorID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		var req AuthorRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Name == nil || *req.Name == "" {
			respondWithFieldErrors(w, map[string][]string{
				"name": {"This field is required."},
			})
			return
		}

		author := model.Author{ID: authorID, Name: *req.Name}
		if err := authorsStore.UpdateAuthor(&author); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		updated, err := authorsStore.ShowAuthor(authorID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "update",
			Subject:   "author/" + strconv.FormatInt(authorID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, newAuthorResponse(updated))
	}
}

func handleDeleteAuthor(srv *server.Server) http.HandlerFunc {
	authorsStore := srv.AuthorsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requirePermission(w, r, authzStore, store.CanDelete)
		if !ok {
			return
		}

		authorID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		if err := authorsStore.DeleteAuthor(authorID); err != nil {
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
			Subject:   "author/" + strconv.FormatInt(authorID, 10),
			Success:   true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}
