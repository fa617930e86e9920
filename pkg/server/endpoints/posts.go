package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"bookshelf/pkg/audit"
	"bookshelf/pkg/identity"
	"bookshelf/pkg/model"
	"bookshelf/pkg/server"
	"bookshelf/pkg/server/store"
)

// PostRequest is the write payload for posts.
type PostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// CommentRequest is the write payload for comments.
type CommentRequest struct {
	Content *string `json:"content"`
}

// TagsRequest replaces a post's tag set.
type TagsRequest struct {
	Tags []string `json:"tags"`
}

// RegisterPostsEndpoints registers the blog routes. Authors always manage
// their own posts; the role permission matrix additionally lets
// librarians and admins moderate everyone's.
func RegisterPostsEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/api/posts/", handleListPosts(srv)).Methods("GET")
	router.Handle("/api/posts/", authed(srv, handleCreatePost(srv))).Methods("POST")
	router.HandleFunc("/api/posts/{id:[0-9]+}/", handleShowPost(srv)).Methods("GET")
	router.Handle("/api/posts/{id:[0-9]+}/", authed(srv, handleUpdatePost(srv))).Methods("PUT", "PATCH")
	router.Handle("/api/posts/{id:[0-9]+}/", authed(srv, handleDeletePost(srv))).Methods("DELETE")

	router.HandleFunc("/api/posts/{id:[0-9]+}/comments/", handleListComments(srv)).Methods("GET")
	router.Handle("/api/posts/{id:[0-9]+}/comments/", authed(srv, handleCreateComment(srv))).Methods("POST")
	router.Handle("/api/comments/{id:[0-9]+}/", authed(srv, handleUpdateComment(srv))).Methods("PUT")
	router.Handle("/api/comments/{id:[0-9]+}/", authed(srv, handleDeleteComment(srv))).Methods("DELETE")

	router.Handle("/api/posts/{id:[0-9]+}/tags/", authed(srv, handleSetPostTags(srv))).Methods("PUT")
	router.HandleFunc("/api/tags/", handleListTags(srv)).Methods("GET")
}

// canModeratePost reports whether the caller may modify a post they do
// not own.
func canModeratePost(id *identity.Identity, authzStore store.AuthzStore, permission store.Permission) (bool, error) {
	return authzStore.RoleHasPermission(id.Role, permission)
}

func handleListPosts(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore

	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := store.PostFilter{
			Tag:    query.Get("tag"),
			Author: query.Get("author"),
			Search: query.Get("search"),
		}

		posts, err := postsStore.ListPosts(filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resps := make([]PostResponse, 0, len(posts))
		for _, post := range posts {
			html, err := srv.Renderer.HTML(post.Content)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			resps = append(resps, newPostResponse(post, html))
		}

		respondWithJSON(w, http.StatusOK, resps)
	}
}

func handleShowPost(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		post, err := postsStore.ShowPost(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		html, err := srv.Renderer.HTML(post.Content)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := newPostResponse(post, html)
		resp.Comments = newCommentResponses(post.Comments)
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleCreatePost(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req PostRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		fieldErrors := validatePostRequest(&req, false)
		if len(fieldErrors) > 0 {
			respondWithFieldErrors(w, fieldErrors)
			return
		}

		post := model.Post{
			Title:    *req.Title,
			Content:  *req.Content,
			AuthorID: id.UserID,
		}
		if err := postsStore.CreatePost(&post); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		created, err := postsStore.ShowPost(post.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		html, err := srv.Renderer.HTML(created.Content)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "create",
			Subject:   "post/" + strconv.FormatInt(post.ID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusCreated, newPostResponse(created, html))
	}
}

func handleUpdatePost(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		postID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		post, err := postsStore.ShowPost(postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if post.AuthorID != id.UserID {
			allowed, err := canModeratePost(id, authzStore, store.CanEdit)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !allowed {
				respondWithError(w, http.StatusForbidden, "You can only edit your own posts")
				return
			}
		}

		partial := r.Method == http.MethodPatch
		var req PostRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		fieldErrors := validatePostRequest(&req, partial)
		if len(fieldErrors) > 0 {
			respondWithFieldErrors(w, fieldErrors)
			return
		}

		if req.Title != nil {
			post.Title = *req.Title
		}
		if req.Content != nil {
			post.Content = *req.Content
		}

		if err := postsStore.UpdatePost(&post); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		html, err := srv.Renderer.HTML(post.Content)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "update",
			Subject:   "post/" + strconv.FormatInt(postID, 10),
			Success:   true,
		})

		respondWithJSON(w, http.StatusOK, newPostResponse(post, html))
	}
}

func handleDeletePost(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		postID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		post, err := postsStore.ShowPost(postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if post.AuthorID != id.UserID {
			allowed, err := canModeratePost(id, authzStore, store.CanDelete)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !allowed {
				respondWithError(w, http.StatusForbidden, "You can only delete your own posts")
				return
			}
		}

		if err := postsStore.DeletePost(postID); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.ChangeEvent{
			Username:  id.Username,
			ClientIP:  clientIP(r, srv.Config),
			Operation: "delete",
			Subject:   "post/" + strconv.FormatInt(postID, 10),
			Success:   true,
		})

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListComments(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore

	return func(w http.ResponseWriter, r *http.Request) {
		postID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		comments, err := postsStore.ListComments(postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newCommentResponses(comments))
	}
}

func handleCreateComment(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		postID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		var req CommentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Content == nil || *req.Content == "" {
			respondWithFieldErrors(w, map[string][]string{
				"content": {"This field is required."},
			})
			return
		}

		comment := model.Comment{
			PostID:   postID,
			AuthorID: id.UserID,
			Content:  *req.Content,
		}
		if err := postsStore.CreateComment(&comment); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		created, err := postsStore.ShowComment(comment.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusCreated, newCommentResponse(created))
	}
}

func handleUpdateComment(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		commentID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		comment, err := postsStore.ShowComment(commentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if comment.AuthorID != id.UserID {
			allowed, err := canModeratePost(id, authzStore, store.CanEdit)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !allowed {
				respondWithError(w, http.StatusForbidden, "You can only edit your own comments")
				return
			}
		}

		var req CommentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Content == nil || *req.Content == "" {
			respondWithFieldErrors(w, map[string][]string{
				"content": {"This field is required."},
			})
			return
		}

		comment.Content = *req.Content
		if err := postsStore.UpdateComment(&comment); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newCommentResponse(comment))
	}
}

func handleDeleteComment(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		commentID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		comment, err := postsStore.ShowComment(commentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if comment.AuthorID != id.UserID {
			allowed, err := canModeratePost(id, authzStore, store.CanDelete)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !allowed {
				respondWithError(w, http.StatusForbidden, "You can only delete your own comments")
				return
			}
		}

		if err := postsStore.DeleteComment(commentID); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSetPostTags(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore
	authzStore := srv.AuthzStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		postID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		post, err := postsStore.ShowPost(postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if post.AuthorID != id.UserID {
			allowed, err := canModeratePost(id, authzStore, store.CanEdit)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !allowed {
				respondWithError(w, http.StatusForbidden, "You can only tag your own posts")
				return
			}
		}

		var req TagsRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		tags, err := postsStore.SetTags(postID, req.Tags)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newTagResponses(tags))
	}
}

func handleListTags(srv *server.Server) http.HandlerFunc {
	postsStore := srv.PostsStore

	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := postsStore.ListTags()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newTagResponses(tags))
	}
}

func validatePostRequest(req *PostRequest, partial bool) map[string][]string {
	fieldErrors := map[string][]string{}

	if req.Title == nil {
		if !partial {
			fieldErrors["title"] = append(fieldErrors["title"], "This field is required.")
		}
	} else if *req.Title == "" {
		fieldErrors["title"] = append(fieldErrors["title"], "This field may not be blank.")
	}

	if req.Content == nil {
		if !partial {
			fieldErrors["content"] = append(fieldErrors["content"], "This field is required.")
		}
	} else if *req.Content == "" {
		fieldErrors["content"] = append(fieldErrors["content"], "This field may not be blank.")
	}

	return fieldErrors
}
