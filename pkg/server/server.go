package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"bookshelf/pkg/config"
	"bookshelf/pkg/render"
	"bookshelf/pkg/server/middleware"
	"bookshelf/pkg/server/store"
	gormstore "bookshelf/pkg/server/store/gorm"
	"bookshelf/pkg/token"
)

type Server struct {
	Config        *config.Config
	Router        *mux.Router
	DB            *gorm.DB
	Issuer        *token.Issuer
	Authenticator *middleware.Authenticator
	Renderer      *render.Renderer

	BooksStore     store.BooksStore
	AuthorsStore   store.AuthorsStore
	LibrariesStore store.LibrariesStore
	UsersStore     store.UsersStore
	PostsStore     store.PostsStore
	AuthzStore     store.AuthzStore
	HealthStore    store.HealthStore

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	issuer *token.Issuer,
	cfg *config.Config,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Config:        cfg,
		Router:        router,
		DB:            db,
		Issuer:        issuer,
		Authenticator: middleware.NewAuthenticator(issuer),
		Renderer:      render.New(cfg.UnsafeMarkdown),

		BooksStore:     gormstore.NewBooksStore(db),
		AuthorsStore:   gormstore.NewAuthorsStore(db),
		LibrariesStore: gormstore.NewLibrariesStore(db),
		UsersStore:     gormstore.NewUsersStore(db),
		PostsStore:     gormstore.NewPostsStore(db),
		AuthzStore:     gormstore.NewAuthzStore(db),
		HealthStore:    gormstore.NewHealthStore(db),

		srv: srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
