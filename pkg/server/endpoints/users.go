package endpoints

import (
	"errors"
	"net/http"
	"time"

	"bookshelf/pkg/audit"
	"bookshelf/pkg/model"
	"bookshelf/pkg/server"
	"bookshelf/pkg/server/store"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
}

// SetRoleRequest is the payload for changing a user's role.
type SetRoleRequest struct {
	Role string `json:"role"`
}

// RegisterUsersEndpoints registers the account management routes.
func RegisterUsersEndpoints(srv *server.Server) {
	router := srv.Router

	router.HandleFunc("/api/users/register/", handleRegisterUser(srv)).Methods("POST")
	router.Handle("/api/users/me/", authed(srv, handleWhoami(srv))).Methods("GET")
	router.Handle("/api/users/", authed(srv, handleListUsers(srv))).Methods("GET")
	router.Handle("/api/users/{id:[0-9]+}/role/", authed(srv, handleSetRole(srv))).Methods("PUT")
}

func handleRegisterUser(srv *server.Server) http.HandlerFunc {
	usersStore := srv.UsersStore

	return func(w http.ResponseWriter, r *http.Request) {
		if !srv.Config.RegistrationOpen {
			respondWithError(w, http.StatusForbidden, "Registration is closed")
			return
		}

		var req RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		fieldErrors := map[string][]string{}
		if req.Username == "" {
			fieldErrors["username"] = append(fieldErrors["username"], "This field is required.")
		}
		if len(req.Password) < 8 {
			fieldErrors["password"] = append(fieldErrors["password"], "Password must be at least 8 characters.")
		}

		var dob *time.Time
		if req.DateOfBirth != "" {
			parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				fieldErrors["date_of_birth"] = append(fieldErrors["date_of_birth"], "Date has wrong format. Use YYYY-MM-DD.")
			} else {
				dob = &parsed
			}
		}

		if len(fieldErrors) > 0 {
			respondWithFieldErrors(w, fieldErrors)
			return
		}

		// Config.Validate guarantees default_role parses.
		role, err := model.RoleString(srv.Config.DefaultRole)
		if err != nil {
			role = model.RoleMember
		}

		user := model.User{
			Username:    req.Username,
			Email:       req.Email,
			DateOfBirth: dob,
			IsActive:    true,
		}
		if err := user.SetPassword(req.Password); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if err := usersStore.CreateUser(&user, role); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				respondWithFieldErrors(w, map[string][]string{
					"username": {"A user with that username already exists."},
				})
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusCreated, newUserResponse(user))
	}
}

func handleWhoami(srv *server.Server) http.HandlerFunc {
	usersStore := srv.UsersStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		user, err := usersStore.ShowUser(id.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusUnauthorized, "Account no longer exists")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newUserResponse(user))
	}
}

func handleListUsers(srv *server.Server) http.HandlerFunc {
	usersStore := srv.UsersStore

	return func(w http.ResponseWriter, r *http.Request) {
		_, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		users, err := usersStore.ListUsers()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, newUserResponses(users))
	}
}

func handleSetRole(srv *server.Server) http.HandlerFunc {
	usersStore := srv.UsersStore

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		targetID, ok := pathID(r, "id")
		if !ok {
			respondWithError(w, http.StatusNotFound, "Not found")
			return
		}

		var req SetRoleRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		role, err := model.RoleString(req.Role)
		if err != nil {
			respondWithFieldErrors(w, map[string][]string{
				"role": {"\"" + req.Role + "\" is not a valid choice."},
			})
			return
		}

		ip := clientIP(r, srv.Config)

		if err := usersStore.SetRole(targetID, role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		user, err := usersStore.ShowUser(targetID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.RoleChangeEvent{
			Username:   id.Username,
			ClientIP:   ip,
			TargetUser: user.Username,
			NewRole:    role.String(),
			Success:    true,
		})

		respondWithJSON(w, http.StatusOK, newUserResponse(user))
	}
}
