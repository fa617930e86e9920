package endpoints

import (
	"errors"
	"net/http"

	"bookshelf/pkg/audit"
	"bookshelf/pkg/server"
	"bookshelf/pkg/server/store"
)

// TokenRequest is the credential payload for /api-token-auth/.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterAuthenticateEndpoint registers the token authentication route.
func RegisterAuthenticateEndpoint(srv *server.Server) {
	srv.Router.HandleFunc("/api-token-auth/", handleAuthenticate(srv)).Methods("POST")
}

func handleAuthenticate(srv *server.Server) http.HandlerFunc {
	usersStore := srv.UsersStore

	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if req.Username == "" || req.Password == "" {
			respondWithFieldErrors(w, map[string][]string{
				"non_field_errors": {"Must include username and password."},
			})
			return
		}

		ip := clientIP(r, srv.Config)

		user, err := usersStore.FindUser(req.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				audit.Log(audit.AuthenticateEvent{
					Username:     req.Username,
					ClientIP:     ip,
					Success:      false,
					ErrorMessage: "unknown user",
				})
				respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if !user.IsActive || !user.CheckPassword(req.Password) {
			audit.Log(audit.AuthenticateEvent{
				Username:     req.Username,
				ClientIP:     ip,
				Success:      false,
				ErrorMessage: "bad credentials",
			})
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		signed, err := srv.Issuer.Issue(&user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Username: req.Username,
			ClientIP: ip,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, TokenResponse{Token: signed})
	}
}
