package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"bookshelf/pkg/config"
	"bookshelf/pkg/identity"
	"bookshelf/pkg/model"
	"bookshelf/pkg/server/store"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

// respondWithFieldErrors emits a validation failure as a map of field name
// to messages, the shape API clients expect for 400s.
func respondWithFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	respondWithJSON(w, http.StatusBadRequest, fields)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireIdentity pulls the authenticated identity off the context. The
// auth middleware guarantees it for protected routes; a miss means the
// route was wired without the middleware.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return id, true
}

// requireAdmin enforces the admin role regardless of the permission matrix.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}
	if id.Role != model.RoleAdmin {
		respondWithError(w, http.StatusForbidden, "Admin role required")
		return nil, false
	}
	return id, true
}

// requirePermission enforces the role permission matrix for a write.
func requirePermission(w http.ResponseWriter, r *http.Request, authzStore store.AuthzStore, permission store.Permission) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}

	allowed, err := authzStore.RoleHasPermission(id.Role, permission)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if !allowed {
		respondWithError(w, http.StatusForbidden,
			"Role "+id.Role.String()+" does not have "+string(permission))
		return nil, false
	}
	return id, true
}

// clientIP resolves the request's client address, honoring X-Forwarded-For
// only when the peer is a trusted proxy.
func clientIP(r *http.Request, cfg *config.Config) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if cfg != nil && cfg.IsTrustedProxy(host) {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			parts := strings.Split(forwarded, ",")
			return strings.TrimSpace(parts[0])
		}
	}
	return host
}

// decodeJSON parses the request body into dst, rejecting malformed JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
