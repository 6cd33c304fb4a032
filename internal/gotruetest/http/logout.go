package http

import (
	"net/http"
)

func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	if !r.checkAPIKey(w, req) {
		return
	}

	if err := r.Tokens.Revoke(req.Context(), bearerToken(req)); err != nil {
		writeAuthError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
