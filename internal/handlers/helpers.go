package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Lixing-Zhang/coffee-shop/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
)

var errBadID = errors.New("invalid id")

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON request body of at most 1 MiB into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses a positive numeric URL parameter.
func pathID(r *http.Request, name string) (uint, error) {
	id, err := cast.ToUintE(chi.URLParam(r, name))
	if err != nil || id == 0 {
		return 0, errBadID
	}
	return id, nil
}

// queryInt reads an integer query parameter, falling back to def when it is
// missing or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return def
	}
	return v
}

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, name string) *bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return nil
	}
	return &v
}

// actingUserID is the authenticated user of the request, or 0.
func actingUserID(r *http.Request) uint {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return 0
	}
	return claims.UserID
}
