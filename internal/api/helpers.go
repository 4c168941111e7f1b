package api

import (
	"encoding/json/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/storefrontapp/storefront-server/internal/errors"
)

// decode reads a JSON request body into dst and validates it.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		return errors.Validation("invalid JSON body")
	}
	return s.validator.Validate(dst)
}

// queryList splits a comma-separated query parameter, dropping blanks.
func queryList(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// queryBool reports whether a query parameter holds a truthy value.
func queryBool(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// queryFloat parses an optional numeric query parameter.
func queryFloat(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryInt parses an optional integer query parameter, else fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
