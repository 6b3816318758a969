package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/invest-portal/internal/models"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// SetMaxAge lets browsers and proxies reuse a response for ttl.
func SetMaxAge(w http.ResponseWriter, ttl time.Duration) {
	if ttl <= 0 {
		w.Header().Set("Cache-Control", "no-store")
		return
	}
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(ttl.Seconds())))
}

// pathSymbol reads the {symbol} route value, upper-cased.
func pathSymbol(r *http.Request) string {
	return models.NormalizeSymbol(r.PathValue("symbol"))
}

// validSymbol rejects route values that can never name a listed security.
func validSymbol(s string) bool {
	if s == "" || len(s) > 16 {
		return false
	}
	return !strings.ContainsAny(s, "/\\ ?#")
}
