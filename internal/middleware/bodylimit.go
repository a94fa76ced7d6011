package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go-tms-api/internal/model"
)

// BodyLimit caps request bodies at maxBytes. Declared oversize bodies are
// refused up front; others fail with *http.MaxBytesError once read past the cap.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(model.ErrorResponse{
					Code:    "PAYLOAD_TOO_LARGE",
					Message: fmt.Sprintf("request body exceeds %d bytes", maxBytes),
				})
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
