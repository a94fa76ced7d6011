package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browser clients from origins; an empty list allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{"Location", requestIDHeader},
		MaxAge:           600,
		AllowCredentials: false,
	})

	return handler.Handler
}
