package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets browser clients on any origin talk to the game server. The
// protocol carries no credentials.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"Content-Type"},
	}
	return cors.New(options).Handler
}
