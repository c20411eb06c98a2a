package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/goodbooks/goodbooks-api/http/response"
)

const apiKeyHeader = "X-API-Key"

// AuthInterceptor guards the write path with a static API key check.
type AuthInterceptor struct {
	apiKey string
}

func NewAuthInterceptor(apiKey string) *AuthInterceptor {
	return &AuthInterceptor{apiKey: apiKey}
}

func (i *AuthInterceptor) Intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(i.apiKey)) != 1 {
			response.Unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
