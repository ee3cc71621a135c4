package playground_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/crm-graphql/internal/http/playground"
)

func TestPlaygroundRoutes(t *testing.T) {
	r := chi.NewRouter()
	playground.Register(r, "/graphql")

	t.Run("Should serve GraphiQL pointing at the endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, resp.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, resp.Body.String(), "url: '/graphql'")
	})

	t.Run("Should serve the schema", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, playground.SchemaPath, nil)
		resp := httptest.NewRecorder()

		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "type Query")
		assert.Contains(t, resp.Body.String(), "createOrder(input: OrderInput!)")
	})
}
