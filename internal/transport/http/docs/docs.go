// Package docs serves the OpenAPI document and the Swagger UI that renders it.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

//go:embed openapi.json
var openAPI []byte

// Routes mounts /doc.json and the Swagger UI on r.
func Routes(r chi.Router) {
	r.Get("/doc.json", serveDoc)
	r.Get("/*", httpSwagger.Handler(httpSwagger.URL("doc.json")))
}

func serveDoc(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(openAPI)
}
