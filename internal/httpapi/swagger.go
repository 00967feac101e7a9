//go:build swagger

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"

	_ "classifyd/docs"
)

// SwaggerEnabled reports whether the binary was built with -tags=swagger.
const SwaggerEnabled = true

// MountSwagger serves the Swagger UI at /swagger/ and the OpenAPI document
// registered by classifyd/docs at /swagger/doc.json. Regenerate that package
// with `swag init -g cmd/classifyd/docs.go` after changing annotations.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "swagger spec not generated: "+err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
