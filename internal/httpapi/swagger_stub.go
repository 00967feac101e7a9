//go:build !swagger

package httpapi

import "github.com/go-chi/chi/v5"

// SwaggerEnabled reports whether the binary was built with -tags=swagger.
const SwaggerEnabled = false

// MountSwagger leaves r untouched; /swagger/* answers 404.
func MountSwagger(chi.Router) {}
