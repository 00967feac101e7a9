package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// predictTimeout bounds a single prediction request, in seconds.
// Zero means no additional timeout beyond server/connection timeouts.
var predictTimeout = int64(0)

// SetPredictTimeoutSeconds sets the prediction timeout in seconds (0 disables).
func SetPredictTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	predictTimeout = sec
}

// CORS configuration. Permissive by default: any origin, method and header,
// with credentials allowed.
var (
	corsEnabled          = true
	corsAllowedOrigins   = []string{"*"}
	corsAllowedMethods   = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"}
	corsAllowedHeaders   = []string{"*"}
	corsAllowCredentials = true
)

// SetCORSOptions configures CORS behavior for the HTTP server. If disabled,
// no CORS middleware is added.
func SetCORSOptions(enabled bool, origins, methods, headers []string, allowCredentials bool) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
	corsAllowCredentials = allowCredentials
}
