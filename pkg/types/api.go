package types

// PredictRequest is the body accepted by the per-model prediction routes.
type PredictRequest struct {
	// Raw text to classify. Long inputs are truncated to the model's token limit.
	// example: Your account has been suspended, verify your password here.
	Text string `json:"text" example:"Your account has been suspended, verify your password here."`
}

// Prediction is returned by the per-model prediction routes.
type Prediction struct {
	// Index of the most probable class.
	// example: 1
	Prediction int `json:"prediction" example:"1"`
	// Softmax probability of the predicted class, in [0,1].
	// example: 0.9731
	Confidence float64 `json:"confidence" example:"0.9731"`
	// Model that produced the prediction.
	// example: email
	ModelType ModelID `json:"model_type" example:"email"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Identifiers of the loaded models.
	// example: ["umpire","email","url"]
	ModelsLoaded []ModelID `json:"models_loaded" example:"[\"umpire\",\"email\",\"url\"]"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of loaded models.
	Models []ModelInfo `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model not found: spam
	Detail string `json:"detail" example:"model not found: spam"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// ModelStatus summarizes per-model serving counters for /status.
type ModelStatus struct {
	// example: email
	ModelID ModelID `json:"model_id" example:"email"`
	// Number of successful predictions.
	// example: 1200
	Predictions uint64 `json:"predictions" example:"1200"`
	// Number of failed predictions.
	// example: 2
	Errors uint64 `json:"errors" example:"2"`
	// Number of inputs that were truncated to the token limit.
	// example: 17
	Truncated uint64 `json:"truncated" example:"17"`
	// Last time this model served a request (unix seconds, 0 if never).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Per-model counters, in route order.
	Models []ModelStatus `json:"models"`
	// Runtime backend serving the models.
	// example: onnxruntime
	Backend string `json:"backend" example:"onnxruntime"`
	// Compute device selected at startup.
	// example: cpu
	Device string `json:"device" example:"cpu"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
}
