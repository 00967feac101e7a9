package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"classifyd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, id types.ModelID, text string) (types.Prediction, error)
	Health() types.HealthResponse
	ListModels() []types.ModelInfo
	Status() types.StatusResponse
	Ready() bool
}

// requestIDHeader carries the chi request id back to the caller.
const requestIDHeader = "X-Request-Id"

type api struct {
	svc Service
}

// NewMux builds the router: one POST route per known model, the generic
// /predict/{model} route, health and operational endpoints.
func NewMux(svc Service) http.Handler {
	a := &api{svc: svc}
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   corsAllowedMethods,
			AllowedHeaders:   corsAllowedHeaders,
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: corsAllowCredentials,
			MaxAge:           300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				w.Header().Set(requestIDHeader, rid)
			}
			next.ServeHTTP(w, r)
		})
	})

	for _, id := range types.KnownModels {
		r.Post("/"+string(id), a.predictFixed(id))
	}
	r.Post("/predict/{model}", a.handlePredictModel)

	r.Get("/health", a.handleHealth)
	r.Get("/models", a.handleModels)
	r.Get("/status", a.handleStatus)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// predictFixed serves POST /umpire, /email and /url.
//
// @Summary      Classify text with a fixed model
// @Description  Tokenizes the text (truncating to the model's token limit), runs the model and returns the most probable class.
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        body  body      types.PredictRequest  true  "Text to classify"
// @Success      200   {object}  types.Prediction
// @Failure      400   {object}  types.ErrorResponse
// @Failure      413   {object}  types.ErrorResponse
// @Failure      415   {object}  types.ErrorResponse
// @Failure      422   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Router       /umpire [post]
// @Router       /email [post]
// @Router       /url [post]
func (a *api) predictFixed(id types.ModelID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.predict(w, r, id)
	}
}

// handlePredictModel godoc
// @Summary      Classify text with a model chosen by path
// @Tags         predict
// @Accept       json
// @Produce      json
// @Param        model  path      string                true  "Model identifier"  Enums(umpire, email, url)
// @Param        body   body      types.PredictRequest  true  "Text to classify"
// @Success      200    {object}  types.Prediction
// @Failure      404    {object}  types.ErrorResponse
// @Failure      422    {object}  types.ErrorResponse
// @Failure      500    {object}  types.ErrorResponse
// @Router       /predict/{model} [post]
func (a *api) handlePredictModel(w http.ResponseWriter, r *http.Request) {
	a.predict(w, r, types.ModelID(chi.URLParam(r, "model")))
}

func (a *api) predict(w http.ResponseWriter, r *http.Request, id types.ModelID) {
	text, status, msg := decodePredictRequest(w, r)
	if status != 0 {
		writeJSONError(w, status, msg)
		return
	}
	lvl := requestLogLevel(r)
	start := time.Now()
	if lvl >= LevelDebug {
		if zlog != nil {
			zlog.Debug().Str("model", string(id)).Int("text_len", len(text)).Msg("predict start")
		} else {
			log.Printf("predict start model=%s text_len=%d", id, len(text))
		}
	}

	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := predictContext(r.Context())
	defer cancel()
	pred, err := a.svc.Predict(ctx, id, text)
	if err != nil {
		// Client went away or the server is shutting down: nobody to answer.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		code := statusFor(err)
		writeJSONError(w, code, detailFor(err))
		logPredict(r, lvl, string(id), code, start, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
	logPredict(r, lvl, string(id), http.StatusOK, start, nil)
}

// decodePredictRequest validates the body of a prediction request. It returns
// the text, or a non-zero status and message for the client.
func decodePredictRequest(w http.ResponseWriter, r *http.Request) (string, int, string) {
	// A missing Content-Type is read as JSON.
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != "application/json" {
			return "", http.StatusUnsupportedMediaType, "Content-Type must be application/json"
		}
	}
	// Limit body size (configurable, default 1MiB)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		var tooLarge *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &tooLarge):
			return "", http.StatusRequestEntityTooLarge, "request body too large"
		case errors.As(err, &typeErr):
			return "", http.StatusUnprocessableEntity, "request body must be a JSON object"
		case errors.Is(err, io.EOF):
			return "", http.StatusBadRequest, "request body is empty"
		default:
			return "", http.StatusBadRequest, "invalid JSON body"
		}
	}
	raw, ok := fields["text"]
	if !ok {
		return "", http.StatusUnprocessableEntity, "field 'text' is required"
	}
	var text string
	if string(raw) == "null" || json.Unmarshal(raw, &text) != nil {
		return "", http.StatusUnprocessableEntity, "field 'text' must be a string"
	}
	return text, 0, ""
}

// handleHealth godoc
// @Summary      Service health
// @Description  Reports status and the identifiers of the loaded models.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Failure      503  {object}  types.HealthResponse
// @Router       /health [get]
func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	if !a.svc.Ready() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, a.svc.Health())
}

// handleModels godoc
// @Summary      List loaded models
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /models [get]
func (a *api) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.ModelsResponse{Models: a.svc.ListModels()})
}

// handleStatus godoc
// @Summary      Serving status
// @Description  Uptime, runtime backend and per-model counters.
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (a *api) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.Status())
}
