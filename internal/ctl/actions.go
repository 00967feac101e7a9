package ctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"classifyd/pkg/client"
	"classifyd/pkg/types"
)

// apiClient is the subset of the classifyd client used by the commands.
type apiClient interface {
	Predict(ctx context.Context, model types.ModelID, text string) (types.Prediction, error)
	Health(ctx context.Context) (types.HealthResponse, error)
	Models(ctx context.Context) ([]types.ModelInfo, error)
	Status(ctx context.Context) (types.StatusResponse, error)
}

// fnNewClient is swapped in tests.
var fnNewClient = func(cfg *Config) apiClient {
	return client.New(cfg.Server, client.WithTimeout(cfg.Timeout))
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runPredict(ctx context.Context, cfg *Config, out io.Writer, model types.ModelID, text string) error {
	logger.Debug().Str("server", cfg.Server).Str("model", string(model)).Int("text_len", len(text)).Msg("predict")
	p, err := fnNewClient(cfg).Predict(ctx, model, text)
	if err != nil {
		return err
	}
	if cfg.Output == "json" {
		return printJSON(out, p)
	}
	_, err = fmt.Fprintf(out, "%s\tprediction=%d\tconfidence=%.4f\n", p.ModelType, p.Prediction, p.Confidence)
	return err
}

func runHealth(ctx context.Context, cfg *Config, out io.Writer) error {
	h, err := fnNewClient(cfg).Health(ctx)
	if err != nil {
		return err
	}
	if cfg.Output == "json" {
		return printJSON(out, h)
	}
	ids := make([]string, len(h.ModelsLoaded))
	for i, id := range h.ModelsLoaded {
		ids[i] = string(id)
	}
	_, err = fmt.Fprintf(out, "%s\tmodels=%s\n", h.Status, strings.Join(ids, ","))
	return err
}

func runModels(ctx context.Context, cfg *Config, out io.Writer) error {
	models, err := fnNewClient(cfg).Models(ctx)
	if err != nil {
		return err
	}
	if cfg.Output == "json" {
		return printJSON(out, types.ModelsResponse{Models: models})
	}
	for _, m := range models {
		if _, err := fmt.Fprintf(out, "%s\tlabels=%s\tmax_tokens=%d\t%s\n", m.ID, strings.Join(m.Labels, ","), m.MaxTokens, m.CheckpointPath); err != nil {
			return err
		}
	}
	return nil
}

func runStatus(ctx context.Context, cfg *Config, out io.Writer) error {
	st, err := fnNewClient(cfg).Status(ctx)
	if err != nil {
		return err
	}
	if cfg.Output == "json" {
		return printJSON(out, st)
	}
	fmt.Fprintf(out, "backend=%s device=%s uptime=%ds\n", st.Backend, st.Device, st.UptimeSeconds)
	for _, m := range st.Models {
		fmt.Fprintf(out, "%s\tpredictions=%d\terrors=%d\ttruncated=%d\n", m.ModelID, m.Predictions, m.Errors, m.Truncated)
	}
	if st.LastError != "" {
		fmt.Fprintf(out, "last_error=%s\n", st.LastError)
	}
	return nil
}

// runWait polls /health until the server reports healthy or timeout elapses.
func runWait(ctx context.Context, cfg *Config, out io.Writer, timeout, interval time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	c := fnNewClient(cfg)
	for {
		h, err := c.Health(ctx)
		if err == nil && h.Status == "healthy" {
			_, err = fmt.Fprintln(out, "healthy")
			return err
		}
		logger.Info().Err(err).Str("server", cfg.Server).Msg("waiting for classifyd")
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s to become healthy", cfg.Server)
		}
	}
}
