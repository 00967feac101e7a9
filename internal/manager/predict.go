package manager

import (
	"context"
	"errors"
	"strconv"
	"time"

	"classifyd/internal/engine"
	"classifyd/pkg/types"
)

// Predict classifies text with the model registered under id. It is the one
// inference path behind every prediction route.
//
// Unknown ids return ErrModelNotFound. Runtime and tokenizer failures are
// wrapped in an inference error. A canceled context returns ctx.Err().
func (m *Manager) Predict(ctx context.Context, id types.ModelID, text string) (types.Prediction, error) {
	if m.reg == nil {
		return types.Prediction{}, ErrDependencyUnavailable("no models loaded")
	}
	c, ok := m.reg.Get(id)
	if !ok {
		return types.Prediction{}, ErrModelNotFound(string(id))
	}
	if err := ctx.Err(); err != nil {
		return types.Prediction{}, err
	}
	st := m.stats[id]
	st.touch()

	start := time.Now()
	res, err := c.Predict(ctx, text)
	dur := time.Since(start)
	inferenceDuration.WithLabelValues(string(id)).Observe(dur.Seconds())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.Prediction{}, ctxErr
		}
		st.errors.Add(1)
		inferenceErrorsTotal.WithLabelValues(string(id)).Inc()
		m.setLastErr(err)
		m.publisher().Publish(Event{
			Name:   EventPredictError,
			Model:  id,
			At:     time.Now(),
			Fields: map[string]any{"error": err.Error(), "dur_ms": dur.Milliseconds()},
		})
		m.log.Error().Err(err).Str("model", string(id)).Msg("prediction failed")
		if errors.Is(err, engine.ErrUnavailable) {
			return types.Prediction{}, ErrDependencyUnavailable(err.Error())
		}
		return types.Prediction{}, inferenceError{id: string(id), err: err}
	}

	st.predictions.Add(1)
	predictionsTotal.WithLabelValues(string(id), strconv.Itoa(res.Class)).Inc()
	if res.Truncated {
		st.truncated.Add(1)
		truncatedInputsTotal.WithLabelValues(string(id)).Inc()
	}
	m.publisher().Publish(Event{
		Name:  EventPredictOK,
		Model: id,
		At:    time.Now(),
		Fields: map[string]any{
			"class":      res.Class,
			"label":      res.Label,
			"confidence": res.Confidence,
			"tokens":     res.Tokens,
			"truncated":  res.Truncated,
			"dur_ms":     dur.Milliseconds(),
		},
	})
	return types.Prediction{
		Prediction: res.Class,
		Confidence: res.Confidence,
		ModelType:  id,
	}, nil
}
