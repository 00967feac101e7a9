package httpapi

import (
	"context"
	"testing"
	"time"
)

func waitDone(t *testing.T, ctx context.Context, what string) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("%s: context not canceled", what)
	}
}

func TestJoinContexts_CancelsWhenEitherDone(t *testing.T) {
	for _, first := range []bool{true, false} {
		a, ac := context.WithCancel(context.Background())
		b, bc := context.WithCancel(context.Background())
		j, cancelJ := joinContexts(a, b)
		if first {
			ac()
		} else {
			bc()
		}
		waitDone(t, j, "joined")
		cancelJ()
		ac()
		bc()
	}
}

func TestJoinContexts_CancelFuncReleases(t *testing.T) {
	j, cancel := joinContexts(context.Background(), context.Background())
	cancel()
	waitDone(t, j, "explicit cancel")
}

func TestPredictContext_BaseContextShutdown(t *testing.T) {
	base, stop := context.WithCancel(context.Background())
	SetBaseContext(base)
	// nolint:staticcheck // SA1012: nil resets to Background
	defer SetBaseContext(nil)

	ctx, cancel := predictContext(context.Background())
	defer cancel()
	stop()
	waitDone(t, ctx, "shutdown")
}

func TestPredictContext_Timeout(t *testing.T) {
	defer SetPredictTimeoutSeconds(0)
	ctx, cancel := predictContext(context.Background())
	if _, ok := ctx.Deadline(); ok {
		t.Fatalf("no deadline expected when timeout disabled")
	}
	cancel()

	SetPredictTimeoutSeconds(2)
	ctx, cancel = predictContext(context.Background())
	defer cancel()
	dl, ok := ctx.Deadline()
	if !ok || time.Until(dl) > 2*time.Second {
		t.Fatalf("unexpected deadline %v ok=%v", dl, ok)
	}
}
