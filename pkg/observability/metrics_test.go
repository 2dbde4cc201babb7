package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsStages(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	m.OnStageStart(ctx, StageFlatten)
	m.OnStageComplete(ctx, StageFlatten, 12, 5*time.Millisecond, nil)
	m.OnStageComplete(ctx, StageFlatten, 0, time.Millisecond, errors.New("cycle"))

	if got := testutil.ToFloat64(m.stageTotal.WithLabelValues(StageFlatten, "success")); got != 1 {
		t.Errorf("success total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.stageTotal.WithLabelValues(StageFlatten, "error")); got != 1 {
		t.Errorf("error total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.stageItems.WithLabelValues(StageFlatten)); got != 12 {
		t.Errorf("items = %v, want 12 (failed run must not reset it)", got)
	}
}

func TestMetricsHTTP(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	m.OnResponse(ctx, "POST", "api.github.com", "/x", 502, time.Millisecond)
	m.OnResponse(ctx, "POST", "api.github.com", "/x", 201, time.Millisecond)
	m.OnError(ctx, "POST", "api.github.com", "/x", errors.New("reset"))

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "201")); got != 1 {
		t.Errorf("201 responses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.httpErrors.WithLabelValues("POST")); got != 1 {
		t.Errorf("errors = %v, want 1", got)
	}
}

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.OnStageComplete(context.Background(), StageRead, 3, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "swiftdeps.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `swiftdeps_stage_items{stage="read"} 3`) {
		t.Errorf("textfile missing stage gauge:\n%s", data)
	}
}

type countingStage struct {
	NoopStageHooks
	completed int
}

func (c *countingStage) OnStageComplete(context.Context, string, int, time.Duration, error) {
	c.completed++
}

type countingHTTP struct {
	NoopHTTPHooks
	requests int
}

func (c *countingHTTP) OnRequest(context.Context, string, string, string) {
	c.requests++
}

func TestMulti(t *testing.T) {
	ctx := context.Background()

	a, b := &countingStage{}, &countingStage{}
	stages := MultiStage(a, nil, b)
	stages.OnStageStart(ctx, StageRead)
	stages.OnStageComplete(ctx, StageRead, 1, time.Millisecond, nil)
	if a.completed != 1 || b.completed != 1 {
		t.Errorf("completed = %d, %d, want 1, 1", a.completed, b.completed)
	}

	x, y := &countingHTTP{}, &countingHTTP{}
	httpHooks := MultiHTTP(x, y, nil)
	httpHooks.OnRequest(ctx, "POST", "h", "/p")
	httpHooks.OnResponse(ctx, "POST", "h", "/p", 201, time.Millisecond)
	httpHooks.OnError(ctx, "POST", "h", "/p", nil)
	if x.requests != 1 || y.requests != 1 {
		t.Errorf("requests = %d, %d, want 1, 1", x.requests, y.requests)
	}
}
