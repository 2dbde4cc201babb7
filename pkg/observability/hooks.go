// Package observability provides hooks for instrumenting swiftdeps runs.
//
// Libraries report events through the registered hooks; the defaults are
// no-ops, so instrumentation costs nothing unless the program installs an
// implementation at startup:
//
//	func main() {
//	    observability.SetStageHooks(&myStageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Stages().OnStageStart(ctx, observability.StageFlatten)
//	// ... do work ...
//	observability.Stages().OnStageComplete(ctx, observability.StageFlatten, n, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names reported to [StageHooks].
const (
	StageRead    = "read"
	StageFlatten = "flatten"
	StageWrite   = "write"
	StageSubmit  = "submit"
	StageRender  = "render"
)

// =============================================================================
// Stage Hooks
// =============================================================================

// StageHooks receives events from the conversion pipeline. count is the
// number of items the stage produced (records read, packages resolved,
// bytes written).
type StageHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, count int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStageHooks is a no-op implementation of StageHooks.
type NoopStageHooks struct{}

func (NoopStageHooks) OnStageStart(context.Context, string)                                 {}
func (NoopStageHooks) OnStageComplete(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	stageHooks StageHooks = NoopStageHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetStageHooks registers custom stage hooks. Nil is ignored.
func SetStageHooks(h StageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stageHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Stages returns the registered stage hooks.
func Stages() StageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stageHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	stageHooks = NoopStageHooks{}
	httpHooks = NoopHTTPHooks{}
}

// =============================================================================
// Fan-out
// =============================================================================

type multiStage []StageHooks

// MultiStage returns StageHooks that forward every event to each of hooks
// in order. Nil entries are skipped.
func MultiStage(hooks ...StageHooks) StageHooks {
	var m multiStage
	for _, h := range hooks {
		if h != nil {
			m = append(m, h)
		}
	}
	return m
}

func (m multiStage) OnStageStart(ctx context.Context, stage string) {
	for _, h := range m {
		h.OnStageStart(ctx, stage)
	}
}

func (m multiStage) OnStageComplete(ctx context.Context, stage string, count int, d time.Duration, err error) {
	for _, h := range m {
		h.OnStageComplete(ctx, stage, count, d, err)
	}
}

type multiHTTP []HTTPHooks

// MultiHTTP returns HTTPHooks that forward every event to each of hooks in
// order. Nil entries are skipped.
func MultiHTTP(hooks ...HTTPHooks) HTTPHooks {
	var m multiHTTP
	for _, h := range hooks {
		if h != nil {
			m = append(m, h)
		}
	}
	return m
}

func (m multiHTTP) OnRequest(ctx context.Context, method, host, path string) {
	for _, h := range m {
		h.OnRequest(ctx, method, host, path)
	}
}

func (m multiHTTP) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	for _, h := range m {
		h.OnResponse(ctx, method, host, path, status, d)
	}
}

func (m multiHTTP) OnError(ctx context.Context, method, host, path string, err error) {
	for _, h := range m {
		h.OnError(ctx, method, host, path, err)
	}
}
