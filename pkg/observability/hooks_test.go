package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopStageHooks{}
	s.OnStageStart(ctx, StageRead)
	s.OnStageComplete(ctx, StageFlatten, 12, time.Second, nil)
	s.OnStageComplete(ctx, StageWrite, 0, time.Second, errors.New("broken pipe"))

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "api.github.com", "/repos/o/r/dependency-graph/snapshots")
	h.OnResponse(ctx, "POST", "api.github.com", "/repos/o/r/dependency-graph/snapshots", 201, time.Second)
	h.OnError(ctx, "POST", "api.github.com", "/repos/o/r/dependency-graph/snapshots", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Stages().(NoopStageHooks); !ok {
		t.Error("Stages() should return NoopStageHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customStages := &testStageHooks{}
	SetStageHooks(customStages)
	if Stages() != customStages {
		t.Error("SetStageHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Stages().(NoopStageHooks); !ok {
		t.Error("Reset() should restore NoopStageHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testStageHooks{}
	SetStageHooks(custom)
	SetStageHooks(nil)

	if Stages() != custom {
		t.Error("SetStageHooks(nil) should be ignored")
	}
}

type testStageHooks struct{ NoopStageHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
