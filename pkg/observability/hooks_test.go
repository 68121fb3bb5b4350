package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Stage hooks
	s := NoopStageHooks{}
	s.OnStageStart(ctx, "ghost_standard", "render")
	s.OnStageComplete(ctx, "ghost_standard", "render", time.Second, nil)

	// Batch hooks
	b := NoopBatchHooks{}
	b.OnBatchStart(ctx, "run", 3)
	b.OnSpriteDone(ctx, "run", "ghost_standard", "ok", time.Second, nil)
	b.OnBatchComplete(ctx, "run", 1, 1, 1, time.Second)
}

func TestOrNoop(t *testing.T) {
	h := Hooks{}.OrNoop()
	if _, ok := h.Stage.(NoopStageHooks); !ok {
		t.Error("OrNoop() should fill Stage with NoopStageHooks")
	}
	if _, ok := h.Batch.(NoopBatchHooks); !ok {
		t.Error("OrNoop() should fill Batch with NoopBatchHooks")
	}

	custom := &testStageHooks{}
	h = Hooks{Stage: custom}.OrNoop()
	if h.Stage != custom {
		t.Error("OrNoop() should keep custom hooks")
	}
}

type testStageHooks struct {
	NoopStageHooks
}
