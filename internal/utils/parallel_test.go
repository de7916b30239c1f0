package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunParallelAllSucceed(t *testing.T) {
	var a, b int
	err := RunParallel(context.Background(),
		func(context.Context) error { a = 1; return nil },
		func(context.Context) error { b = 2; return nil },
	)
	if err != nil {
		t.Fatal(err)
	}
	if a != 1 || b != 2 {
		t.Fatalf("results not written: a=%d b=%d", a, b)
	}
}

func TestRunParallelCancelsSiblings(t *testing.T) {
	boom := errors.New("boom")
	var sawCancel atomic.Bool
	err := RunParallel(context.Background(),
		func(context.Context) error { return boom },
		func(ctx context.Context) error {
			<-ctx.Done()
			sawCancel.Store(true)
			return ctx.Err()
		},
	)
	if !errors.Is(err, boom) {
		t.Fatalf("expected first error, got %v", err)
	}
	if !sawCancel.Load() {
		t.Fatal("sibling task was not canceled")
	}
}

func TestRunParallelNoTasks(t *testing.T) {
	if err := RunParallel(context.Background()); err != nil {
		t.Fatal(err)
	}
}
