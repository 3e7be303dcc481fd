package tasks

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInProcessRunsTask(t *testing.T) {
	r := NewInProcess(time.Second)
	ran := make(chan struct{})
	handle, err := r.Submit(context.Background(), "test", func(ctx context.Context) error {
		close(ran)
		return nil
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	select {
	case <-handle.Done():
	case <-time.After(time.Second):
		t.Fatalf("task did not finish")
	}
	<-ran
	if handle.Err() != nil {
		t.Fatalf("Err = %v", handle.Err())
	}
}

func TestInProcessPropagatesError(t *testing.T) {
	r := NewInProcess(time.Second)
	want := errors.New("boom")
	handle, err := r.Submit(context.Background(), "test", func(ctx context.Context) error {
		return want
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-handle.Done()
	if !errors.Is(handle.Err(), want) {
		t.Fatalf("Err = %v, want %v", handle.Err(), want)
	}
}

func TestInProcessRecoversPanic(t *testing.T) {
	r := NewInProcess(time.Second)
	handle, err := r.Submit(context.Background(), "test", func(ctx context.Context) error {
		panic("kaboom")
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-handle.Done()
	if handle.Err() == nil {
		t.Fatalf("expected panic turned into error")
	}
}

func TestInProcessDetachedFromRequestContext(t *testing.T) {
	r := NewInProcess(time.Second)
	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()
	handle, err := r.Submit(reqCtx, "test", func(ctx context.Context) error {
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	<-handle.Done()
	if handle.Err() != nil {
		t.Fatalf("task saw cancelled request context: %v", handle.Err())
	}
}

func TestInProcessShutdownRejectsNewTasks(t *testing.T) {
	r := NewInProcess(time.Second)
	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if _, err := r.Submit(context.Background(), "late", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatalf("expected submit after shutdown to fail")
	}
}
